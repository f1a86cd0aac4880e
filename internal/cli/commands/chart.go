package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/chart"
	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/session"
)

// ChartOptions holds command-line options for the chart command.
type ChartOptions struct {
	Filter FilterOptions
	Kind   string
	All    bool
	Output string
}

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	opts := &ChartOptions{}

	kinds := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "chart [log-dir]",
		Short: "Chart filtered records",
		Long: `Build a chart dataset from the filtered records and print it as terminal
bars or as JSON for plotting elsewhere.

Kinds:
  volume       records per day
  levels       records per level
  top-errors   most frequent ERROR and CRITICAL messages
  anomaly      records and errors per hour
  critical     CRITICAL versus everything else
  error-trend  ERROR and CRITICAL records per day

Example:
  logview chart --kind levels ./logs
  logview chart --all ./logs
  logview chart --kind anomaly -o json ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args, opts)
		},
	}

	addFilterFlags(cmd, &opts.Filter)
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", string(chart.KindVolume), "Chart kind ("+strings.Join(kinds, "|")+")")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Render every chart kind")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runChart(cmd *cobra.Command, args []string, opts *ChartOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.Filter.FileType); err != nil {
		return err
	}

	kinds := []chart.Kind{chart.Kind(opts.Kind)}
	if opts.All {
		kinds = chart.Kinds
	}

	render := output.RenderChart
	switch opts.Output {
	case "text":
	case "json":
		render = output.RenderChartJSON
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	criteria, err := opts.Filter.Criteria(time.Now())
	if err != nil {
		return err
	}

	s, err := e.loadSession(args, session.WithCriteria(criteria))
	if err != nil {
		return err
	}
	records := s.Filtered()

	for i, kind := range kinds {
		c, err := chart.Build(kind, records)
		if err != nil {
			return err
		}
		if i > 0 && opts.Output == "text" {
			fmt.Fprintln(e.out)
		}
		if err := render(c, e.out); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
	}
	return nil
}

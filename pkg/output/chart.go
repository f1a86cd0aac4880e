package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/logview/pkg/chart"
)

const (
	barWidth      = 40
	maxLabelWidth = 32
)

var datasetStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
}

// RenderChart writes a chart as horizontal bars, one block per dataset.
func RenderChart(c *chart.Chart, w io.Writer) error {
	fmt.Fprintln(w, styleHeader.Render(c.Title))

	if len(c.Labels) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	labelWidth := 0
	for _, l := range c.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(truncate(l, maxLabelWidth)))
	}
	peak := c.Max()

	for i, ds := range c.Datasets {
		style := datasetStyles[i%len(datasetStyles)]
		if len(c.Datasets) > 1 {
			fmt.Fprintf(w, "\n%s\n", ds.Label)
		}
		for j, label := range c.Labels {
			var v int
			if j < len(ds.Data) {
				v = ds.Data[j]
			}
			l := truncate(label, maxLabelWidth)
			pad := strings.Repeat(" ", labelWidth-lipgloss.Width(l))
			fmt.Fprintf(w, "%s%s  %s %d\n", l, pad, style.Render(bar(v, peak)), v)
		}
	}
	return nil
}

// RenderChartJSON writes a chart as indented JSON.
func RenderChartJSON(c *chart.Chart, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

func bar(v, peak int) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := max(v*barWidth/peak, 1)
	return strings.Repeat("█", n)
}

func truncate(s string, n int) string {
	s = firstLine(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/output"
	"github.com/ccollicutt/logview/pkg/session"
	"github.com/ccollicutt/logview/pkg/summary"
	"github.com/ccollicutt/logview/pkg/watcher"
)

// WatchOptions holds command-line options for the watch command.
type WatchOptions struct {
	Filter     FilterOptions
	Interval   time.Duration
	NoNotify   bool
	ShowErrors bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [log-dir]",
		Short: "Reload logs periodically and print a summary after each load",
		Long: `Reload the log directory on a fixed interval, and as soon as a log file
changes, printing the summary of the filtered records after every reload.

A reload that would start while another is still running is skipped.
Stops on Ctrl-C or SIGTERM.

Example:
  logview watch ./logs
  logview watch --interval 10s --level ERROR ./logs`,
		Args: cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	addFilterFlags(cmd, &opts.Filter)
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Reload interval (default from config)")
	cmd.Flags().BoolVar(&opts.NoNotify, "no-notify", false, "Reload on the interval only, ignoring file change events")
	cmd.Flags().BoolVar(&opts.ShowErrors, "top-errors", false, "Also print the top error messages after each reload")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.useFileType(opts.Filter.FileType); err != nil {
		return err
	}

	criteria, err := opts.Filter.Criteria(time.Now())
	if err != nil {
		return err
	}

	s, dir, err := e.newSession(args, session.WithCriteria(criteria))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(e.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := e.cfg.PollInterval
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	pollerOpts := []session.PollerOption{
		session.WithInterval(interval),
		session.WithOnReload(func(result *aggregator.Result, err error) {
			printReload(e, s, result, err, opts.ShowErrors)
		}),
	}

	if !opts.NoNotify {
		w, err := watcher.New(dir.Path(),
			watcher.WithFileType(e.cfg.ParsedFileType()),
			watcher.WithExclude(e.cfg.Exclude),
			watcher.WithLogger(e.log),
		)
		if err != nil {
			e.log.WithError(err).Warn("file change notifications unavailable, polling only")
		} else {
			go w.Start(ctx)
			pollerOpts = append(pollerOpts, session.WithTrigger(w.Triggers))
		}
	}

	e.log.WithFields(logrus.Fields{
		"directory": dir.Path(),
		"interval":  interval.String(),
		"session":   s.ID(),
	}).Info("watching")
	fmt.Fprintf(e.out, "Watching %s every %s (Ctrl-C to stop)\n", dir.Path(), interval)

	err = session.NewPoller(s, pollerOpts...).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch stopped: %w", err)
	}
	return nil
}

func printReload(e *env, s *session.Session, result *aggregator.Result, err error, showErrors bool) {
	stamp := time.Now().Format("15:04:05")
	if err != nil {
		fmt.Fprintf(e.out, "[%s] reload failed: %v\n", stamp, err)
		return
	}

	sum := summary.Compute(s.Filtered())
	fmt.Fprintf(e.out, "[%s] %d files | %s\n", stamp, len(result.Files), output.SummaryLine(sum))
	if showErrors {
		for _, te := range sum.TopErrors {
			fmt.Fprintf(e.out, "    %4d  %s\n", te.Count, te.Message)
		}
	}
}

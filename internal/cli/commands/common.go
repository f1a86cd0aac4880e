package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logview/pkg/aggregator"
	"github.com/ccollicutt/logview/pkg/config"
	"github.com/ccollicutt/logview/pkg/filter"
	"github.com/ccollicutt/logview/pkg/session"
	"github.com/ccollicutt/logview/pkg/source"
	"github.com/ccollicutt/logview/pkg/state"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// Global is bound to the root command's persistent flags.
var Global = GlobalOptions{
	LogLevel:  "warn",
	LogFormat: "text",
}

// ErrNoDirectory is returned when no log directory can be resolved.
var ErrNoDirectory = errors.New("no log directory: pass one, set directory in the config, or run 'logview open <dir>'")

// env is what a command needs to do its work.
type env struct {
	ctx context.Context
	cfg *config.Config
	log *logrus.Logger
	out io.Writer
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(ctx, Global.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &env{ctx: ctx, cfg: cfg, log: log, out: cmd.OutOrStdout()}, nil
}

// newLogger builds the diagnostic logger from the global flags.
func newLogger(w io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)

	level, err := logrus.ParseLevel(Global.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", Global.LogLevel, err)
	}
	log.SetLevel(level)

	switch Global.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q (use text or json)", Global.LogFormat)
	}

	return log, nil
}

// resolveDir picks the log directory: the argument, then the configured
// directory, then the one remembered by 'logview open'.
func (e *env) resolveDir(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if e.cfg.Directory != "" {
		return e.cfg.Directory, nil
	}

	store, err := state.Open(e.cfg.StateFile)
	if err != nil {
		e.log.WithError(err).Warn("cannot read remembered directory")
		return "", ErrNoDirectory
	}
	if dir, ok := store.Get(state.KeyLogFullPath); ok && dir != "" {
		e.log.WithField("directory", dir).Debug("using remembered directory")
		return dir, nil
	}
	return "", ErrNoDirectory
}

// newAggregator builds an aggregator from the configuration.
func (e *env) newAggregator() (*aggregator.Aggregator, error) {
	opts := append(e.cfg.AggregatorOptions(), aggregator.WithLogger(e.log))
	return aggregator.New(opts...)
}

// newSession resolves the directory and creates an unloaded session.
func (e *env) newSession(args []string, opts ...session.Option) (*session.Session, *source.Local, error) {
	path, err := e.resolveDir(args)
	if err != nil {
		return nil, nil, err
	}

	dir, err := source.NewLocal(path)
	if err != nil {
		return nil, nil, err
	}

	agg, err := e.newAggregator()
	if err != nil {
		return nil, nil, err
	}

	opts = append([]session.Option{
		session.WithPageSize(e.cfg.PageSize),
		session.WithLogger(e.log),
	}, opts...)
	return session.New(dir, agg, opts...), dir, nil
}

// loadSession creates a session and performs the first load.
func (e *env) loadSession(args []string, opts ...session.Option) (*session.Session, error) {
	s, _, err := e.newSession(args, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := s.Reload(e.ctx); err != nil {
		return nil, fmt.Errorf("loading logs: %w", err)
	}
	return s, nil
}

// useFileType overrides the configured file type when fileType is set.
func (e *env) useFileType(fileType string) error {
	if fileType == "" {
		return nil
	}
	if err := e.cfg.SetFileType(fileType); err != nil {
		return fmt.Errorf("--type: %w", err)
	}
	return nil
}

func addTypeFlag(cmd *cobra.Command, fileType *string) {
	cmd.Flags().StringVarP(fileType, "type", "t", "", "Files to read: txt, json, or both (default from config)")
}

// FilterOptions holds the record filter flags.
type FilterOptions struct {
	FileType string
	Query    string
	Level    string
	From     string
	To       string
	LastDays int
}

func addFilterFlags(cmd *cobra.Command, opts *FilterOptions) {
	addTypeFlag(cmd, &opts.FileType)
	cmd.Flags().StringVar(&opts.Query, "query", "", "Case-insensitive text search over raw log text")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Exact level to keep (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Keep records at or after this date")
	cmd.Flags().StringVar(&opts.To, "to", "", "Keep records at or before this date")
	cmd.Flags().IntVar(&opts.LastDays, "last-days", 0, "Keep records from the last N days (overrides --from/--to)")
}

// Criteria converts the flags into filter criteria.
func (o *FilterOptions) Criteria(now time.Time) (filter.Criteria, error) {
	c, err := filter.ParseCriteria(o.Query, o.Level, o.From, o.To)
	if err != nil {
		return filter.Criteria{}, err
	}
	if o.LastDays < 0 {
		return filter.Criteria{}, fmt.Errorf("invalid last-days %d", o.LastDays)
	}
	if o.LastDays > 0 {
		c = c.WithDates(filter.LastDays(o.LastDays, now))
	}
	return c, nil
}

// newDiscardLogger returns a logger that writes nothing.
func newDiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

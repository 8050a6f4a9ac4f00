package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeanpaul/unifind/internal/config"
	"github.com/jeanpaul/unifind/internal/favorites"
	"github.com/jeanpaul/unifind/internal/kv"
	"github.com/jeanpaul/unifind/internal/output"
	"github.com/jeanpaul/unifind/internal/search"
	"github.com/jeanpaul/unifind/internal/tui"
)

// app carries what every command shares once the configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	noColor bool

	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
	client  *search.Client

	store   kv.Store
	favs    *favorites.Store
	closers []io.Closer
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: viper.New()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		p := a.printer
		if p == nil {
			p = output.NewPrinter(stdout, stderr, false)
		}
		p.Notice(err)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "unifind",
		Short: "Search universities and keep a list of favorites",
		Long: `unifind searches the public university directory by country and/or name
and keeps a local list of favorite universities.

Run without a command to open the interactive search and favorites screens.

Example usage:
  unifind                                   # interactive mode
  unifind search --country Brazil --name Paulista
  unifind favorites list
  unifind favorites export --format xlsx --out favorites.xlsx
  unifind doctor                            # check endpoint and storage`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, err := a.favorites(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(a.client, favs)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is config.yaml in . or "+config.Dir()+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.String("api-url", "", "university directory base URL")
	pf.String("backend", "", "storage backend (file, sqlite, redis, memory)")
	pf.String("data-dir", "", "directory used by the file backend")
	pf.String("namespace", "", "storage key namespace")

	_ = a.v.BindPFlag("api.base_url", pf.Lookup("api-url"))
	_ = a.v.BindPFlag("storage.backend", pf.Lookup("backend"))
	_ = a.v.BindPFlag("storage.dir", pf.Lookup("data-dir"))
	_ = a.v.BindPFlag("storage.namespace", pf.Lookup("namespace"))

	root.AddCommand(
		newSearchCmd(a),
		newFavoritesCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads configuration and builds the logger, printer and search
// client. The interactive root command logs to log.file (or nowhere) so the
// screen is not disturbed.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logOut := cmd.ErrOrStderr()
	if !cmd.HasParent() {
		logOut = io.Discard
	}
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		logOut = f
	}
	a.logger = newLogger(logOut, cfg.Log)

	a.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		!a.noColor && output.ResolveColors(cfg.Output.Colors))

	a.client = search.NewClient(cfg.API.BaseURL, search.WithLogger(a.logger))

	a.logger.Debug("configuration loaded",
		"api", cfg.API.BaseURL,
		"backend", cfg.Storage.Backend,
		"namespace", cfg.Storage.Namespace,
	)
	return nil
}

// favorites opens the configured storage backend on first use.
func (a *app) favorites(ctx context.Context) (*favorites.Store, error) {
	if a.favs != nil {
		return a.favs, nil
	}
	store, err := kv.Open(ctx, a.cfg.KVOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", a.cfg.Storage.Backend, err)
	}
	a.store = store
	a.closers = append(a.closers, store)
	a.favs = favorites.New(store,
		favorites.WithNamespace(a.cfg.Storage.Namespace),
		favorites.WithLogger(a.logger),
	)
	return a.favs, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

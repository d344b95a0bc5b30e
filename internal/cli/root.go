// Package cli is the one-shot command line front end. Every command loads
// the store, runs a single App intent and exits.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/storage"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// runUI is swapped out in tests, which have no terminal.
var runUI = tui.Run

// rootOptions holds the persistent flags and the config they resolve to.
type rootOptions struct {
	configFile string
	driver     string
	dataDir    string
	theme      string
	debug      bool

	cfg *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - projects, due dates and priorities in your terminal",
		Long: `todo keeps a list of todos grouped into projects.

Run "todo ui" for the interactive screen, or use the subcommands
to list, add, complete and remove todos from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("no command given")
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: $TODO_CONFIG, ./todo.yaml or ~/.todo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.driver, "store", "", "storage backend: file, memory, sqlite or redis")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the data files")
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "color theme: classic, neon or mono")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newDoneCommand(opts))
	rootCmd.AddCommand(newRemoveCommand(opts))
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newProjectCommand(opts))
	rootCmd.AddCommand(newUICommand(opts))

	return rootCmd
}

// resolve loads the config file and lays the flags over it.
func (o *rootOptions) resolve() error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.driver != "" {
		cfg.Store.Driver = o.driver
	}
	if o.dataDir != "" {
		dir := config.ExpandHome(o.dataDir)
		if cfg.Store.SQLite.Path == filepath.Join(cfg.Store.Dir, "todo.db") {
			cfg.Store.SQLite.Path = filepath.Join(dir, "todo.db")
		}
		cfg.Store.Dir = dir
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) themed() ui.Theme {
	return ui.ThemeNamed(o.cfg.UI.Theme)
}

// session is one loaded App and what it needs closing.
type session struct {
	app   *app.App
	store store.Store
	log   *zap.Logger
	theme ui.Theme
}

// open builds the logger, the store and a loaded App. logFile overrides the
// configured log destination when set.
func (o *rootOptions) open(ctx context.Context, logFile string) (*session, error) {
	lopt := logger.FromConfig(o.cfg, o.debug)
	if logFile != "" && lopt.File == "" {
		lopt.File = logFile
	}
	log, err := logger.New(lopt)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, o.cfg.Store)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Named("store").Debug("opened", zap.String("driver", o.cfg.Store.Driver))

	a := app.New(storage.New(st, log), nil, app.WithLogger(log))
	a.Load(ctx)
	return &session{app: a, store: st, log: log, theme: o.themed()}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Named("store").Warn("close failed", zap.Error(err))
	}
	_ = s.log.Sync()
}

// run opens a session, hands it to fn and closes it again.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, s *session, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := o.open(ctx, "")
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s, cmd.OutOrStdout())
}

func newUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive screen",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			// The screen owns the terminal, so logs go to a file.
			s, err := opts.open(ctx, filepath.Join(opts.cfg.Store.Dir, "todo.log"))
			if err != nil {
				return err
			}
			defer s.Close()
			return runUI(ctx, s.app, s.theme)
		},
	}
}

func notFound(kind, ref string) error {
	return fmt.Errorf("%s not found: %s", kind, ref)
}

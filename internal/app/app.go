// Package app wires configuration, logging and the task store into the
// todo command line and its two interfaces.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	linecli "todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/shell"
	"todo/internal/taskstore"
	"todo/internal/tui"
)

// TUIRunner runs the terminal interface until the user quits.
type TUIRunner func(ctx context.Context, m *tui.Model) error

// App owns the process streams and the exit code of one invocation.
type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	runTUI TUIRunner
	code   int
}

// Option configures an App.
type Option func(*App)

// WithIO replaces the process streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
		a.errOut = errOut
	}
}

// WithTUIRunner replaces the bubbletea program runner.
func WithTUIRunner(run TUIRunner) Option {
	return func(a *App) {
		a.runTUI = run
	}
}

// New creates an App bound to the process streams.
func New(opts ...Option) *App {
	a := &App{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runTUI == nil {
		a.runTUI = a.runProgram
	}
	return a
}

// runProgram runs bubbletea on the app's streams.
func (a *App) runProgram(ctx context.Context, m *tui.Model) error {
	return tui.Run(ctx, m, tea.WithInput(a.in), tea.WithOutput(a.out))
}

// Run executes the command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	a.code = exitcode.Success
	if err := a.Command().Run(ctx, args); err != nil {
		fmt.Fprintf(a.errOut, "error: %v\n", err)
		if a.code == exitcode.Success {
			return exitcode.UserError
		}
	}
	return a.code
}

// Command returns the root command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:      config.AppName,
		Usage:     "Keep a list of tasks in a terminal UI or a scriptable shell",
		Version:   commands.Version,
		Reader:    a.in,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration directory",
				Value:   config.DefaultConfigDir(),
				Sources: cli.EnvVars(config.Key("CONFIG_DIR")),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress informational output",
			},
		},
		Action: a.tuiAction,
		Commands: []*cli.Command{
			{
				Name:   "tui",
				Usage:  "Launch the interactive task list (default)",
				Action: a.tuiAction,
			},
			{
				Name:   "shell",
				Usage:  "Read task commands from standard input",
				Action: a.shellAction,
			},
			{
				Name:  "version",
				Usage: "Print version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Fprintf(a.out, "%s %s\n", config.AppName, commands.Version)
					return nil
				},
			},
		},
	}
}

// loadConfig reads the config directory and environment, then applies flags.
func (a *App) loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("log-format") {
		if err := cfg.SetLogFormat(cmd.String("log-format")); err != nil {
			return nil, err
		}
	}
	cfg.Quiet = cmd.Bool("quiet")
	return cfg, nil
}

// newStore creates the session's store and logs every change at debug level.
func newStore(log *slog.Logger) *taskstore.TaskStore {
	store := taskstore.New(taskstore.WithLogger(log))
	store.Subscribe(taskstore.LogChanges(log))
	return store
}

func (a *App) shellAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		a.code = exitcode.ConfigError
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(
		logging.WithOutput(a.errOut),
		logging.WithLevel(cfg.EffectiveLogLevel()),
		logging.WithFormat(cfg.LogFormat),
	)
	store := newStore(log)
	log.Debug("shell started", "config_dir", cfg.Dir, "env_file", cfg.HasEnvFile())

	d := linecli.NewDispatcher(commands.DefaultRegistry, store, cfg)
	a.code = shell.New(d, a.in, a.out, a.errOut, shell.WithLogger(log)).Run(ctx)
	return nil
}

func (a *App) tuiAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unknown command: %s", cmd.Args().First())
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		a.code = exitcode.ConfigError
		return fmt.Errorf("config: %w", err)
	}

	// The screen belongs to bubbletea; logs go to a file or nowhere.
	log := logging.Discard()
	if cfg.Debug {
		if err := cfg.EnsureDir(); err != nil {
			a.code = exitcode.ConfigError
			return fmt.Errorf("config: %w", err)
		}
		fileLog, closer, err := logging.OpenFile(cfg.LogPath(),
			logging.WithLevel(cfg.EffectiveLogLevel()),
			logging.WithFormat(cfg.LogFormat),
		)
		if err != nil {
			a.code = exitcode.ConfigError
			return fmt.Errorf("config: %w", err)
		}
		defer closer.Close()
		log = fileLog
	}

	store := newStore(log)
	model := tui.New(store, tui.WithTitle(cfg.Title), tui.WithLogger(log))
	log.Debug("tui started", "config_dir", cfg.Dir, "env_file", cfg.HasEnvFile())

	if err := a.runTUI(ctx, model); err != nil {
		a.code = exitcode.UIError
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

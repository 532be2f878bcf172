package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/evanschultz/kanmouse/internal/config"
	"github.com/evanschultz/kanmouse/internal/engine"
	"github.com/evanschultz/kanmouse/internal/platform"
	"github.com/evanschultz/kanmouse/internal/tui"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// stdin is where record reads raw pointer reports from.
var stdin io.Reader = os.Stdin

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// session is the resolved state a command runs against.
type session struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root,
		fang.WithVersion(version),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, "error:", err)
		}),
	)
}

// newRootCommand wires the board command and its subcommands.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{appName: "kanmouse", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("KANMOUSE_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("KANMOUSE_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:   "kanmouse",
		Short: "A kanban board you drive with the mouse",
		Long: `kanmouse draws a three-column kanban board in the terminal.
Click a card to move it forward, drag it onto another column, scroll to change
the selection, and right click for the card menu.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rt, err := opts.setup(stderr, true)
			if err != nil {
				return err
			}
			defer rt.close(stderr)
			return runBoard(rt)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newPathsCommand(opts, stdout),
		newRecordCommand(opts, stdout, stderr),
		newReplayCommand(opts, stdout, stderr),
	)
	return root
}

// newPathsCommand prints the resolved runtime paths.
func newPathsCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			paths, err := opts.paths()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", opts.resolveConfigPath(paths))
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "recordings: %s\n", paths.RecordingsDir)
			return nil
		},
	}
}

func (o *rootOptions) paths() (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: o.appName,
		DevMode: o.devMode,
	})
}

// resolveConfigPath prefers --config, then KANMOUSE_CONFIG, then the platform default.
func (o *rootOptions) resolveConfigPath(paths platform.Paths) string {
	if strings.TrimSpace(o.configPath) != "" {
		return o.configPath
	}
	if envPath := strings.TrimSpace(os.Getenv("KANMOUSE_CONFIG")); envPath != "" {
		return envPath
	}
	return paths.ConfigPath
}

// setup resolves paths, loads config and opens the runtime logger. Commands
// that own the terminal pass quiet so the console sink stays muted.
func (o *rootOptions) setup(stderr io.Writer, quiet bool) (*session, error) {
	paths, err := o.paths()
	if err != nil {
		return nil, err
	}
	configPath := o.resolveConfigPath(paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	logger, err := newRuntimeLogger(stderr, o.appName, o.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.SetConsoleEnabled(!quiet)

	logger.Info("startup configuration resolved", "app", o.appName, "dev_mode", o.devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}
	return &session{paths: paths, configPath: configPath, cfg: cfg, logger: logger}, nil
}

func (rt *session) close(stderr io.Writer) {
	if closeErr := rt.logger.Close(); closeErr != nil && !rt.logger.consoleMute {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
	}
}

// runBoard runs the interactive board until the user quits.
func runBoard(rt *session) error {
	logger := rt.logger
	logger.Info("command flow start", "command", "tui")
	board, err := buildBoard(rt.cfg)
	if err != nil {
		logger.Error("board setup failed", "err", err)
		return fmt.Errorf("build board: %w", err)
	}
	eng := engine.New(board, engine.WithLogger(logger))
	logger.Info("board ready", "columns", len(board.Columns()), "cards", board.CardCount())

	m := tui.NewModel(
		eng,
		tui.WithUIConfig(toTUIUIConfig(rt.cfg)),
		tui.WithKeyConfig(toTUIKeyConfig(rt.cfg)),
		tui.WithLogger(logger),
	)

	logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui", "cards", board.CardCount())
	return nil
}

// toTUIUIConfig maps persisted config values into render options.
func toTUIUIConfig(cfg config.Config) tui.UIConfig {
	return tui.UIConfig{
		ShowDescriptions: cfg.UI.ShowDescriptions,
		ShowDetails:      cfg.UI.ShowDetails,
		MinColumnWidth:   cfg.UI.MinColumnWidth,
	}
}

// toTUIKeyConfig maps persisted key overrides into the keymap.
func toTUIKeyConfig(cfg config.Config) tui.KeyConfig {
	return tui.KeyConfig{
		NewCard: cfg.Keys.NewCard,
		Yank:    cfg.Keys.Yank,
		Quit:    cfg.Keys.Quit,
	}
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

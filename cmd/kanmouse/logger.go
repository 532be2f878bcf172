package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/evanschultz/kanmouse/internal/config"
	"github.com/evanschultz/kanmouse/internal/platform"
)

const defaultDevLogDir = ".kanmouse/log"

// logSink is one destination; console sinks can be muted while the board owns the terminal.
type logSink struct {
	*charmLog.Logger
	console bool
}

// runtimeLogger tags every event with the run id and fans it out to the console
// and, in dev mode, to a workspace-local day file.
type runtimeLogger struct {
	sinks       []logSink
	consoleMute bool
	file        *os.File
	runID       string
}

// newRuntimeLogger builds the sinks for one run.
func newRuntimeLogger(stderr io.Writer, appName string, devMode bool, cfg config.LoggingConfig, now func() time.Time) (*runtimeLogger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if now == nil {
		now = time.Now
	}

	l := &runtimeLogger{runID: uuid.NewString()}
	sink := func(w io.Writer, formatter charmLog.Formatter) *charmLog.Logger {
		return charmLog.NewWithOptions(w, charmLog.Options{
			Level:           level,
			Prefix:          appName,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       formatter,
		}).With("run_id", l.runID)
	}
	l.sinks = append(l.sinks, logSink{Logger: sink(stderr, charmLog.TextFormatter), console: true})
	if !devMode || !cfg.DevFile.Enabled {
		return l, nil
	}

	path, err := devLogFilePath(cfg.DevFile.Dir, appName, now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resolve dev log file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dev log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open dev log file: %w", err)
	}
	// logfmt keeps the day file greppable across runs
	l.sinks = append(l.sinks, logSink{Logger: sink(f, charmLog.LogfmtFormatter)})
	l.file = f
	return l, nil
}

// DevLogPath returns the dev log file path, or "" when no file sink is open.
func (l *runtimeLogger) DevLogPath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// RunID identifies this process in a shared day log.
func (l *runtimeLogger) RunID() string {
	return l.runID
}

func (l *runtimeLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// SetConsoleEnabled mutes or unmutes the console sink.
func (l *runtimeLogger) SetConsoleEnabled(enabled bool) {
	l.consoleMute = !enabled
}

func (l *runtimeLogger) log(level charmLog.Level, msg any, keyvals []any) {
	for _, s := range l.sinks {
		if s.console && l.consoleMute {
			continue
		}
		s.Log(level, msg, keyvals...)
	}
}

func (l *runtimeLogger) Debug(msg any, keyvals ...any) { l.log(charmLog.DebugLevel, msg, keyvals) }
func (l *runtimeLogger) Info(msg any, keyvals ...any)  { l.log(charmLog.InfoLevel, msg, keyvals) }
func (l *runtimeLogger) Warn(msg any, keyvals ...any)  { l.log(charmLog.WarnLevel, msg, keyvals) }
func (l *runtimeLogger) Error(msg any, keyvals ...any) { l.log(charmLog.ErrorLevel, msg, keyvals) }

// devLogFilePath places <stem>-YYYYMMDD.log under dir; a relative dir hangs off the workspace root.
func devLogFilePath(dir, appName string, day time.Time) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDevLogDir
	}
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working dir: %w", err)
		}
		dir = filepath.Join(workspaceRootFrom(cwd), dir)
	}
	name := sanitizeLogFileStem(appName) + "-" + day.Format("20060102") + ".log"
	return filepath.Join(filepath.Clean(dir), name), nil
}

// workspaceRootFrom walks up from start to the nearest directory holding go.mod
// or .git, falling back to start.
func workspaceRootFrom(start string) string {
	start = filepath.Clean(strings.TrimSpace(start))
	for dir := start; ; {
		for _, marker := range []string{"go.mod", ".git"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

var logStemReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "-")

// sanitizeLogFileStem turns an app name into a safe file-name segment.
func sanitizeLogFileStem(appName string) string {
	stem := strings.Trim(logStemReplacer.Replace(strings.TrimSpace(appName)), "-")
	if stem == "" {
		return platform.DefaultAppName
	}
	return stem
}

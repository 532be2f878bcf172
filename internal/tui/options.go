package tui

import "github.com/atotto/clipboard"

// UIConfig controls what the board draws.
type UIConfig struct {
	ShowDescriptions bool
	ShowDetails      bool
	MinColumnWidth   int
}

// KeyConfig carries the configurable key overrides.
type KeyConfig struct {
	NewCard string
	Yank    string
	Quit    string
}

// Logger is the subset of the runtime logger the TUI writes to.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
func (nopLogger) Warn(any, ...any)  {}

type Option func(*Model)

func DefaultUIConfig() UIConfig {
	return UIConfig{
		ShowDescriptions: true,
		ShowDetails:      false,
		MinColumnWidth:   24,
	}
}

func WithUIConfig(cfg UIConfig) Option {
	return func(m *Model) {
		if cfg.MinColumnWidth <= 0 {
			cfg.MinColumnWidth = DefaultUIConfig().MinColumnWidth
		}
		m.renderer = NewBoardRenderer(cfg)
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

func WithLogger(l Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClipboard replaces the system clipboard writer used by yank.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copy = write
		}
	}
}

var defaultClipboard = clipboard.WriteAll

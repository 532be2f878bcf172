package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Board   BoardConfig   `toml:"board"`
	Cards   []CardConfig  `toml:"cards"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeyConfig     `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
}

type BoardConfig struct {
	Columns       []ColumnConfig `toml:"columns"`
	SeedDemoCards bool           `toml:"seed_demo_cards"`
}

type ColumnConfig struct {
	Title string `toml:"title"`
	Role  string `toml:"role"` // todo | progress | done
}

// CardConfig seeds one card into the column with the matching title.
type CardConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Column      string `toml:"column"`
}

type UIConfig struct {
	ShowDescriptions bool `toml:"show_descriptions"`
	ShowDetails      bool `toml:"show_details"`
	MinColumnWidth   int  `toml:"min_column_width"`
}

type KeyConfig struct {
	NewCard string `toml:"new_card"`
	Yank    string `toml:"yank"`
	Quit    string `toml:"quit"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// MinColumnWidthFloor is the narrowest column that still fits a bordered card.
const MinColumnWidthFloor = 12

var logLevels = []string{"debug", "info", "warn", "error"}

var columnRoles = []string{"", "todo", "progress", "done"}

func defaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{Title: "To Do", Role: "todo"},
		{Title: "In Progress", Role: "progress"},
		{Title: "Done", Role: "done"},
	}
}

func Default() Config {
	return Config{
		Board: BoardConfig{
			Columns:       defaultColumns(),
			SeedDemoCards: true,
		},
		UI: UIConfig{
			ShowDescriptions: true,
			ShowDetails:      false,
			MinColumnWidth:   24,
		},
		Keys: KeyConfig{
			NewCard: "n",
			Yank:    "y",
			Quit:    "q",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".kanmouse/log",
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Board.Columns) == 0 {
		return errors.New("board.columns must include at least one column")
	}
	seenTitle := map[string]struct{}{}
	roleCount := map[string]int{}
	for idx, col := range c.Board.Columns {
		title := strings.ToLower(strings.TrimSpace(col.Title))
		role := strings.ToLower(strings.TrimSpace(col.Role))
		if title == "" {
			return fmt.Errorf("board.columns[%d].title is required", idx)
		}
		if _, ok := seenTitle[title]; ok {
			return fmt.Errorf("board.columns[%d].title is duplicated: %s", idx, col.Title)
		}
		seenTitle[title] = struct{}{}
		if !slices.Contains(columnRoles, role) {
			return fmt.Errorf("invalid board.columns[%d].role: %q", idx, col.Role)
		}
		roleCount[role]++
	}
	for _, role := range []string{"progress", "done"} {
		if roleCount[role] > 1 {
			return fmt.Errorf("board.columns may hold at most one %q column", role)
		}
	}

	for idx, card := range c.Cards {
		if strings.TrimSpace(card.Title) == "" {
			return fmt.Errorf("cards[%d].title is required", idx)
		}
		if _, ok := seenTitle[strings.ToLower(strings.TrimSpace(card.Column))]; !ok {
			return fmt.Errorf("cards[%d] references unknown column %q", idx, card.Column)
		}
	}

	if c.UI.MinColumnWidth < MinColumnWidthFloor {
		return fmt.Errorf("ui.min_column_width must be >= %d", MinColumnWidthFloor)
	}

	seenKey := map[string]string{}
	for _, binding := range []struct{ name, value string }{
		{"keys.new_card", c.Keys.NewCard},
		{"keys.yank", c.Keys.Yank},
		{"keys.quit", c.Keys.Quit},
	} {
		value := strings.TrimSpace(binding.value)
		if value == "" {
			return fmt.Errorf("%s is required", binding.name)
		}
		if other, ok := seenKey[value]; ok {
			return fmt.Errorf("%s conflicts with %s: %q", binding.name, other, value)
		}
		seenKey[value] = binding.name
	}

	if !slices.Contains(logLevels, strings.ToLower(strings.TrimSpace(c.Logging.Level))) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when enabled")
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(cfg.Board.Columns) != 3 || cfg.Board.Columns[2].Role != "done" {
		t.Fatalf("unexpected default columns %#v", cfg.Board.Columns)
	}
	if !cfg.Board.SeedDemoCards {
		t.Fatal("expected demo cards seeded by default")
	}
	if cfg.Keys.NewCard != "n" || cfg.Keys.Quit != "q" {
		t.Fatalf("unexpected default keys %#v", cfg.Keys)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default()
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.MinColumnWidth != defaults.UI.MinColumnWidth {
		t.Fatalf("expected default column width, got %d", cfg.UI.MinColumnWidth)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[board]
seed_demo_cards = false
columns = [
  { title = "Backlog" },
  { title = "Doing", role = "progress" },
  { title = "Review" },
  { title = "Shipped", role = "done" },
]

[[cards]]
title = "Write docs"
description = "the **fun** part"
column = "backlog"

[ui]
show_descriptions = false
show_details = true
min_column_width = 30

[keys]
new_card = "a"

[logging]
level = "debug"
`)

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Board.Columns) != 4 || cfg.Board.Columns[3].Title != "Shipped" {
		t.Fatalf("unexpected columns %#v", cfg.Board.Columns)
	}
	if cfg.Board.SeedDemoCards {
		t.Fatal("expected demo cards disabled from config override")
	}
	if len(cfg.Cards) != 1 || cfg.Cards[0].Column != "backlog" {
		t.Fatalf("unexpected cards %#v", cfg.Cards)
	}
	if cfg.UI.ShowDescriptions || !cfg.UI.ShowDetails || cfg.UI.MinColumnWidth != 30 {
		t.Fatalf("unexpected ui config %#v", cfg.UI)
	}
	if cfg.Keys.NewCard != "a" || cfg.Keys.Yank != "y" {
		t.Fatalf("expected partial key override, got %#v", cfg.Keys)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.DevFile.Enabled {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]struct {
		content string
		want    string
	}{
		"empty columns": {
			content: "[board]\ncolumns = []\n",
			want:    "at least one column",
		},
		"duplicate column": {
			content: "[board]\ncolumns = [{ title = \"A\" }, { title = \"a\" }]\n",
			want:    "duplicated",
		},
		"bad role": {
			content: "[board]\ncolumns = [{ title = \"A\", role = \"later\" }]\n",
			want:    "role",
		},
		"two done columns": {
			content: "[board]\ncolumns = [{ title = \"A\", role = \"done\" }, { title = \"B\", role = \"done\" }]\n",
			want:    "at most one",
		},
		"card in unknown column": {
			content: "[[cards]]\ntitle = \"x\"\ncolumn = \"Nowhere\"\n",
			want:    "unknown column",
		},
		"narrow columns": {
			content: "[ui]\nmin_column_width = 4\n",
			want:    "min_column_width",
		},
		"key clash": {
			content: "[keys]\nyank = \"n\"\n",
			want:    "conflicts",
		},
		"bad level": {
			content: "[logging]\nlevel = \"loud\"\n",
			want:    "logging.level",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content), Default())
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[board\n"), Default())
	if err == nil || !strings.Contains(err.Error(), "decode toml") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "config.toml")
	if err := EnsureConfigDir(target); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Fatalf("expected dir to exist, stat error %v", err)
	}
}

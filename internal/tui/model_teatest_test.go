package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/exp/teatest/v2"

	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/engine"
)

func newTeatestEngine(t *testing.T, titles ...string) *engine.Engine {
	t.Helper()
	b, err := domain.NewBoard(domain.DefaultColumns())
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}
	for _, title := range titles {
		if _, err := b.AddCard(b.Column(0), title, ""); err != nil {
			t.Fatalf("AddCard() error = %v", err)
		}
	}
	return engine.New(b)
}

// TestModelWithTeatest verifies behavior for the covered scenario.
func TestModelWithTeatest(t *testing.T) {
	m := NewModel(newTeatestEngine(t, "First card"))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 35))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "First card")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: 'q', Text: "q"})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

// TestModelWithTeatestHelp verifies behavior for the covered scenario.
func TestModelWithTeatestHelp(t *testing.T) {
	m := NewModel(newTeatestEngine(t, "Helpful card"))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 35))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Helpful card")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: '?', Text: "?"})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "right click")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: 'q', Text: "q"})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

// TestModelWithTeatestMouseClick verifies behavior for the covered scenario.
func TestModelWithTeatestMouseClick(t *testing.T) {
	eng := newTeatestEngine(t, "Clicked card")
	tm := teatest.NewTestModel(t, NewModel(eng), teatest.WithInitialTermSize(120, 35))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Clicked card")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	// first card of the first column at 120x35: bounds start at (3, 6)
	tm.Send(tea.MouseClickMsg{X: 4, Y: 6, Button: tea.MouseLeft})
	tm.Send(tea.MouseReleaseMsg{X: 4, Y: 6, Button: tea.MouseLeft})
	tm.Send(tea.KeyPressMsg{Code: 'q', Text: "q"})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	if !ok {
		t.Fatal("expected final Model")
	}
	card := final.eng.Board().CardByID(1)
	if card == nil || card.Column().Title != "In Progress" {
		t.Fatalf("expected clicked card in In Progress, got %#v", card)
	}
}

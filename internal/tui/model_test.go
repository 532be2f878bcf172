package tui

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/engine"
)

// newTestModel builds a sized model over a default three-column board.
func newTestModel(t *testing.T, cards [][]string, opts ...Option) (Model, *engine.Engine) {
	t.Helper()
	b, err := domain.NewBoard(domain.DefaultColumns())
	if err != nil {
		t.Fatalf("NewBoard() error = %v", err)
	}
	for i, titles := range cards {
		for _, title := range titles {
			if _, err := b.AddCard(b.Column(i), title, ""); err != nil {
				t.Fatalf("AddCard() error = %v", err)
			}
		}
	}
	if first := b.Active().First(); first != nil {
		if err := b.Select(first); err != nil {
			t.Fatalf("Select() error = %v", err)
		}
	}
	eng := engine.New(b)
	m := applyMsg(t, NewModel(eng, opts...), tea.WindowSizeMsg{Width: 120, Height: 35})
	m.View()
	return m, eng
}

// applyMsg runs one Update and re-renders so bounds follow the new state.
// Commands are not executed; cursor blinks would never settle.
func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	out.View()
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// inside returns a 0-based cell that falls within b.
func inside(b domain.Bounds) (int, int) {
	return b.StartCol, b.StartRow
}

type recordingLogger struct {
	warns  []string
	debugs []string
}

func (l *recordingLogger) Debug(msg any, _ ...any) { l.debugs = append(l.debugs, msgString(msg)) }
func (l *recordingLogger) Warn(msg any, _ ...any)  { l.warns = append(l.warns, msgString(msg)) }

func msgString(msg any) string {
	s, _ := msg.(string)
	return s
}

// TestModelViewBeforeSize verifies behavior for the covered scenario.
func TestModelViewBeforeSize(t *testing.T) {
	b, _ := domain.NewBoard(domain.DefaultColumns())
	m := NewModel(engine.New(b))
	if cmd := m.Init(); cmd != nil {
		t.Fatal("expected nil init cmd")
	}
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeAllMotion || !v.AltScreen {
		t.Fatalf("expected loading view with all-motion mouse, got %#v", v)
	}
}

// TestModelClickAdvancesCard verifies behavior for the covered scenario.
func TestModelClickAdvancesCard(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"Write", "Review"}})
	board := eng.Board()
	card := board.Column(0).First()
	if card.Bounds().IsZero() {
		t.Fatal("expected rendered card bounds")
	}

	x, y := inside(card.Bounds())
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if eng.Armed() != card {
		t.Fatalf("expected card armed after press, got %v", eng.Armed())
	}
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if card.Column() != board.Column(1) {
		t.Fatalf("expected card in %q, got %q", board.Column(1).Title, card.Column().Title)
	}
	if eng.Armed() != nil || eng.Mouse().LastButtonDown != 0 {
		t.Fatal("expected press state cleared after release")
	}
	if m.status != "" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

// TestModelDragAcrossColumns verifies behavior for the covered scenario.
func TestModelDragAcrossColumns(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"Drag me"}})
	board := eng.Board()
	card := board.Column(0).First()
	done := board.Column(2)

	x, y := inside(card.Bounds())
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	dx, dy := inside(done.Bounds())
	m = applyMsg(t, m, tea.MouseMotionMsg{X: dx + 4, Y: dy + 6, Button: tea.MouseLeft})
	if eng.Dragging() != card {
		t.Fatal("expected drag to start on motion with left held")
	}
	if !card.Bounds().IsZero() {
		t.Fatalf("expected dragged card to have zero bounds, got %s", card.Bounds())
	}

	m = applyMsg(t, m, tea.MouseReleaseMsg{X: dx + 4, Y: dy + 6, Button: tea.MouseLeft})
	if card.Column() != done {
		t.Fatalf("expected card dropped in %q, got %q", done.Title, card.Column().Title)
	}
	if eng.Dragging() != nil {
		t.Fatal("expected drag finished")
	}
	if !done.IsActive() || board.Selected() != card {
		t.Fatal("expected drop target active with dropped card selected")
	}
	if card.Bounds().IsZero() {
		t.Fatal("expected dropped card to be laid out again")
	}
}

// TestModelContextMenuMarkDone verifies behavior for the covered scenario.
func TestModelContextMenuMarkDone(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"Ship"}})
	board := eng.Board()
	card := board.Column(0).First()

	x, y := inside(card.Bounds())
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseRight})
	menu := eng.Menu()
	if menu == nil || len(menu.Options) != 2 {
		t.Fatalf("expected two-option menu, got %#v", menu)
	}
	opt := menu.Options[0]
	if opt.Label != engine.LabelMarkDone || opt.Bounds().IsZero() {
		t.Fatalf("unexpected first option %q at %s", opt.Label, opt.Bounds())
	}

	ox, oy := opt.Bounds().StartCol-1, opt.Bounds().StartRow-1
	m = applyMsg(t, m, tea.MouseMotionMsg{X: ox, Y: oy, Button: tea.MouseNone})
	if eng.Highlighted() != opt {
		t.Fatal("expected hovered option highlighted")
	}
	m = applyMsg(t, m, tea.MouseClickMsg{X: ox, Y: oy, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: ox, Y: oy, Button: tea.MouseLeft})
	if eng.Menu() != nil {
		t.Fatal("expected menu closed after command")
	}
	if card.Column() != board.DoneColumn() {
		t.Fatalf("expected card done, got %q", card.Column().Title)
	}
}

// TestModelEscapeClosesMenu verifies behavior for the covered scenario.
func TestModelEscapeClosesMenu(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"Ship"}})
	x, y := inside(eng.Board().Column(0).First().Bounds())
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseRight})
	if eng.Menu() == nil {
		t.Fatal("expected menu open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if eng.Menu() != nil {
		t.Fatal("expected esc to close menu")
	}
	_ = m
}

// TestModelWheelAndKeys verifies behavior for the covered scenario.
func TestModelWheelAndKeys(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"One", "Two"}, {"Three"}})
	board := eng.Board()
	col := board.Column(0)

	x, y := inside(col.Bounds())
	m = applyMsg(t, m, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelDown})
	if board.Selected() != col.CardAt(1) {
		t.Fatalf("expected second card selected after wheel down, got %v", board.Selected())
	}
	m = applyMsg(t, m, keyRune('k'))
	if board.Selected() != col.CardAt(0) {
		t.Fatal("expected first card selected after k")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	if !board.Column(1).IsActive() || board.Selected() != board.Column(1).First() {
		t.Fatal("expected right arrow to activate second column")
	}
	m = applyMsg(t, m, keyRune(']'))
	if board.Column(2).Len() != 1 {
		t.Fatal("expected ] to advance the selected card")
	}
	m = applyMsg(t, m, keyRune('['))
	if board.Column(1).Len() != 1 {
		t.Fatal("expected [ to move the card back")
	}
	_ = m
}

// TestModelEmptyColumnIsQuiet verifies behavior for the covered scenario.
func TestModelEmptyColumnIsQuiet(t *testing.T) {
	logger := &recordingLogger{}
	m, eng := newTestModel(t, [][]string{{"One"}}, WithLogger(logger))
	m = applyMsg(t, m, keyRune('l'))
	if eng.Board().Selected() != nil {
		t.Fatal("expected no selection in empty column")
	}
	if m.status != "" || len(logger.warns) != 0 {
		t.Fatalf("expected empty column to stay off the status line, got %q / %v", m.status, logger.warns)
	}
	if len(logger.debugs) == 0 {
		t.Fatal("expected empty column logged at debug")
	}
}

// TestModelAddCardForm verifies behavior for the covered scenario.
func TestModelAddCardForm(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"One"}})
	board := eng.Board()

	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeAddCard {
		t.Fatalf("expected add card mode, got %v", m.mode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeAddCard || m.status != "title is required" || m.formFocus != 0 {
		t.Fatalf("expected blank title rejected, got mode %v status %q focus %d", m.mode, m.status, m.formFocus)
	}

	for _, r := range "Plan" {
		m = applyMsg(t, m, keyRune(r))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	for _, r := range "notes" {
		m = applyMsg(t, m, keyRune(r))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatal("expected form closed after save")
	}
	card := board.Column(0).Last()
	if card.Title != "Plan" || card.Description != "notes" {
		t.Fatalf("unexpected new card %q / %q", card.Title, card.Description)
	}
	if board.Selected() == card {
		t.Fatal("expected existing selection kept")
	}
	if !strings.HasPrefix(m.status, "added #") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

// TestModelFormSwallowsPointer verifies behavior for the covered scenario.
func TestModelFormSwallowsPointer(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"One"}})
	card := eng.Board().Column(0).First()
	x, y := inside(card.Bounds())

	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	m = applyMsg(t, m, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if card.Column() != eng.Board().Column(0) {
		t.Fatal("expected pointer ignored while the form is open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone || m.status != "new card cancelled" {
		t.Fatalf("expected form cancelled, got mode %v status %q", m.mode, m.status)
	}
}

// TestModelYank verifies behavior for the covered scenario.
func TestModelYank(t *testing.T) {
	var copied string
	m, eng := newTestModel(t, [][]string{{"Ship it"}}, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	m = applyMsg(t, m, keyRune('y'))
	if copied != "Ship it" {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	if m.status != "copied #1" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = newTestModel(t, [][]string{{"Ship it"}}, WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))
	m = applyMsg(t, m, keyRune('y'))
	if m.status != "clipboard: no clipboard" {
		t.Fatalf("unexpected status %q", m.status)
	}
	_ = eng
}

// TestModelQuitKey verifies behavior for the covered scenario.
func TestModelQuitKey(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

// TestModelHelpOverlayBlocksPointer verifies behavior for the covered scenario.
func TestModelHelpOverlayBlocksPointer(t *testing.T) {
	m, eng := newTestModel(t, [][]string{{"One"}})
	card := eng.Board().Column(0).First()
	x, y := inside(card.Bounds())

	m = applyMsg(t, m, keyRune('?'))
	if !m.help.ShowAll {
		t.Fatal("expected help shown")
	}
	m = applyMsg(t, m, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if eng.Armed() != nil {
		t.Fatal("expected pointer ignored under help overlay")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.help.ShowAll {
		t.Fatal("expected esc to hide help")
	}
}

// TestModelConfiguredKeys verifies behavior for the covered scenario.
func TestModelConfiguredKeys(t *testing.T) {
	m, _ := newTestModel(t, nil, WithKeyConfig(KeyConfig{NewCard: "a"}))
	m = applyMsg(t, m, keyRune('a'))
	if m.mode != modeAddCard {
		t.Fatal("expected configured new card key to open the form")
	}
}

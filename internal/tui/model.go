// Package tui runs the board as a Bubble Tea program: mouse and key messages go
// to the interaction engine, and every View re-renders the board and its bounds.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/engine"
	"github.com/evanschultz/kanmouse/internal/pointer"
)

type inputMode int

const (
	modeNone inputMode = iota
	modeAddCard
)

type Model struct {
	eng      *engine.Engine
	renderer *BoardRenderer
	log      Logger
	copy     func(string) error

	ready  bool
	width  int
	height int
	status string

	help help.Model
	keys keyMap

	mode       inputMode
	titleInput textinput.Model
	descInput  textinput.Model
	formFocus  int
}

// NewModel wraps eng in a Bubble Tea model.
func NewModel(eng *engine.Engine, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		eng:        eng,
		renderer:   NewBoardRenderer(DefaultUIConfig()),
		log:        nopLogger{},
		copy:       defaultClipboard,
		help:       h,
		keys:       newKeyMap(),
		titleInput: newFormInput("title: ", "what needs doing", 120),
		descInput:  newFormInput("description: ", "optional, markdown", 512),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the form, the keymap or the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(max(0, msg.Width-2))
		return m, nil

	case tea.KeyPressMsg:
		if m.mode == modeAddCard {
			return m.handleFormKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseMsg:
		if m.mode != modeNone || m.help.ShowAll {
			return m, nil
		}
		ev, ok := pointerEvent(msg)
		if !ok {
			return m, nil
		}
		if !ev.Kind.IsMotion() {
			m.status = ""
		}
		m.report(m.eng.HandlePointer(ev))
		return m, nil
	}

	if m.mode == modeAddCard {
		return m.updateFormInputs(msg)
	}
	return m, nil
}

// View renders the board; rendering also refreshes the bounds the next pointer event is tested against.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeAllMotion
		v.AltScreen = true
		return v
	}

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(mutedColor).
		BorderTop(true).
		BorderForeground(dimColor).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	content := m.renderer.Render(m.eng, m.width, m.height, Chrome{Status: m.status, Footer: helpLine})
	switch {
	case m.mode == modeAddCard:
		content = overlayOnContent(content, m.renderForm(), m.width, m.height)
	case m.help.ShowAll:
		content = overlayOnContent(content, m.renderHelpOverlay(), m.width, m.height)
	}

	view := tea.NewView(content)
	view.MouseMode = tea.MouseModeAllMotion
	view.AltScreen = true
	return view
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.closeMenu):
		m.help.ShowAll = false
		m.report(m.eng.HandleKey(engine.KeyEscape))
	case key.Matches(msg, m.keys.moveUp):
		m.report(m.eng.HandleKey(engine.KeyUp))
	case key.Matches(msg, m.keys.moveDown):
		m.report(m.eng.HandleKey(engine.KeyDown))
	case key.Matches(msg, m.keys.moveLeft):
		m.report(m.eng.HandleKey(engine.KeyLeft))
	case key.Matches(msg, m.keys.moveRight):
		m.report(m.eng.HandleKey(engine.KeyRight))
	case key.Matches(msg, m.keys.retreat):
		m.report(m.eng.HandleKey(engine.KeyShiftEnter))
	case key.Matches(msg, m.keys.advance):
		m.report(m.eng.HandleKey(engine.KeyEnter))
	case key.Matches(msg, m.keys.addCard):
		return m, m.startAddCard()
	case key.Matches(msg, m.keys.yank):
		m.yankSelected()
	}
	return m, nil
}

// report turns an engine error into a log line and, for real failures, the status line.
func (m *Model) report(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, domain.ErrEmptyColumn), errors.Is(err, pointer.ErrMalformed):
		m.log.Debug("board event", "err", err)
	default:
		m.log.Warn("board event failed", "err", err)
		m.status = err.Error()
	}
}

func (m *Model) yankSelected() {
	card := m.eng.Board().Selected()
	if card == nil {
		m.status = "nothing selected"
		return
	}
	if err := m.copy(yankText(card)); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
		m.status = "clipboard: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied #%d", card.ID)
}

func (m Model) renderHelpOverlay() string {
	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(max(20, m.width-12))

	lines := []string{titleStyle.Foreground(accentColor).Render("Help"), "", helpBubble.View(m.keys), ""}
	for _, g := range gestureHelp {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(g[0])+mutedStyle.Render("  "+g[1]))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

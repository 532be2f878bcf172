package tui

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/evanschultz/kanmouse/internal/domain"
)

const formWidth = 48

// newFormInput constructs a single-line form field.
func newFormInput(prompt, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetWidth(formWidth - len(prompt))
	return in
}

func (m *Model) startAddCard() tea.Cmd {
	m.mode = modeAddCard
	m.titleInput.Reset()
	m.descInput.Reset()
	return m.focusFormField(0)
}

func (m *Model) focusFormField(idx int) tea.Cmd {
	m.formFocus = idx
	if idx == 0 {
		m.descInput.Blur()
		return m.titleInput.Focus()
	}
	m.titleInput.Blur()
	return m.descInput.Focus()
}

func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.titleInput.Blur()
		m.descInput.Blur()
		m.status = "new card cancelled"
		return m, nil
	case "tab", "shift+tab", "up", "down":
		return m, m.focusFormField(1 - m.formFocus)
	case "enter":
		if m.formFocus == 0 {
			return m, m.focusFormField(1)
		}
		return m.submitAddCard()
	}
	return m.updateFormInputs(msg)
}

func (m Model) updateFormInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAddCard() (tea.Model, tea.Cmd) {
	card, err := m.eng.AddCard(m.titleInput.Value(), m.descInput.Value())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTitle) {
			m.status = "title is required"
			return m, m.focusFormField(0)
		}
		m.log.Warn("add card failed", "err", err)
		m.status = err.Error()
		return m, nil
	}
	m.mode = modeNone
	m.titleInput.Blur()
	m.descInput.Blur()
	m.status = fmt.Sprintf("added #%d to %s", card.ID, card.Column().Title)
	return m, nil
}

func (m Model) renderForm() string {
	lines := []string{
		titleStyle.Foreground(accentColor).Render("New card in " + m.eng.Board().Active().Title),
		"",
		m.titleInput.View(),
		m.descInput.View(),
	}
	if strings.TrimSpace(m.status) != "" {
		lines = append(lines, "", statusStyle.Render(m.status))
	}
	lines = append(lines, "", mutedStyle.Render("tab switch field • enter next/save • esc cancel"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(formWidth + 4).
		Render(strings.Join(lines, "\n"))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/evanschultz/kanmouse/internal/domain"
)

// markdownRenderer renders card details and recreates the glamour renderer when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown into ANSI-styled text wrapped at width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, 24)
	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(rendered, "\n")
}

// cardMarkdown is the details pane source for a card.
func cardMarkdown(card *domain.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### #%d %s\n", card.ID, card.Title)
	if col := card.Column(); col != nil {
		fmt.Fprintf(&b, "\n_%s_\n", col.Title)
	}
	if desc := strings.TrimSpace(card.Description); desc != "" {
		b.WriteString("\n" + desc + "\n")
	}
	return b.String()
}

// yankText is what the clipboard receives for a card.
func yankText(card *domain.Card) string {
	text := card.Title
	if desc := strings.TrimSpace(card.Description); desc != "" {
		text += "\n\n" + desc
	}
	return text
}

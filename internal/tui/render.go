package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/engine"
)

// BoardTop is the screen row of the columns' top border: a header line and a
// blank line sit above the board.
const BoardTop = 3

const (
	minBoardHeight  = 5
	detailsMaxLines = 8
	menuTitle       = "Card menu"
)

var (
	accentColor   = lipgloss.Color("62")
	mutedColor    = lipgloss.Color("241")
	dimColor      = lipgloss.Color("239")
	textColor     = lipgloss.Color("252")
	selectedColor = lipgloss.Color("212")
	hoverColor    = lipgloss.Color("117")
	dragColor     = lipgloss.Color("214")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	statusStyle = lipgloss.NewStyle().Foreground(dimColor)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1)
	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
	menuHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(accentColor)
)

// Chrome is the text drawn around the board.
type Chrome struct {
	Status string
	Footer string
}

// BoardRenderer lays the board out once per frame, records where every
// column, card and open menu option landed, and composes the frame.
type BoardRenderer struct {
	ui        UIConfig
	markdown  markdownRenderer
	cardWidth int
}

func NewBoardRenderer(ui UIConfig) *BoardRenderer {
	return &BoardRenderer{ui: ui}
}

// Render draws a width x height frame. Bounds written here are what the
// engine hit-tests the next pointer event against.
func (r *BoardRenderer) Render(eng *engine.Engine, width, height int, chrome Chrome) string {
	width = max(width, 1)
	height = max(height, 1)
	board := eng.Board()

	var bottom []string
	if r.ui.ShowDetails && board.Selected() != nil {
		if details := r.markdown.render(cardMarkdown(board.Selected()), width-2); details != "" {
			bottom = append(bottom, fitLines(details, min(detailsMaxLines, lipgloss.Height(details))))
		}
	}
	if status := strings.TrimSpace(chrome.Status); status != "" {
		bottom = append(bottom, statusStyle.Render(ansi.Truncate(status, width, "…")))
	}
	if chrome.Footer != "" {
		bottom = append(bottom, chrome.Footer)
	}
	bottomText := strings.Join(bottom, "\n")
	bottomHeight := 0
	if bottomText != "" {
		bottomHeight = lipgloss.Height(bottomText)
	}
	boardHeight := max(minBoardHeight, height-(BoardTop-1)-bottomHeight)

	sections := []string{r.header(eng, width), "", r.layoutColumns(eng, width, boardHeight)}
	if bottomText != "" {
		sections = append(sections, bottomText)
	}
	base := fitLines(strings.Join(sections, "\n"), height)

	layers := []*lipgloss.Layer{lipgloss.NewLayer(base).X(0).Y(0).Z(0)}
	if ghost := r.dragGhost(eng, width, height); ghost != nil {
		layers = append(layers, ghost)
	}
	if menu := r.contextMenu(eng, width, height); menu != nil {
		layers = append(layers, menu)
	}
	return composeLayers(width, height, layers...)
}

// composeLayers flattens layers by position and z-index onto a width x height canvas.
func composeLayers(width, height int, layers ...*lipgloss.Layer) string {
	canvas := lipgloss.NewCanvas(width, height)
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

func (r *BoardRenderer) header(eng *engine.Engine, width int) string {
	board := eng.Board()
	line := titleStyle.Render("kanmouse") + "  " + board.Active().Title
	line += statusStyle.Render(fmt.Sprintf("  %d cards", board.CardCount()))
	if card := eng.Dragging(); card != nil {
		line += lipgloss.NewStyle().Foreground(dragColor).Render(fmt.Sprintf("  dragging #%d", card.ID))
	}
	return ansi.Truncate(line, width, "")
}

func (r *BoardRenderer) layoutColumns(eng *engine.Engine, width, boardHeight int) string {
	cols := eng.Board().Columns()
	colWidth := max(width/len(cols), r.ui.MinColumnWidth)
	innerWidth := max(1, colWidth-4)
	innerHeight := max(1, boardHeight-2)
	r.cardWidth = innerWidth

	views := make([]string, 0, len(cols))
	x := 1
	for _, col := range cols {
		style := columnStyle.Width(colWidth)
		if col.IsActive() {
			style = style.BorderForeground(accentColor)
		}
		out := style.Render(r.columnContent(eng, col, x, innerWidth, innerHeight))
		col.SetOutput(out)
		col.SetBounds(domain.Rect(x, BoardTop, lipgloss.Width(out), lipgloss.Height(out)))
		views = append(views, out)
		x += lipgloss.Width(out)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// columnContent stacks the column's cards under its title and writes each
// card's bounds. Cards scrolled out of view, and the card being dragged, get
// zero bounds.
func (r *BoardRenderer) columnContent(eng *engine.Engine, col *domain.Column, colX, innerWidth, innerHeight int) string {
	colTitle := titleStyle
	if col.IsActive() {
		colTitle = colTitle.Foreground(accentColor)
	}
	lines := []string{
		colTitle.Render(ansi.Truncate(fmt.Sprintf("%s (%d)", col.Title, col.Len()), innerWidth, "…")),
		"",
	}

	dragging := eng.Dragging()
	cards := make([]*domain.Card, 0, col.Len())
	for _, card := range col.Cards() {
		if card == dragging {
			card.ClearBounds()
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
		return fitLines(strings.Join(lines, "\n"), innerHeight)
	}

	rendered := make([]string, len(cards))
	heights := make([]int, len(cards))
	selected := -1
	for i, card := range cards {
		rendered[i] = r.renderCard(eng, card, innerWidth)
		heights[i] = lipgloss.Height(rendered[i])
		if card == eng.Board().Selected() {
			selected = i
		}
	}
	start, end := visibleWindow(heights, innerHeight-len(lines), selected)

	for i, card := range cards {
		if i < start || i >= end {
			card.ClearBounds()
			continue
		}
		out := rendered[i]
		card.SetOutput(out)
		card.SetBounds(domain.Rect(colX+2, BoardTop+1+len(lines), lipgloss.Width(out), heights[i]))
		lines = append(lines, strings.Split(out, "\n")...)
	}
	if hidden := len(cards) - (end - start); hidden > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("+%d more", hidden)))
	}
	return fitLines(strings.Join(lines, "\n"), innerHeight)
}

// visibleWindow picks the run of cards that fits in avail rows, keeping the
// selected card in view. One row is kept back for the overflow marker.
func visibleWindow(heights []int, avail, selected int) (int, int) {
	total := 0
	for _, h := range heights {
		total += h
	}
	if total <= avail {
		return 0, len(heights)
	}
	avail--

	end, used := 0, 0
	for end < len(heights) && used+heights[end] <= avail {
		used += heights[end]
		end++
	}
	if selected < end {
		return 0, end
	}
	if heights[selected] > avail {
		return 0, 0
	}
	start := selected
	used = heights[selected]
	for start > 0 && used+heights[start-1] <= avail {
		start--
		used += heights[start]
	}
	return start, selected + 1
}

func (r *BoardRenderer) renderCard(eng *engine.Engine, card *domain.Card, width int) string {
	style := cardStyle.Width(width)
	switch card {
	case eng.Dragging():
		style = style.BorderForeground(dragColor)
	case eng.Hovering():
		style = style.BorderForeground(hoverColor)
	case eng.Board().Selected():
		style = style.BorderForeground(selectedColor)
	}
	textWidth := max(1, width-4)
	lines := []string{titleStyle.Render(ansi.Truncate(card.Title, textWidth, "…"))}
	if r.ui.ShowDescriptions {
		if desc, _, _ := strings.Cut(strings.TrimSpace(card.Description), "\n"); desc != "" {
			lines = append(lines, mutedStyle.Render(ansi.Truncate(desc, textWidth, "…")))
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// dragGhost draws the dragged card under the pointer, offset by the grab
// point and kept on screen. The ghost has no bounds, so it is never hit.
func (r *BoardRenderer) dragGhost(eng *engine.Engine, width, height int) *lipgloss.Layer {
	card := eng.Dragging()
	if card == nil {
		return nil
	}
	out := r.renderCard(eng, card, max(1, r.cardWidth))
	card.SetOutput(out)
	card.ClearBounds()

	ox, oy := eng.DragOffset()
	mouse := eng.Mouse()
	x := clamp(mouse.X-ox, 1, max(1, width-lipgloss.Width(out)+1))
	y := clamp(mouse.Y-oy, 1, max(1, height-lipgloss.Height(out)+1))
	return lipgloss.NewLayer(out).X(x - 1).Y(y - 1).Z(10)
}

// contextMenu draws the open menu at its anchor and records each option's row.
func (r *BoardRenderer) contextMenu(eng *engine.Engine, width, height int) *lipgloss.Layer {
	menu := eng.Menu()
	if menu == nil {
		return nil
	}
	inner := lipgloss.Width(menuTitle)
	for _, opt := range menu.Options {
		inner = max(inner, lipgloss.Width(opt.Label)+2)
	}
	row := lipgloss.NewStyle().Width(inner)

	lines := []string{row.Bold(true).Foreground(accentColor).Render(menuTitle)}
	for _, opt := range menu.Options {
		text := row.Render("  " + opt.Label)
		if opt == eng.Highlighted() {
			text = menuHighlightStyle.Width(inner).Render("› " + opt.Label)
		}
		opt.SetOutput(text)
		lines = append(lines, text)
	}
	box := menuStyle.Render(strings.Join(lines, "\n"))
	boxWidth, boxHeight := lipgloss.Width(box), lipgloss.Height(box)

	left := clamp(menu.AnchorX, 1, max(1, width-boxWidth+1))
	top := clamp(menu.AnchorY, 1, max(1, height-boxHeight+1))
	menu.SetBounds(domain.Rect(left, top, boxWidth, boxHeight))
	menu.SetOutput(box)
	for k, opt := range menu.Options {
		opt.SetBounds(domain.Rect(left+2, top+2+k, inner, 1))
	}
	return lipgloss.NewLayer(box).X(left - 1).Y(top - 1).Z(20)
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centres overlay over base on a width x height canvas.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	x := max(0, (width-lipgloss.Width(overlay))/2)
	y := max(0, (height-lipgloss.Height(overlay))/2)
	return composeLayers(width, height,
		lipgloss.NewLayer(base).X(0).Y(0).Z(0),
		lipgloss.NewLayer(overlay).X(x).Y(y).Z(30),
	)
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

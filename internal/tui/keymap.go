package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap holds the keyboard bindings; pointer gestures are listed separately.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	advance    key.Binding
	retreat    key.Binding
	closeMenu  key.Binding
	addCard    key.Binding
	yank       key.Binding
}

// newKeyMap constructs the default bindings.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card down")),
		advance:    key.NewBinding(key.WithKeys("enter", "]"), key.WithHelp("enter", "move card forward")),
		retreat:    key.NewBinding(key.WithKeys("shift+enter", "["), key.WithHelp("shift+enter", "move card back")),
		closeMenu:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
		addCard:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy card")),
	}
}

// applyConfig rebinds the configurable keys. Blank values keep the defaults.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	rebind := func(b *key.Binding, raw, fallback string, extra ...string) {
		keys, help := parseBindingKeys(raw, fallback)
		b.SetKeys(append(keys, extra...)...)
		b.SetHelp(help, b.Help().Desc)
	}
	rebind(&k.addCard, cfg.NewCard, "n")
	rebind(&k.yank, cfg.Yank, "y")
	rebind(&k.quit, cfg.Quit, "q", "ctrl+c")
}

// parseBindingKeys turns a configured key into matcher strings plus the help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") || raw == " " {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp returns the footer bindings.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.addCard, k.advance, k.closeMenu, k.toggleHelp, k.quit}
}

// FullHelp returns the grouped bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.advance, k.retreat, k.addCard, k.yank},
		{k.closeMenu, k.toggleHelp, k.quit},
	}
}

// gestureHelp lists what the pointer does, for the help overlay.
var gestureHelp = [][2]string{
	{"click card", "move it to the next column"},
	{"click column", "make it active"},
	{"drag card", "drop it on another column"},
	{"right click", "open the card menu"},
	{"wheel", "select up/down in the active column"},
}

package engine

import "github.com/evanschultz/kanmouse/internal/domain"

// ColumnAt returns the first column whose drawn extent covers column x.
// Rows are not checked: columns span the full board height.
func (e *Engine) ColumnAt(x, _ int) *domain.Column {
	for _, col := range e.board.Columns() {
		if col.Bounds().ContainsCol(x) {
			return col
		}
	}
	return nil
}

// CardAt returns the card drawn at (x, y). Columns are scanned right to left
// so the last drawn entity wins on a shared edge.
func (e *Engine) CardAt(x, y int) *domain.Card {
	cols := e.board.Columns()
	for i := len(cols) - 1; i >= 0; i-- {
		for _, card := range cols[i].Cards() {
			if card.Bounds().Contains(x, y) {
				return card
			}
		}
	}
	return nil
}

// MenuOptionAt returns the open menu's option at (x, y), or nil.
func (e *Engine) MenuOptionAt(x, y int) *MenuOption {
	if e.menu == nil {
		return nil
	}
	for _, opt := range e.menu.Options {
		if opt.Bounds().Contains(x, y) {
			return opt
		}
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/evanschultz/kanmouse/internal/config"
	"github.com/evanschultz/kanmouse/internal/domain"
)

// demoCard is one walkthrough card; column counts from the left, -1 is the last column.
type demoCard struct {
	column      int
	title       string
	description string
}

// demoCards walk a new user through every gesture.
var demoCards = []demoCard{
	{0, "Test arrow keys", "Why not press enter?"},
	{0, "Click a card", "It will move 👀"},
	{0, "Right click one now!", "⇽ ⇽ ⇽ ⇽ ⇽"},
	{1, "Scroll wheel in a column", "You will need multiple cards"},
	{1, "This should help", "Awesome"},
	{-1, "Click & Drag", "In a CLI? Dumb, but fun!"},
	{-1, "Click a column", "Switch columns!"},
}

// buildBoard creates the board described by cfg, seeds it, and selects the
// active column's first card.
func buildBoard(cfg config.Config) (*domain.Board, error) {
	specs := make([]domain.ColumnSpec, 0, len(cfg.Board.Columns))
	for _, col := range cfg.Board.Columns {
		specs = append(specs, domain.ColumnSpec{
			Title: strings.TrimSpace(col.Title),
			Role:  domain.ColumnRole(strings.ToLower(strings.TrimSpace(col.Role))),
		})
	}
	board, err := domain.NewBoard(specs)
	if err != nil {
		return nil, err
	}

	if cfg.Board.SeedDemoCards {
		cols := board.Columns()
		for _, demo := range demoCards {
			idx := demo.column
			if idx < 0 || idx >= len(cols) {
				idx = len(cols) - 1
			}
			if _, err := board.AddCard(cols[idx], demo.title, demo.description); err != nil {
				return nil, fmt.Errorf("seed demo card %q: %w", demo.title, err)
			}
		}
	}
	for idx, card := range cfg.Cards {
		col := board.ColumnByTitle(strings.TrimSpace(card.Column))
		if col == nil {
			return nil, fmt.Errorf("cards[%d]: %w: %q", idx, domain.ErrUnknownColumn, card.Column)
		}
		if _, err := board.AddCard(col, card.Title, card.Description); err != nil {
			return nil, fmt.Errorf("cards[%d]: %w", idx, err)
		}
	}

	if first := board.Active().First(); first != nil {
		if err := board.Select(first); err != nil {
			return nil, err
		}
	}
	return board, nil
}

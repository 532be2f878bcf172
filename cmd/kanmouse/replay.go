package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanschultz/kanmouse/internal/config"
	"github.com/evanschultz/kanmouse/internal/domain"
	"github.com/evanschultz/kanmouse/internal/engine"
	"github.com/evanschultz/kanmouse/internal/pointer"
	"github.com/evanschultz/kanmouse/internal/tui"
)

// replayOptions holds replay flag values.
type replayOptions struct {
	inPath string
	width  int
	height int
	print  bool
}

// replayResult is the outcome of feeding one capture through a fresh board.
type replayResult struct {
	Applied  int
	Dropped  int
	Rejected int
	Board    *domain.Board
	Frame    string
}

// newReplayCommand replays a capture against a freshly built board.
func newReplayCommand(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	ro := replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay captured pointer reports and print the resulting board",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if strings.TrimSpace(ro.inPath) == "" {
				return errors.New("--in is required")
			}
			if ro.width < 1 || ro.height < 1 {
				return fmt.Errorf("invalid screen size %dx%d", ro.width, ro.height)
			}
			rt, err := opts.setup(stderr, false)
			if err != nil {
				return err
			}
			defer rt.close(stderr)
			return runReplay(rt, ro, stdout)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&ro.inPath, "in", "", "capture file written by record")
	flags.IntVar(&ro.width, "width", 120, "screen width the capture was taken at")
	flags.IntVar(&ro.height, "height", 35, "screen height the capture was taken at")
	flags.BoolVar(&ro.print, "print", false, "print the final frame")
	return cmd
}

func runReplay(rt *session, ro replayOptions, stdout io.Writer) error {
	logger := rt.logger
	in, err := os.Open(ro.inPath)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer func() { _ = in.Close() }()

	logger.Info("command flow start", "command", "replay", "in", ro.inPath)
	res, err := replay(in, rt.cfg, ro.width, ro.height, logger)
	if err != nil {
		logger.Error("command flow failed", "command", "replay", "err", err)
		return fmt.Errorf("replay: %w", err)
	}
	logger.Info("command flow complete", "command", "replay", "applied", res.Applied, "dropped", res.Dropped, "rejected", res.Rejected)

	_, _ = fmt.Fprintf(stdout, "applied: %d\ndropped: %d\nrejected: %d\n", res.Applied, res.Dropped, res.Rejected)
	writeBoardSummary(stdout, res.Board)
	if ro.print {
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprintln(stdout, res.Frame)
	}
	return nil
}

// replay renders before every report so each one is hit-tested against the
// layout the user was looking at.
func replay(in io.Reader, cfg config.Config, width, height int, logger engine.Logger) (replayResult, error) {
	board, err := buildBoard(cfg)
	if err != nil {
		return replayResult{}, fmt.Errorf("build board: %w", err)
	}
	eng := engine.New(board, engine.WithLogger(logger))
	renderer := tui.NewBoardRenderer(toTUIUIConfig(cfg))

	res := replayResult{Board: board}
	scanner := bufio.NewScanner(in)
	scanner.Split(pointer.ScanReports)
	for scanner.Scan() {
		renderer.Render(eng, width, height, tui.Chrome{})
		err := eng.HandleSequence(scanner.Bytes())
		switch {
		case err == nil:
			res.Applied++
		case errors.Is(err, pointer.ErrMalformed):
			res.Dropped++
		default:
			res.Rejected++
			logger.Debug("report rejected", "err", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read capture: %w", err)
	}
	res.Frame = renderer.Render(eng, width, height, tui.Chrome{})
	return res, nil
}

// writeBoardSummary prints one line per column, then the selection.
func writeBoardSummary(w io.Writer, board *domain.Board) {
	for _, col := range board.Columns() {
		marker := " "
		if col.IsActive() {
			marker = "*"
		}
		titles := make([]string, 0, col.Len())
		for _, card := range col.Cards() {
			titles = append(titles, fmt.Sprintf("#%d %s", card.ID, card.Title))
		}
		_, _ = fmt.Fprintf(w, "%s %s (%d): %s\n", marker, col.Title, col.Len(), strings.Join(titles, ", "))
	}
	if card := board.Selected(); card != nil {
		_, _ = fmt.Fprintf(w, "selected: #%d %s\n", card.ID, card.Title)
	} else {
		_, _ = fmt.Fprintln(w, "selected: none")
	}
}

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/evanschultz/kanmouse/internal/engine"
	"github.com/evanschultz/kanmouse/internal/pointer"
)

// recordStats summarizes one capture.
type recordStats struct {
	Kept    int
	Dropped int
}

// newRecordCommand captures raw pointer reports from the terminal into a file.
func newRecordCommand(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture raw pointer reports to a file until q is pressed",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rt, err := opts.setup(stderr, true)
			if err != nil {
				return err
			}
			defer rt.close(stderr)
			if outPath == "" {
				outPath = rt.paths.RecordingPath(time.Now())
			}
			return runRecord(rt, outPath, stdout)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "capture file (default: <data>/recordings/<timestamp>.mouse)")
	return cmd
}

// runRecord puts the terminal in raw mode with any-event tracking on and
// copies every valid report to outPath.
func runRecord(rt *session, outPath string, stdout io.Writer) error {
	logger := rt.logger
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create recordings dir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create capture file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logger.Warn("capture file close failed", "path", outPath, "err", closeErr)
		}
	}()

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		state, err := term.MakeRaw(f.Fd())
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() {
			if restoreErr := term.Restore(f.Fd(), state); restoreErr != nil {
				logger.Warn("terminal restore failed", "err", restoreErr)
			}
		}()
	}
	_, _ = io.WriteString(stdout, pointer.EnableTracking())
	defer func() { _, _ = io.WriteString(stdout, pointer.DisableTracking()) }()

	logger.Info("recording pointer reports", "path", outPath)
	stats, err := capture(stdin, out, logger)
	if err != nil {
		logger.Error("recording failed", "path", outPath, "err", err)
		return fmt.Errorf("record: %w", err)
	}
	logger.Info("recording complete", "path", outPath, "kept", stats.Kept, "dropped", stats.Dropped)
	_, _ = fmt.Fprintf(stdout, "%s\r\nrecorded %d reports (%d dropped) to %s\r\n", pointer.DisableTracking(), stats.Kept, stats.Dropped, outPath)
	return nil
}

// capture copies decodable reports from in to out until q, ctrl+c or EOF.
func capture(in io.Reader, out io.Writer, logger engine.Logger) (recordStats, error) {
	var (
		stats recordStats
		mouse pointer.Mouse
	)
	scanner := bufio.NewScanner(in)
	scanner.Split(untilQuit)
	for scanner.Scan() {
		report := scanner.Bytes()
		ev, err := mouse.Decode(report)
		if err != nil {
			stats.Dropped++
			logger.Debug("report dropped", "err", err)
			continue
		}
		if _, err := out.Write(report); err != nil {
			return stats, fmt.Errorf("write report: %w", err)
		}
		stats.Kept++
		logger.Debug("report captured", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return stats, fmt.Errorf("read input: %w", err)
	}
	return stats, nil
}

// untilQuit splits pointer reports like pointer.ScanReports and stops at a q
// or ctrl+c typed between reports.
func untilQuit(data []byte, atEOF bool) (int, []byte, error) {
	end := bytes.IndexByte(data, ansi.ESC)
	if end < 0 {
		end = len(data)
	}
	if i := bytes.IndexAny(data[:end], "q\x03"); i >= 0 {
		return i + 1, nil, bufio.ErrFinalToken
	}
	return pointer.ScanReports(data, atEOF)
}

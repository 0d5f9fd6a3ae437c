// Package export writes trajectories to interchange formats. Writers take an
// io.Writer so callers decide the destination; file handling stays in the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	v1 "github.com/kepler-works/ephem/api/v1"
	"github.com/kepler-works/ephem/pkg/errs"
)

// Write renders traj in the given format and returns the byte count written.
func Write(w io.Writer, format v1.ExportFormat, traj v1.Trajectory) (int64, error) {
	const op = "export.write"
	cw := &countingWriter{w: w}

	var err error
	switch format {
	case v1.FormatCSV:
		err = WriteCSV(cw, traj.Samples)
	case v1.FormatTable:
		err = WriteTable(cw, traj.Samples)
	case v1.FormatJSON:
		err = WriteJSON(cw, traj)
	default:
		return 0, errs.Newf(errs.ErrExportFormat, op, "unknown export format %q", format).
			WithAdvice("Formats: csv, table, json.")
	}
	if err != nil {
		return cw.n, errs.Wrap(err, errs.ErrExportWrite, op)
	}
	return cw.n, nil
}

// WriteCSV writes a comma-separated position table with an X,Y,Z header row.
// Values keep full round-trip precision.
func WriteCSV(w io.Writer, samples []v1.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"X", "Y", "Z"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Position.X, 'g', -1, 64),
			strconv.FormatFloat(s.Position.Y, 'g', -1, 64),
			strconv.FormatFloat(s.Position.Z, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes one fixed-point line per sample: epoch, position, velocity,
// seven space-separated fields with six decimals. Lines are newline-separated
// with no header and no trailing newline.
func WriteTable(w io.Writer, samples []v1.Sample) error {
	for i, s := range samples {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		line := fmt.Sprintf("%.6f %.6f %.6f %.6f %.6f %.6f %.6f",
			s.Epoch,
			s.Position.X, s.Position.Y, s.Position.Z,
			s.Velocity.X, s.Velocity.Y, s.Velocity.Z)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the full trajectory document, indented.
func WriteJSON(w io.Writer, traj v1.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(traj)
}

// Filename derives the conventional export file name for a target.
func Filename(target string, format v1.ExportFormat, at time.Time) string {
	ext := "txt"
	switch format {
	case v1.FormatCSV:
		ext = "csv"
	case v1.FormatJSON:
		ext = "json"
	}
	return fmt.Sprintf("%s_%s.%s", strings.ToLower(target), at.UTC().Format("20060102T150405"), ext)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

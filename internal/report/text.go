package report

import (
	"FlowTagger/internal/model"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Render writes the two-section plain-text report. Keys appear in the order
// they were first counted.
func Render(w io.Writer, counts *model.Counts) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Tag Counts:")
	fmt.Fprintln(bw, "Tag,Count")
	for tag, n := range counts.Tags.All() {
		fmt.Fprintf(bw, "%s: %d\n", tag, n)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Port/Protocol Combination Counts:")
	fmt.Fprintln(bw, "Port,Protocol,Count")
	for key, n := range counts.PortProtocols.All() {
		fmt.Fprintf(bw, "%s,%s,%d\n", key.DstPort, key.Protocol, n)
	}

	return bw.Flush()
}

// TextWriter writes the report to a plain-text file.
type TextWriter struct {
	path string
}

// NewTextWriter creates a writer for the report file at path.
func NewTextWriter(path string) model.Writer {
	return &TextWriter{path: path}
}

func (w *TextWriter) Name() string {
	return "text"
}

// Write renders the report in memory and then replaces the file at the
// configured path with it.
func (w *TextWriter) Write(_ context.Context, report *model.Report) error {
	var buf bytes.Buffer
	if err := Render(&buf, report.Counts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create report file '%s': %w", w.path, err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report file '%s': %w", w.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close report file '%s': %w", w.path, err)
	}

	log.Printf("Wrote %d tags and %d port/protocol combinations to %s", report.Counts.Tags.Len(), report.Counts.PortProtocols.Len(), w.path)
	return nil
}

func (w *TextWriter) Close() error {
	return nil
}

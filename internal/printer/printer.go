// Package printer writes renderings to a timestamped output file and echoes
// them to standard output.
package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
)

const (
	outputFilePrefix = "codebase_structure_"
	outputFileSuffix = ".txt"
	timestampLayout  = "20060102_150405"
	outputHeader     = "Codebase Structure:"
)

// Printer handles persisting and displaying a rendering.
type Printer struct {
	stdout    io.Writer
	outputDir string
	useColors bool
	now       func() time.Time
}

// New creates a Printer with default settings: stdout echo, the invoking
// user's Desktop folder as the file destination, wall-clock timestamps.
func New() *Printer {
	return &Printer{
		stdout: os.Stdout,
		now:    time.Now,
	}
}

// WithOutput sets the echo destination.
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.stdout = w
	return p
}

// WithOutputDir overrides the directory the output file is written to.
func (p *Printer) WithOutputDir(dir string) *Printer {
	p.outputDir = dir
	return p
}

// WithColors enables or disables colored output.
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithClock sets the time source used for output file naming.
func (p *Printer) WithClock(now func() time.Time) *Printer {
	p.now = now
	return p
}

// Save writes the rendering to a timestamped file and returns its path.
// The file is UTF-8, one rendered line per text line, no trailing metadata.
func (p *Printer) Save(rendering string) (string, error) {
	dir := p.outputDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("printer: resolving home directory: %w", err)
		}
		dir = filepath.Join(home, "Desktop")
	}

	name := outputFilePrefix + p.now().Format(timestampLayout) + outputFileSuffix
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(rendering), 0o644); err != nil {
		return "", fmt.Errorf("printer: writing %q: %w", path, err)
	}
	return path, nil
}

// Echo prints the confirmation line, a blank line, a header, then the full
// rendering.
func (p *Printer) Echo(outputPath, rendering string) {
	shownPath := outputPath
	if p.useColors {
		shownPath = color.CyanString(outputPath)
	}
	fmt.Fprintf(p.stdout, "Codebase structure saved to: %s\n", shownPath)
	fmt.Fprintf(p.stdout, "\n%s\n", outputHeader)
	fmt.Fprintln(p.stdout, rendering)
}

// Package report builds the human readable summary printed at the end of
// every run.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bagy2shopify/internal/apperr"
)

const ruleWidth = 50

type Report struct {
	lines []string
}

// New starts a report with an underlined title.
func New(title string) *Report {
	return &Report{lines: []string{title, strings.Repeat("=", ruleWidth)}}
}

// Section adds a blank line and a section heading.
func (r *Report) Section(name string) *Report {
	r.lines = append(r.lines, "", name+":")
	return r
}

// Item adds an indented "label: value" line.
func (r *Report) Item(label string, value any) *Report {
	r.lines = append(r.lines, fmt.Sprintf("   %s: %v", label, value))
	return r
}

// Linef adds a free form indented line.
func (r *Report) Linef(format string, args ...any) *Report {
	r.lines = append(r.lines, "   "+fmt.Sprintf(format, args...))
	return r
}

func (r *Report) String() string {
	return strings.Join(r.lines, "\n")
}

func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.String())
}

// Save writes the report text to path, creating parent directories.
func (r *Report) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.New(apperr.KindSink, "falha ao criar diretório de "+path, err)
	}
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return apperr.New(apperr.KindSink, "falha ao salvar "+path, err)
	}
	return nil
}

// Package sheet writes and reads the single-sheet XLSX files exchanged
// between the migration steps.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"bagy2shopify/internal/apperr"
)

const defaultSheet = "Sheet1"

// Table is a header row plus data rows. Cell values may be string, int,
// float64, bool or nil.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
	// Widths sets column widths from the first column on; zero leaves the
	// default width.
	Widths []float64
	// Styled renders the header bold white on blue, centered.
	Styled bool
}

var headerStyle = &excelize.Style{
	Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
	Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
	Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
}

// Write saves t to path, creating parent directories.
func Write(path string, t Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.New(apperr.KindSink, "falha ao criar diretório de "+path, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	name := t.Name
	if name == "" {
		name = defaultSheet
	}
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return apperr.New(apperr.KindSink, "nome de planilha inválido", err)
		}
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return apperr.New(apperr.KindSink, "falha ao abrir planilha", err)
	}
	for i, w := range t.Widths {
		if w <= 0 {
			continue
		}
		if err := sw.SetColWidth(i+1, i+1, w); err != nil {
			return apperr.New(apperr.KindSink, "largura de coluna inválida", err)
		}
	}

	var opts []excelize.RowOpts
	if t.Styled {
		id, err := f.NewStyle(headerStyle)
		if err != nil {
			return apperr.New(apperr.KindSink, "falha ao criar estilo", err)
		}
		opts = append(opts, excelize.RowOpts{StyleID: id})
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, opts...); err != nil {
		return apperr.New(apperr.KindSink, "falha ao escrever cabeçalho", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperr.New(apperr.KindSink, "coordenada inválida", err)
		}
		if err := sw.SetRow(cell, cleanRow(row)); err != nil {
			return apperr.New(apperr.KindSink, fmt.Sprintf("falha ao escrever linha %d", i+2), err)
		}
	}
	if err := sw.Flush(); err != nil {
		return apperr.New(apperr.KindSink, "falha ao finalizar planilha", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperr.New(apperr.KindSink, "falha ao salvar "+path, err)
	}
	return nil
}

func cleanRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if v == nil {
			v = ""
		}
		out[i] = v
	}
	return out
}

// Record is one data row keyed by header name.
type Record map[string]string

// Get returns the trimmed value of a column, "" when absent.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Read loads the first sheet of path. The first row is the header; empty
// rows are skipped.
func Read(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.New(apperr.KindSink, "falha ao abrir "+path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.New(apperr.KindSink, "falha ao ler "+path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	var out []Record
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

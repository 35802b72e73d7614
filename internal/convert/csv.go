package convert

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the header followed by rows.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header[:]); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(rows[i].Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

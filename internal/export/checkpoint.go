// Package export turns fetched source records into the staging files
// (JSON snapshots and spreadsheets) the later steps read.
package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"bagy2shopify/internal/apperr"
)

// SaveJSON writes records as an indented JSON array without escaping
// non-ASCII text.
func SaveJSON(path string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return apperr.New(apperr.KindSink, "falha ao serializar "+path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.New(apperr.KindSink, "falha ao criar diretório de "+path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperr.New(apperr.KindSink, "falha ao salvar "+path, err)
	}
	return nil
}

// LoadJSON reads a snapshot written by SaveJSON.
func LoadJSON(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.KindSink, "arquivo "+path+" não encontrado", err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperr.New(apperr.KindRecord, "arquivo "+path+" não é uma lista JSON", err)
	}
	return records, nil
}

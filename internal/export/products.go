package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/sheet"
)

// ProductsTable lays out raw products with one column per top level key of
// the first product, in the order the API sent them. Nested values are
// written as compact JSON.
func ProductsTable(records []json.RawMessage) (sheet.Table, error) {
	t := sheet.Table{Name: "Produtos"}
	if len(records) == 0 {
		return t, nil
	}
	header, err := orderedKeys(records[0])
	if err != nil {
		return t, apperr.New(apperr.KindRecord, "primeiro produto não é um objeto", err)
	}
	t.Header = header

	for _, r := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r, &fields); err != nil {
			continue
		}
		row := make([]any, len(header))
		for i, k := range header {
			row[i] = cellValue(fields[k])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

var errNotObject = errors.New("not a JSON object")

// orderedKeys returns the keys of a JSON object in document order.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}
	return keys, nil
}

func cellValue(raw json.RawMessage) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case 't', 'f':
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			return b
		}
	case '{', '[':
		var buf bytes.Buffer
		if json.Compact(&buf, raw) == nil {
			return buf.String()
		}
	default:
		var f float64
		if json.Unmarshal(raw, &f) == nil {
			return f
		}
	}
	return string(raw)
}

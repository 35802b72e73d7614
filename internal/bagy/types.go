package bagy

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric field the API sends as a JSON number, a numeric
// string or null. Anything unparsable decodes as an absent value.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// ParseAmount accepts "10.5", "10,50" and surrounding spaces.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: d, Valid: true}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		*a = Amount{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = Amount{}
			return nil
		}
		*a = ParseAmount(s)
	case 't', 'f', '[', '{':
		*a = Amount{}
	default:
		*a = ParseAmount(string(b))
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// IsZero is true for absent values and for 0.
func (a Amount) IsZero() bool {
	return !a.Valid || a.Value.IsZero()
}

func (a Amount) Float64() float64 {
	if !a.Valid {
		return 0
	}
	f, _ := a.Value.Float64()
	return f
}

func (a Amount) Int() int {
	if !a.Valid {
		return 0
	}
	return int(a.Value.IntPart())
}

// String renders the value as sent (normalized), or "" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Value.String()
}

// Text is a loosely typed scalar: ids and codes arrive as numbers on some
// endpoints and as strings on others.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	// numbers, booleans and nested values keep their JSON text
	*t = Text(b)
	return nil
}

func (t Text) String() string { return string(t) }

// Flag decodes booleans sent as true/false, 0/1 or "0"/"1".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag(ParseFlag(strings.Trim(string(bytes.TrimSpace(b)), `"`)))
	return nil
}

// ParseFlag is the truthiness rule shared by JSON and spreadsheet cells.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "sim", "verdadeiro":
		return true
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return n != 0
	}
	return false
}

//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a money or measurement value kept in its textual form.
// The backend serialises decimals as strings but some endpoints emit numbers;
// both decode into the same representation.
type Decimal string

// UnmarshalJSON accepts a JSON string, number, or null.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

// MarshalJSON emits the value as a string, or null when empty.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// IsZero reports whether no value is set.
func (d Decimal) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

// Float parses the value, returning zero when it is empty or malformed.
func (d Decimal) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(d)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Money formats the value with two decimals, or "-" when unset.
func (d Decimal) Money() string {
	if d.IsZero() {
		return "-"
	}
	return strconv.FormatFloat(d.Float(), 'f', 2, 64)
}

func (d Decimal) String() string { return string(d) }

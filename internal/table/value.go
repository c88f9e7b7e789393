// Package table holds the in-memory tabular model shared by ingestion, analysis and export.
//
// Rows carry a dynamic, per-source schema: each cell is a tagged Value (null, string or number)
// and each Record maps column names to Values in header order.
package table

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Kind identifies the type carried by a Value.
type Kind int

const (
	// KindNull marks a missing or empty cell.
	KindNull Kind = iota
	// KindString is free text.
	KindString
	// KindNumber is a numeric cell. The raw text is kept alongside the parsed float.
	KindNumber
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// numericRegex matches integers, decimals and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// nullMarkers are cell texts read as missing values.
var nullMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-NaN": true, "-nan": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// Value is a single tagged cell.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Null returns the missing-value marker.
func Null() Value {
	return Value{kind: KindNull}
}

// String wraps text as a string Value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number wraps a float as a number Value. NaN is stored as Null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64), num: f}
}

// Parse infers the Value of a raw CSV cell.
// Null markers become Null, numeric literals become Number (keeping the raw text),
// everything else is a String.
func Parse(raw string) Value {
	if nullMarkers[raw] {
		return Null()
	}
	if numericRegex.MatchString(raw) {
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil && !math.IsInf(f, 0) {
			return Value{kind: KindNumber, text: raw, num: f}
		}
	}
	return String(raw)
}

// Kind returns the value kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the missing-value marker.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the textual form of v. Null renders as the empty string.
func (v Value) Text() string {
	return v.text
}

// Float returns the numeric value and whether v is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Interface returns v as nil, string or float64, suitable for database/sql arguments.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// Equal reports whole-value equality. Numbers compare by value, so "1" equals "1.0".
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.text == o.text
	default:
		return true
	}
}

// key returns a canonical, unambiguous encoding of v used for row identity.
func (v Value) key() string {
	switch v.kind {
	case KindNumber:
		if v.num == 0 {
			// -0 and 0 compare equal
			return "n0"
		}
		return "n" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return "s" + strconv.Itoa(len(v.text)) + ":" + v.text
	default:
		return "z"
	}
}

// MarshalJSON encodes Null as null, numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindString:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

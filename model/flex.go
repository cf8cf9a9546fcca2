package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that accepts either a JSON number or a numeric string
// on decode. The POS API is inconsistent about which one it sends for amounts
// and prices. It always marshals back as a plain number.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			// Non-numeric text degrades to zero, like parseFloat(x) || 0.
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'f', -1, 64)), nil
}

func (n Number) Float64() float64 { return float64(n) }

// Text is a string that accepts either a JSON string or a number on decode
// and always marshals back as a string. Stock quantities stay text on the
// wire, preserving the remote representation exactly (leading zeros included).
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*t = ""
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*t = Text(str)
		return nil
	}
	*t = Text(s)
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t Text) String() string { return string(t) }

// Float64 parses the text as a number, returning 0 for anything unparseable.
func (t Text) Float64() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil {
		return 0
	}
	return f
}

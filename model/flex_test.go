package model

import (
	"encoding/json"
	"testing"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", `120`, 120},
		{"decimal", `99.5`, 99.5},
		{"numeric string", `"120"`, 120},
		{"decimal string", `"99.50"`, 99.5},
		{"padded string", `" 40 "`, 40},
		{"non-numeric string", `"n/a"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if n.Float64() != tt.want {
				t.Errorf("got %v, want %v", n.Float64(), tt.want)
			}
		})
	}
}

func TestNumberMarshalPlain(t *testing.T) {
	out, err := json.Marshal(Number(42.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "42.5" {
		t.Errorf("got %s, want 42.5", out)
	}
	out, err = json.Marshal(Number(10))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "10" {
		t.Errorf("got %s, want 10", out)
	}
}

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"string", `"05"`, "05"},
		{"number", `12`, "12"},
		{"decimal number", `12.5`, "12.5"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Text
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if v.String() != tt.want {
				t.Errorf("got %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestTextRoundTripPreservesLeadingZeros(t *testing.T) {
	var v Text
	if err := json.Unmarshal([]byte(`"007"`), &v); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"007"` {
		t.Errorf("got %s, want \"007\"", out)
	}
	if v.Float64() != 7 {
		t.Errorf("Float64() = %v, want 7", v.Float64())
	}
}

package model

import (
	"encoding/json"
	"testing"
)

func TestCartDataUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantLen   int
		wantFirst CartLine
	}{
		{
			name:      "proper array",
			in:        `[{"name":"Tea","qty":2,"sellPrice":20}]`,
			wantLen:   1,
			wantFirst: CartLine{Name: "Tea", Qty: 2, SellPrice: 20},
		},
		{
			name:      "single-quoted string form",
			in:        `"[{'name':'Tea','qty':2,'sellPrice':20}]"`,
			wantLen:   1,
			wantFirst: CartLine{Name: "Tea", Qty: 2, SellPrice: 20},
		},
		{
			name:      "string qty and price inside string form",
			in:        `"[{'name':'Dosa','qty':'3','sellPrice':'45.5'}]"`,
			wantLen:   1,
			wantFirst: CartLine{Name: "Dosa", Qty: 3, SellPrice: 45.5},
		},
		{name: "malformed string degrades to empty", in: `"not a cart"`, wantLen: 0},
		{name: "string holding a non-array degrades to empty", in: `"{'name':'Tea'}"`, wantLen: 0},
		{name: "null", in: `null`, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CartData
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if len(c) != tt.wantLen {
				t.Fatalf("got %d lines, want %d", len(c), tt.wantLen)
			}
			if tt.wantLen > 0 && c[0] != tt.wantFirst {
				t.Errorf("first line = %+v, want %+v", c[0], tt.wantFirst)
			}
		})
	}
}

func TestTransactionUnmarshalMixedTypes(t *testing.T) {
	payload := `{
		"transactions_id": 481,
		"payment_mode": "CASH",
		"transaction_time": "2025-03-14 19:22:01",
		"cart_data": "[{'name':'Paneer Tikka','qty':1,'sellPrice':180}]",
		"total_amount": "180",
		"table_number": "T4",
		"hotel_name": "Hotel Annapurna"
	}`
	var tx Transaction
	if err := json.Unmarshal([]byte(payload), &tx); err != nil {
		t.Fatal(err)
	}
	if tx.ID.String() != "481" {
		t.Errorf("ID = %q, want 481", tx.ID)
	}
	if tx.TotalAmount.Float64() != 180 {
		t.Errorf("TotalAmount = %v, want 180", tx.TotalAmount)
	}
	if len(tx.CartData) != 1 || tx.CartData[0].Name != "Paneer Tikka" {
		t.Errorf("CartData = %+v", tx.CartData)
	}
}

func TestParseTransactionTime(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025-03-14T19:22:01Z", true},
		{"2025-03-14T19:22:01", true},
		{"2025-03-14 19:22:01", true},
		{"2025-03-14", true},
		{"14/03/2025", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := ParseTransactionTime(tt.in); ok != tt.ok {
			t.Errorf("ParseTransactionTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

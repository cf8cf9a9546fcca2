package model

import (
	"encoding/json"
	"strings"
	"time"
)

// CartLine is one sold line inside a transaction's cart payload.
type CartLine struct {
	Name      string `json:"name"`
	Qty       Number `json:"qty"`
	SellPrice Number `json:"sellPrice"`
}

// CartData is the list of cart lines of a transaction. The remote API sends
// it either as a proper JSON array or as a single string using single-quote
// delimited pseudo-JSON; the string form is normalized to double quotes
// before parsing. Malformed payloads decode to an empty list, never an error.
type CartData []CartLine

func (c *CartData) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*c = nil
		return nil
	}
	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			*c = nil
			return nil
		}
		var lines []CartLine
		if err := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &lines); err != nil {
			*c = nil
			return nil
		}
		*c = lines
		return nil
	}
	var lines []CartLine
	if err := json.Unmarshal(b, &lines); err != nil {
		*c = nil
		return nil
	}
	*c = lines
	return nil
}

// Transaction is a completed order as reported by the POS API. Transactions
// are immutable once cached and are refreshed wholesale on sync.
type Transaction struct {
	ID          Text     `json:"transactions_id"`
	PaymentMode string   `json:"payment_mode"`
	Time        string   `json:"transaction_time"`
	CartData    CartData `json:"cart_data"`
	TotalAmount Number   `json:"total_amount"`
	TableNumber Text     `json:"table_number"`
	HotelName   string   `json:"hotel_name"`
}

var transactionTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTransactionTime parses the loosely formatted transaction_time field.
// Layouts without a zone are taken as local time.
func ParseTransactionTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range transactionTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

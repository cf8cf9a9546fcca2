// Package dashboard serves the sales chart and the filtered transaction table.
package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"posdesk/aggregation"
	"posdesk/model"
	"posdesk/syncer"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

func parseBucket(raw string) model.TimeBucket {
	switch model.TimeBucket(raw) {
	case model.BucketMonth:
		return model.BucketMonth
	case model.BucketYear:
		return model.BucketYear
	default:
		return model.BucketDay
	}
}

// GetSalesHandler returns the seven chart buckets for a hotel filter and time
// granularity. refresh=1 forces a remote sync before aggregating.
func GetSalesHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotel := r.URL.Query().Get("hotel")
		if hotel == "" {
			hotel = aggregation.AllHotels
		}
		bucket := parseBucket(r.URL.Query().Get("bucket"))
		force := r.URL.Query().Get("refresh") == "1"

		txs, err := sync.Transactions(r.Context(), force)
		if err != nil {
			log.Printf("WARN: transaction sync failed: %v", err)
			http.Error(w, "Failed to load transactions", http.StatusBadGateway)
			return
		}

		writeJSON(w, aggregation.BucketSales(txs, hotel, bucket, time.Now()))
	}
}

type transactionsResponse struct {
	Transactions []model.Transaction `json:"transactions"`
	Totals       model.Totals        `json:"totals"`
}

// GetTransactionsHandler returns the transactions of a hotel and date range
// together with their totals. Dates are yyyy-MM-dd; both default to today.
func GetTransactionsHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		hotel := q.Get("hotel")
		if hotel == "" {
			hotel = aggregation.AllHotels
		}
		force := q.Get("refresh") == "1"

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		start, ok := parseDateParam(q.Get("start"), today)
		if !ok {
			http.Error(w, "Invalid start date, expected yyyy-MM-dd", http.StatusBadRequest)
			return
		}
		end, ok := parseDateParam(q.Get("end"), today)
		if !ok {
			http.Error(w, "Invalid end date, expected yyyy-MM-dd", http.StatusBadRequest)
			return
		}

		txs, err := sync.Transactions(r.Context(), force)
		if err != nil {
			log.Printf("WARN: transaction sync failed: %v", err)
			http.Error(w, "Failed to load transactions", http.StatusBadGateway)
			return
		}

		rows := aggregation.FilterByDateRange(txs, hotel, start, end)
		writeJSON(w, transactionsResponse{
			Transactions: rows,
			Totals:       aggregation.Totals(rows),
		})
	}
}

// parseDateParam parses a yyyy-MM-dd query value; an absent value falls back
// to the start of today so the default range covers the whole calendar day.
func parseDateParam(raw string, fallback time.Time) (time.Time, bool) {
	if raw == "" {
		return fallback, true
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

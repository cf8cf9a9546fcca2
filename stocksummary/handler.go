// Package stocksummary serves the daily stock reconciliation report built from
// dated menu snapshots, plus its CSV and PDF exports.
package stocksummary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"posdesk/model"
	"posdesk/syncer"
)

const dateLayout = "2006-01-02"

// counts formats quantities with Indian digit grouping, same convention as
// the profit report.
var counts = message.NewPrinter(language.MustParse("en-IN"))

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

// buildRows derives reconciliation rows from a snapshot: added stock is the
// morning count, sold stock is the accumulated adjustment, available is the
// difference.
func buildRows(items []model.MenuItem) []model.StockSummaryRow {
	rows := make([]model.StockSummaryRow, 0, len(items))
	for _, item := range items {
		added := item.MorningStock.Float64()
		sold := item.AdjustStock.Float64()
		rows = append(rows, model.StockSummaryRow{
			ID:        item.ID.String(),
			Name:      item.Submenu,
			Added:     added,
			Sold:      sold,
			Available: added - sold,
		})
	}
	return rows
}

func summaryParams(r *http.Request) (hotel, date string, err error) {
	q := r.URL.Query()
	hotel = q.Get("hotel")
	if hotel == "" {
		return "", "", fmt.Errorf("hotel is required")
	}
	date = q.Get("date")
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, perr := time.Parse(dateLayout, date); perr != nil {
		return "", "", fmt.Errorf("invalid date, expected yyyy-MM-dd")
	}
	return hotel, date, nil
}

func summaryRows(r *http.Request, sync *syncer.Coordinator) (hotel, date string, rows []model.StockSummaryRow, status int, err error) {
	hotel, date, err = summaryParams(r)
	if err != nil {
		return "", "", nil, http.StatusBadRequest, err
	}

	// A date with no snapshot is an empty report, not an error.
	items, _ := sync.StockSummaryItems(hotel, date)
	rows = buildRows(items)

	if search := strings.TrimSpace(r.URL.Query().Get("q")); search != "" {
		needle := strings.ToLower(search)
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), needle) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if r.URL.Query().Get("sort") == "available" {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Available < rows[j].Available })
	}

	return hotel, date, rows, http.StatusOK, nil
}

// GetSummaryHandler returns the reconciliation rows for a hotel and date.
// Reads never hit the network; reading today before the first sync of the day
// falls back to the live menu cache.
func GetSummaryHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _, rows, status, err := summaryRows(r, sync)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, rows)
	}
}

// SyncSummaryHandler fetches the hotel's menu fresh and records it as today's
// snapshot. Past dates are never touched.
func SyncSummaryHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		hotel := r.URL.Query().Get("hotel")
		if hotel == "" {
			http.Error(w, "hotel is required", http.StatusBadRequest)
			return
		}

		items, err := sync.SyncStockSummary(r.Context(), hotel)
		if err != nil {
			if errors.Is(err, syncer.ErrHotelNotAuthorized) {
				http.Error(w, "Hotel is not in your authorized scope", http.StatusForbidden)
				return
			}
			log.Printf("WARN: stock summary sync for %s failed: %v", hotel, err)
			http.Error(w, "Failed to sync stock summary", http.StatusBadGateway)
			return
		}
		writeJSON(w, buildRows(items))
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportCSVHandler streams the reconciliation report as a CSV download.
func ExportCSVHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotel, date, rows, status, err := summaryRows(r, sync)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"ID", "Item Name", "Added Stock", "Sold Stock", "Available Stock"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, row := range rows {
			record := []string{
				quoteAll(row.ID),
				quoteAll(row.Name),
				quoteAll(counts.Sprintf("%v", row.Added)),
				quoteAll(counts.Sprintf("%v", row.Sold)),
				quoteAll(counts.Sprintf("%v", row.Available)),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("Stock_Summary_%s_%s.csv", hotel, date)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

// ExportPDFHandler renders the reconciliation report as a PDF table.
func ExportPDFHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotel, date, rows, status, err := summaryRows(r, sync)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, fmt.Sprintf("Stock Summary - %s", hotel))
		pdf.Ln(10)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Date: %s", date))
		pdf.Ln(12)

		headers := []string{"ID", "Item Name", "Added Stock", "Sold Stock", "Available Stock"}
		widths := []float64{40, 60, 30, 30, 30}

		pdf.SetFont("Arial", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			pdf.CellFormat(widths[0], 8, row.ID, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 8, row.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 8, counts.Sprintf("%v", row.Added), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 8, counts.Sprintf("%v", row.Sold), "1", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 8, counts.Sprintf("%v", row.Available), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			log.Printf("WARN: failed to render stock summary PDF: %v", err)
			http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("Stock_Summary_%s_%s.pdf", hotel, date)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

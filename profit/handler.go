// Package profit serves the per-item profit report and its CSV export.
package profit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"posdesk/aggregation"
	"posdesk/model"
	"posdesk/syncer"
)

const dateLayout = "2006-01-02"

// rupees formats amounts with Indian digit grouping (1,23,456.78), matching
// the rest of the product's reports.
var rupees = message.NewPrinter(language.MustParse("en-IN"))

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

func reportParams(r *http.Request) (hotel string, start, end time.Time, force bool, err error) {
	q := r.URL.Query()
	hotel = q.Get("hotel")
	if hotel == "" {
		return "", time.Time{}, time.Time{}, false, fmt.Errorf("hotel is required")
	}
	// Default to the whole of today, not the current instant.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	start, end = today, today
	if raw := q.Get("start"); raw != "" {
		start, err = time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return "", time.Time{}, time.Time{}, false, fmt.Errorf("invalid start date, expected yyyy-MM-dd")
		}
	}
	if raw := q.Get("end"); raw != "" {
		end, err = time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return "", time.Time{}, time.Time{}, false, fmt.Errorf("invalid end date, expected yyyy-MM-dd")
		}
	}
	return hotel, start, end, q.Get("refresh") == "1", nil
}

func buildReport(r *http.Request, sync *syncer.Coordinator) (string, model.ProfitReport, time.Time, time.Time, int, error) {
	hotel, start, end, force, err := reportParams(r)
	if err != nil {
		return "", model.ProfitReport{}, start, end, http.StatusBadRequest, err
	}

	txs, err := sync.Transactions(r.Context(), force)
	if err != nil {
		log.Printf("WARN: transaction sync failed: %v", err)
		return "", model.ProfitReport{}, start, end, http.StatusBadGateway, fmt.Errorf("failed to load transactions")
	}
	menu, err := sync.Menu(r.Context(), hotel, false)
	if err != nil {
		if errors.Is(err, syncer.ErrHotelNotAuthorized) {
			return "", model.ProfitReport{}, start, end, http.StatusForbidden, fmt.Errorf("hotel is not in your authorized scope")
		}
		log.Printf("WARN: menu sync for %s failed: %v", hotel, err)
		return "", model.ProfitReport{}, start, end, http.StatusBadGateway, fmt.Errorf("failed to load menu")
	}

	report := aggregation.ComputeProfit(txs, menu, hotel, start, end)
	return hotel, report, start, end, http.StatusOK, nil
}

// GetProfitHandler returns the profit breakdown for a hotel and date range.
func GetProfitHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, report, _, _, status, err := buildReport(r, sync)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, report)
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportProfitCSVHandler streams the same report as a CSV download.
func ExportProfitCSVHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotel, report, start, end, status, err := buildReport(r, sync)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"Item Name", "Qty Sold", "Selling Price", "Purchase Price", "Total Profit"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, line := range report.Items {
			record := []string{
				quoteAll(line.Name),
				quoteAll(rupees.Sprintf("%v", line.QtySold)),
				quoteAll(rupees.Sprintf("%.2f", line.SellingPrice)),
				quoteAll(rupees.Sprintf("%.2f", line.PurchasePrice)),
				quoteAll(rupees.Sprintf("%.2f", line.TotalProfit)),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}
		buf.WriteString("\r\n")
		buf.WriteString(strings.Join([]string{
			quoteAll("Total Profit"), "", "", "",
			quoteAll(rupees.Sprintf("%.2f", report.TotalProfit)),
		}, ",") + "\r\n")

		filename := fmt.Sprintf("Profit_%s_%s_to_%s.csv", hotel, start.Format(dateLayout), end.Format(dateLayout))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

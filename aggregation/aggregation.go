// Package aggregation computes the derived views of the back office: chart
// buckets, aggregate totals and profit breakdowns. Everything here is pure.
// Cached collections in, rows out, no I/O.
package aggregation

import (
	"strconv"
	"time"

	"posdesk/model"
)

// AllHotels is the filter value that disables hotel filtering.
const AllHotels = "All"

const bucketCount = 7

func matchesHotel(t model.Transaction, hotelFilter string) bool {
	return hotelFilter == AllHotels || hotelFilter == "" || t.HotelName == hotelFilter
}

// BucketSales produces exactly seven ordered buckets ending at now (the last
// seven days, months or years), summing total_amount of the transactions
// falling in each local-calendar window. Empty buckets report zero sales,
// never disappear. Transactions with unparseable timestamps are excluded.
func BucketSales(txs []model.Transaction, hotelFilter string, bucket model.TimeBucket, now time.Time) []model.SalesBucket {
	type parsed struct {
		at     time.Time
		amount float64
	}
	matched := make([]parsed, 0, len(txs))
	for _, t := range txs {
		if !matchesHotel(t, hotelFilter) {
			continue
		}
		at, ok := model.ParseTransactionTime(t.Time)
		if !ok {
			continue
		}
		matched = append(matched, parsed{at: at.In(now.Location()), amount: t.TotalAmount.Float64()})
	}

	buckets := make([]model.SalesBucket, 0, bucketCount)
	for i := 0; i < bucketCount; i++ {
		back := bucketCount - 1 - i

		var label string
		var inWindow func(time.Time) bool
		switch bucket {
		case model.BucketMonth:
			first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -back, 0)
			label = first.Format("Jan 06")
			inWindow = func(at time.Time) bool {
				return at.Year() == first.Year() && at.Month() == first.Month()
			}
		case model.BucketYear:
			year := now.Year() - back
			label = strconv.Itoa(year)
			inWindow = func(at time.Time) bool {
				return at.Year() == year
			}
		default: // Day
			day := now.AddDate(0, 0, -back)
			label = day.Format("Mon 2")
			y, m, d := day.Date()
			inWindow = func(at time.Time) bool {
				ay, am, ad := at.Date()
				return ay == y && am == m && ad == d
			}
		}

		sum := 0.0
		for _, p := range matched {
			if inWindow(p.at) {
				sum += p.amount
			}
		}
		buckets = append(buckets, model.SalesBucket{Name: label, Sales: sum})
	}
	return buckets
}

// endOfDay pins a range end to the last representable instant of its
// calendar day, making the range filter inclusive of the whole end date.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// FilterByDateRange returns the transactions for a hotel whose parsed time
// falls within [start, end], both ends inclusive; end is normalized to
// 23:59:59.999 of its calendar day first.
func FilterByDateRange(txs []model.Transaction, hotelFilter string, start, end time.Time) []model.Transaction {
	last := endOfDay(end)

	filtered := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if !matchesHotel(t, hotelFilter) {
			continue
		}
		at, ok := model.ParseTransactionTime(t.Time)
		if !ok {
			continue
		}
		if at.Before(start) || at.After(last) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Totals sums a filtered transaction list. The cash and UPI sub-totals match
// payment_mode exactly ("CASH"/"UPI"); records with other casing count toward
// the grand total only. That quirk is intentional and pinned by tests.
func Totals(txs []model.Transaction) model.Totals {
	totals := model.Totals{Count: len(txs)}
	for _, t := range txs {
		amount := t.TotalAmount.Float64()
		totals.TotalSales += amount
		switch t.PaymentMode {
		case "CASH":
			totals.CashTotal += amount
		case "UPI":
			totals.UPITotal += amount
		}
	}
	return totals
}

package aggregation

import (
	"testing"
	"time"

	"posdesk/model"
)

func cartTx(hotel, at string, lines ...model.CartLine) model.Transaction {
	return model.Transaction{
		HotelName: hotel,
		Time:      at,
		CartData:  model.CartData(lines),
	}
}

func profitWindow() (time.Time, time.Time) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	return day, day
}

func TestComputeProfitFullAndHalfPortions(t *testing.T) {
	menu := []model.MenuItem{
		{ID: "item_1", Submenu: "Tea", PurchasePrice: 10},
	}
	start, end := profitWindow()
	txs := []model.Transaction{
		cartTx("Hotel Annapurna", "2025-03-14 10:00:00",
			model.CartLine{Name: "Tea", Qty: 2, SellPrice: 20},
			model.CartLine{Name: "Tea (Half)", Qty: 1, SellPrice: 12},
		),
	}

	got := ComputeProfit(txs, menu, "Hotel Annapurna", start, end)

	if len(got.Items) != 2 {
		t.Fatalf("got %d lines, want 2 (half keeps its own row): %+v", len(got.Items), got.Items)
	}
	full := got.Items[0]
	if full.Name != "Tea" || full.TotalProfit != 20 {
		t.Errorf("full line = %+v, want Tea with profit 20", full)
	}
	half := got.Items[1]
	if half.Name != "Tea (Half)" || half.PurchasePrice != 5 || half.TotalProfit != 7 {
		t.Errorf("half line = %+v, want purchase 5 and profit 7", half)
	}
	if got.TotalProfit != 27 {
		t.Errorf("TotalProfit = %v, want 27", got.TotalProfit)
	}
}

func TestComputeProfitAccumulatesAcrossTransactions(t *testing.T) {
	menu := []model.MenuItem{{ID: "item_1", Submenu: "Dosa", PurchasePrice: 20}}
	start, end := profitWindow()
	txs := []model.Transaction{
		cartTx("Hotel Annapurna", "2025-03-14 09:00:00", model.CartLine{Name: "Dosa", Qty: 1, SellPrice: 50}),
		cartTx("Hotel Annapurna", "2025-03-14 13:00:00", model.CartLine{Name: "Dosa", Qty: 3, SellPrice: 50}),
	}

	got := ComputeProfit(txs, menu, "Hotel Annapurna", start, end)
	if len(got.Items) != 1 {
		t.Fatalf("got %d lines, want 1", len(got.Items))
	}
	if got.Items[0].QtySold != 4 {
		t.Errorf("QtySold = %v, want 4", got.Items[0].QtySold)
	}
	if got.TotalProfit != 120 {
		t.Errorf("TotalProfit = %v, want 120", got.TotalProfit)
	}
}

func TestComputeProfitSkipsUnresolvedLines(t *testing.T) {
	menu := []model.MenuItem{{ID: "item_1", Submenu: "Tea", PurchasePrice: 10}}
	start, end := profitWindow()
	txs := []model.Transaction{
		cartTx("Hotel Annapurna", "2025-03-14 10:00:00",
			model.CartLine{Name: "Off Menu Special", Qty: 5, SellPrice: 100},
			model.CartLine{Name: "Tea", Qty: 1, SellPrice: 20},
		),
	}

	got := ComputeProfit(txs, menu, "Hotel Annapurna", start, end)
	if len(got.Items) != 1 || got.Items[0].Name != "Tea" {
		t.Errorf("unresolved line should be skipped: %+v", got.Items)
	}
	if got.TotalProfit != 10 {
		t.Errorf("TotalProfit = %v, want 10", got.TotalProfit)
	}
}

func TestComputeProfitRespectsDateRangeAndHotel(t *testing.T) {
	menu := []model.MenuItem{{ID: "item_1", Submenu: "Tea", PurchasePrice: 10}}
	start, end := profitWindow()
	txs := []model.Transaction{
		cartTx("Hotel Annapurna", "2025-03-13 10:00:00", model.CartLine{Name: "Tea", Qty: 1, SellPrice: 20}),
		cartTx("Hotel Sagar", "2025-03-14 10:00:00", model.CartLine{Name: "Tea", Qty: 1, SellPrice: 20}),
	}

	got := ComputeProfit(txs, menu, "Hotel Annapurna", start, end)
	if len(got.Items) != 0 || got.TotalProfit != 0 {
		t.Errorf("expected empty report, got %+v", got)
	}
}

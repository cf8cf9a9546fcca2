package cache

import (
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"posdesk/database"
	"posdesk/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.InitDatabase(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return NewStore(db)
}

func TestTransactionsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.Transactions(); ok {
		t.Fatal("expected miss on empty store")
	}

	txs := []model.Transaction{
		{
			ID:          "481",
			PaymentMode: "CASH",
			Time:        "2025-03-14 19:22:01",
			CartData:    model.CartData{{Name: "Tea", Qty: 2, SellPrice: 20}},
			TotalAmount: 40,
			HotelName:   "Hotel Annapurna",
		},
	}
	if err := s.PutTransactions(txs); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Transactions()
	if !ok {
		t.Fatal("expected hit after put")
	}
	if !reflect.DeepEqual(got, txs) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, txs)
	}
}

func TestMenuRoundTripKeepsStockText(t *testing.T) {
	s := newTestStore(t)

	items := []model.MenuItem{
		{ID: "item_1", Submenu: "Masala Dosa", Stock: "05", MorningStock: "10", AdjustStock: 3, PurchasePrice: 22.5},
	}
	if err := s.PutMenu("Hotel Annapurna", items); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Menu("Hotel Annapurna")
	if !ok {
		t.Fatal("expected hit")
	}
	if got[0].Stock.String() != "05" {
		t.Errorf("stock = %q, want 05 (text preserved exactly)", got[0].Stock)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, items)
	}
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	s := newTestStore(t)

	if err := database.SetValue(s.db, "transactions", "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Transactions(); ok {
		t.Error("corrupt entry should read as a miss")
	}
}

func TestStockSnapshotAppendOnlyPerDate(t *testing.T) {
	s := newTestStore(t)
	hotel := "Hotel Annapurna"

	day1 := []model.MenuItem{{ID: "item_1", Submenu: "Tea", MorningStock: "20", AdjustStock: 5}}
	day2 := []model.MenuItem{{ID: "item_1", Submenu: "Tea", MorningStock: "30", AdjustStock: 0}}

	if err := s.PutStockSnapshot(hotel, "2025-01-01", day1); err != nil {
		t.Fatal(err)
	}
	if err := s.PutStockSnapshot(hotel, "2025-01-02", day2); err != nil {
		t.Fatal(err)
	}

	got1, ok := s.Snapshot(hotel, "2025-01-01")
	if !ok || !reflect.DeepEqual(got1, day1) {
		t.Errorf("day1 snapshot changed: %+v", got1)
	}
	got2, ok := s.Snapshot(hotel, "2025-01-02")
	if !ok || !reflect.DeepEqual(got2, day2) {
		t.Errorf("day2 snapshot wrong: %+v", got2)
	}

	// Rewriting one date leaves the other untouched.
	if err := s.PutStockSnapshot(hotel, "2025-01-02", day1); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Snapshot(hotel, "2025-01-01"); !reflect.DeepEqual(got, day1) {
		t.Error("rewriting 2025-01-02 disturbed 2025-01-01")
	}
}

func TestHotelsCommaJoined(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.Hotels(); ok {
		t.Fatal("expected miss before login")
	}
	if err := s.PutHotels([]string{"Hotel Annapurna", "Hotel Sagar"}); err != nil {
		t.Fatal(err)
	}

	raw, ok, err := database.GetValue(s.db, "hotels")
	if err != nil || !ok {
		t.Fatalf("raw read failed: %v %v", ok, err)
	}
	if raw != "Hotel Annapurna,Hotel Sagar" {
		t.Errorf("raw value = %q, want comma-joined form", raw)
	}

	hotels, ok := s.Hotels()
	if !ok || !reflect.DeepEqual(hotels, []string{"Hotel Annapurna", "Hotel Sagar"}) {
		t.Errorf("Hotels() = %v", hotels)
	}

	if !s.InScope("Hotel Sagar") {
		t.Error("Hotel Sagar should be in scope")
	}
	if s.InScope("Hotel Other") {
		t.Error("Hotel Other should not be in scope")
	}
	if s.InScope("") {
		t.Error("empty hotel name is never in scope")
	}
}

func TestCredentialsOnlyWithRememberMe(t *testing.T) {
	s := newTestStore(t)

	if err := s.PutCredentials("ravi", "secret", true); err != nil {
		t.Fatal(err)
	}
	u, p, ok := s.Credentials()
	if !ok || u != "ravi" || p != "secret" {
		t.Errorf("got (%q, %q, %v)", u, p, ok)
	}

	// Logging in without remember clears the stored values.
	if err := s.PutCredentials("ravi", "secret", false); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := s.Credentials(); ok {
		t.Error("credentials should be cleared when remember is off")
	}
}

func TestSessionSecretStable(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SessionSecret()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) == 0 {
		t.Fatal("empty secret")
	}
	second, err := s.SessionSecret()
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("secret changed between reads")
	}
}

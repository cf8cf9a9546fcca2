// Package cache is the typed, durable cache of remote POS state. It owns the
// key-naming convention of the underlying key-value store and all JSON
// (de)serialization. Reads never fail: a missing or corrupt entry is a miss.
package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"posdesk/database"
	"posdesk/model"
)

const (
	keyTransactions = "transactions"
	keyHotels       = "hotels"
	keyUsername     = "username"
	keyPassword     = "password"
	keyRememberMe   = "rememberMe"
	keyAuthToken    = "authToken"
	keyUserData     = "userData"
	keySecret       = "sessionSecret"
)

func menuKey(hotel string) string { return "menu_" + hotel }

func stockHistoryKey(hotel string) string { return "stock_history_" + hotel }

// Store is constructed once in main and passed by reference to everything
// that reads or mutates cached state. There are no package-level singletons.
type Store struct {
	db *sqlx.DB

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:       db,
		keyLocks: make(map[string]*sync.Mutex),
	}
}

// lockKey returns the mutex serializing read-modify-write cycles for one
// cache key. There is exactly one logical writer per scope key; the lock
// keeps an optimistic apply and a snapshot write from interleaving.
func (s *Store) lockKey(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	return lock
}

// readJSON reports a hit only when the entry exists and decodes cleanly.
// Corruption is logged and treated as a miss, never surfaced to the caller.
func (s *Store) readJSON(key string, out any) bool {
	raw, ok, err := database.GetValue(s.db, key)
	if err != nil {
		log.Printf("WARN: cache read %s failed: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("WARN: cache entry %s is corrupt, treating as miss: %v", key, err)
		return false
	}
	return true
}

// writeJSON replaces the entry with a full serialization of v. This is a
// snapshot cache: there are no partial writes.
func (s *Store) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry %s: %w", key, err)
	}
	return database.SetValue(s.db, key, string(data))
}

// Transactions returns the cached transaction collection for the whole
// authorized scope.
func (s *Store) Transactions() ([]model.Transaction, bool) {
	var txs []model.Transaction
	if !s.readJSON(keyTransactions, &txs) {
		return nil, false
	}
	return txs, true
}

func (s *Store) PutTransactions(txs []model.Transaction) error {
	return s.writeJSON(keyTransactions, txs)
}

// Menu returns one hotel's cached live menu.
func (s *Store) Menu(hotel string) ([]model.MenuItem, bool) {
	var items []model.MenuItem
	if !s.readJSON(menuKey(hotel), &items) {
		return nil, false
	}
	return items, true
}

func (s *Store) PutMenu(hotel string, items []model.MenuItem) error {
	return s.writeJSON(menuKey(hotel), items)
}

// StockHistory returns the full dated snapshot map for a hotel.
func (s *Store) StockHistory(hotel string) (map[string][]model.MenuItem, bool) {
	var history map[string][]model.MenuItem
	if !s.readJSON(stockHistoryKey(hotel), &history) {
		return nil, false
	}
	return history, true
}

// Snapshot returns one dated snapshot, date formatted yyyy-MM-dd.
func (s *Store) Snapshot(hotel, date string) ([]model.MenuItem, bool) {
	history, ok := s.StockHistory(hotel)
	if !ok {
		return nil, false
	}
	items, ok := history[date]
	return items, ok
}

// PutStockSnapshot writes one dated snapshot. Snapshots are append-only per
// date: writing date D replaces only date D, never any other entry.
func (s *Store) PutStockSnapshot(hotel, date string, items []model.MenuItem) error {
	key := stockHistoryKey(hotel)
	lock := s.lockKey(key)
	lock.Lock()
	defer lock.Unlock()

	history, ok := s.StockHistory(hotel)
	if !ok {
		history = make(map[string][]model.MenuItem)
	}
	history[date] = items
	return s.writeJSON(key, history)
}

// Hotels returns the authorized HotelScope, set once at login.
func (s *Store) Hotels() ([]string, bool) {
	raw, ok, err := database.GetValue(s.db, keyHotels)
	if err != nil {
		log.Printf("WARN: cache read %s failed: %v", keyHotels, err)
		return nil, false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	hotels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			hotels = append(hotels, trimmed)
		}
	}
	return hotels, len(hotels) > 0
}

// PutHotels stores the HotelScope comma-joined, matching the historical
// representation of the key.
func (s *Store) PutHotels(hotels []string) error {
	return database.SetValue(s.db, keyHotels, strings.Join(hotels, ","))
}

// InScope reports whether hotel belongs to the authorized HotelScope.
func (s *Store) InScope(hotel string) bool {
	hotels, ok := s.Hotels()
	if !ok {
		return false
	}
	for _, h := range hotels {
		if h == hotel {
			return true
		}
	}
	return false
}

// Package syncer decides, per data domain, whether to serve from the durable
// cache or to fetch fresh from the POS API, and owns the scope filtering and
// write-back of fetched results.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"posdesk/cache"
	"posdesk/model"
	"posdesk/remote"
)

// ErrHotelNotAuthorized is returned when a per-hotel fetch is requested for a
// hotel outside the operator's scope. Records without a hotel are treated the
// same way: unauthorized, never defaulted to visible.
var ErrHotelNotAuthorized = errors.New("hotel is not in the authorized scope")

const snapshotDateLayout = "2006-01-02"

// Coordinator serializes remote syncs per scope key: while a fetch for a key
// is in flight, concurrent requests for the same key share its result instead
// of racing a second write into the cache.
type Coordinator struct {
	store *cache.Store
	api   *remote.Client
	group singleflight.Group

	now func() time.Time
}

func New(store *cache.Store, api *remote.Client) *Coordinator {
	return &Coordinator{store: store, api: api, now: time.Now}
}

// Transactions serves the transaction collection from cache, fetching only on
// a miss, or unconditionally when force is set. A failed fetch leaves the
// previously cached collection untouched.
func (c *Coordinator) Transactions(ctx context.Context, force bool) ([]model.Transaction, error) {
	if !force {
		if txs, ok := c.store.Transactions(); ok {
			return txs, nil
		}
	}
	v, err, _ := c.group.Do("transactions", func() (any, error) {
		return c.syncTransactions(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Transaction), nil
}

func (c *Coordinator) syncTransactions(ctx context.Context) ([]model.Transaction, error) {
	txs, err := c.api.FetchTransactions(ctx)
	if err != nil {
		return nil, err
	}

	scope, _ := c.store.Hotels()
	filtered := filterTransactions(txs, scope)

	if err := c.store.PutTransactions(filtered); err != nil {
		return nil, fmt.Errorf("failed to cache transactions: %w", err)
	}
	return filtered, nil
}

// filterTransactions drops every record whose hotel is missing or outside the
// authorized scope.
func filterTransactions(txs []model.Transaction, scope []string) []model.Transaction {
	authorized := make(map[string]bool, len(scope))
	for _, h := range scope {
		authorized[h] = true
	}

	filtered := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.HotelName == "" || !authorized[t.HotelName] {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Menu serves one hotel's menu from cache, fetching on miss or force. The
// hotel must be inside the operator's scope.
func (c *Coordinator) Menu(ctx context.Context, hotel string, force bool) ([]model.MenuItem, error) {
	if !c.store.InScope(hotel) {
		return nil, ErrHotelNotAuthorized
	}
	if !force {
		if items, ok := c.store.Menu(hotel); ok {
			return items, nil
		}
	}
	v, err, _ := c.group.Do("menu_"+hotel, func() (any, error) {
		return c.syncMenu(ctx, hotel)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.MenuItem), nil
}

func (c *Coordinator) syncMenu(ctx context.Context, hotel string) ([]model.MenuItem, error) {
	items, err := c.api.FetchMenu(ctx, hotel)
	if err != nil {
		return nil, err
	}

	assignMissingIDs(items, c.now())

	if err := c.store.PutMenu(hotel, items); err != nil {
		return nil, fmt.Errorf("failed to cache menu for %s: %w", hotel, err)
	}
	return items, nil
}

// assignMissingIDs gives every item without a remote id a stable client-side
// one. The millisecond base is offset per assignment so ids stay unique
// within one sync.
func assignMissingIDs(items []model.MenuItem, now time.Time) {
	base := now.UnixMilli()
	assigned := int64(0)
	for i := range items {
		if items[i].ID.String() == "" {
			items[i].ID = model.Text(fmt.Sprintf("item_%d", base+assigned))
			assigned++
		}
	}
}

// SyncStockSummary always fetches the hotel's menu fresh, refreshes the live
// menu cache, and records the result as the stock snapshot for today and
// only today. Past dates are never backfilled or overwritten by a sync.
func (c *Coordinator) SyncStockSummary(ctx context.Context, hotel string) ([]model.MenuItem, error) {
	if !c.store.InScope(hotel) {
		return nil, ErrHotelNotAuthorized
	}
	v, err, _ := c.group.Do("stock_history_"+hotel, func() (any, error) {
		items, err := c.syncMenu(ctx, hotel)
		if err != nil {
			return nil, err
		}
		today := c.now().Format(snapshotDateLayout)
		if err := c.store.PutStockSnapshot(hotel, today, items); err != nil {
			return nil, fmt.Errorf("failed to record stock snapshot for %s: %w", hotel, err)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.MenuItem), nil
}

// StockSummaryItems returns the snapshot for a date without touching the
// network. Reading today's date with no snapshot yet falls back to the live
// menu cache, so the report stays usable before the first explicit sync of
// the day.
func (c *Coordinator) StockSummaryItems(hotel, date string) ([]model.MenuItem, bool) {
	if items, ok := c.store.Snapshot(hotel, date); ok {
		return items, true
	}
	if date == c.now().Format(snapshotDateLayout) {
		return c.store.Menu(hotel)
	}
	return nil, false
}

// Package inventory serves a hotel's menu collection and the optimistic item
// and stock writes against it.
package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"posdesk/cache"
	"posdesk/model"
	"posdesk/remote"
	"posdesk/syncer"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

// ListMenuHandler returns one hotel's menu, cached unless refresh=1.
// The hotel name is the final path segment of /api/menu/{hotel}.
func ListMenuHandler(sync *syncer.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotel := strings.TrimPrefix(r.URL.Path, "/api/menu/")
		if hotel == "" {
			http.Error(w, "Hotel name is required", http.StatusBadRequest)
			return
		}
		force := r.URL.Query().Get("refresh") == "1"

		items, err := sync.Menu(r.Context(), hotel, force)
		if err != nil {
			if errors.Is(err, syncer.ErrHotelNotAuthorized) {
				http.Error(w, "Hotel is not in your authorized scope", http.StatusForbidden)
				return
			}
			log.Printf("WARN: menu sync for %s failed: %v", hotel, err)
			http.Error(w, "Failed to load menu", http.StatusBadGateway)
			return
		}
		writeJSON(w, items)
	}
}

type saveItemsRequest struct {
	HotelName string           `json:"hotel_name"`
	MenuItems []model.MenuItem `json:"menuItems"`
}

// SaveItemHandler upserts menu items remotely, then folds the confirmed write
// into the cached menu without a re-fetch. Items arriving without an id get a
// client-assigned one before the remote call so both sides agree on the key.
func SaveItemHandler(store *cache.Store, api *remote.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req saveItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.HotelName == "" || len(req.MenuItems) == 0 {
			http.Error(w, "hotel_name and menuItems are required", http.StatusBadRequest)
			return
		}
		if !store.InScope(req.HotelName) {
			http.Error(w, "Hotel is not in your authorized scope", http.StatusForbidden)
			return
		}

		base := time.Now().UnixMilli()
		for i := range req.MenuItems {
			if req.MenuItems[i].ID.String() == "" {
				req.MenuItems[i].ID = model.Text(fmt.Sprintf("item_%d", base+int64(i)))
			}
		}

		err := api.SaveItems(r.Context(), model.SaveItemsRequest{
			HotelName: req.HotelName,
			MenuItems: req.MenuItems,
		})
		if err != nil {
			respondWriteError(w, "save items", err)
			return
		}

		for _, item := range req.MenuItems {
			patch, err := cache.PatchFromItem(item)
			if err != nil {
				log.Printf("WARN: failed to build patch for item %s: %v", item.ID, err)
				continue
			}
			if err := store.ApplyMenuPatch(req.HotelName, item.ID.String(), patch); err != nil {
				log.Printf("WARN: failed to apply menu patch for item %s: %v", item.ID, err)
			}
		}

		writeJSON(w, map[string]any{"success": true})
	}
}

type adjustStockRequest struct {
	Hotel string  `json:"hotel"`
	ID    string  `json:"id"`
	Add   float64 `json:"add"`
}

// AdjustStockHandler records stock sold out of an item: the add quantity is
// accumulated onto the item's adjustStock, written remotely as a single-item
// stock overwrite, then applied to the cache.
func AdjustStockHandler(store *cache.Store, api *remote.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req adjustStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Hotel == "" || req.ID == "" {
			http.Error(w, "hotel and id are required", http.StatusBadRequest)
			return
		}
		if req.Add <= 0 {
			http.Error(w, "add must be a positive quantity", http.StatusBadRequest)
			return
		}
		if !store.InScope(req.Hotel) {
			http.Error(w, "Hotel is not in your authorized scope", http.StatusForbidden)
			return
		}

		items, ok := store.Menu(req.Hotel)
		if !ok {
			http.Error(w, "Menu is not cached yet, load it first", http.StatusConflict)
			return
		}
		var current *model.MenuItem
		for i := range items {
			if items[i].ID.String() == req.ID {
				current = &items[i]
				break
			}
		}
		if current == nil {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}

		newAdjust := current.AdjustStock.Float64() + req.Add

		updated := *current
		updated.AdjustStock = model.Number(newAdjust)
		err := api.SaveItems(r.Context(), model.SaveItemsRequest{
			HotelName:     req.Hotel,
			MenuItems:     []model.MenuItem{updated},
			IsSingle:      true,
			OverrideStock: true,
		})
		if err != nil {
			respondWriteError(w, "adjust stock", err)
			return
		}

		patch := map[string]any{
			"adjustStock": newAdjust,
			"stock":       current.Stock.String(),
		}
		if err := store.ApplyMenuPatch(req.Hotel, req.ID, patch); err != nil {
			log.Printf("WARN: failed to apply stock patch for item %s: %v", req.ID, err)
		}

		writeJSON(w, map[string]any{"success": true, "adjustStock": newAdjust})
	}
}

func respondWriteError(w http.ResponseWriter, action string, err error) {
	var writeErr *remote.WriteError
	if errors.As(err, &writeErr) && writeErr.Message != "" {
		log.Printf("WARN: remote %s rejected: %v", action, err)
		http.Error(w, writeErr.Message, http.StatusBadGateway)
		return
	}
	log.Printf("WARN: remote %s failed: %v", action, err)
	http.Error(w, "Failed to reach the POS service", http.StatusBadGateway)
}

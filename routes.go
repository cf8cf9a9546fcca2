package main

import (
	"encoding/json"
	"log"
	"net/http"

	"posdesk/auth"
	"posdesk/cache"
	"posdesk/dashboard"
	"posdesk/inventory"
	"posdesk/profit"
	"posdesk/remote"
	"posdesk/stocksummary"
	"posdesk/syncer"
)

func SetupRoutes(mux *http.ServeMux, store *cache.Store, api *remote.Client, sync *syncer.Coordinator) {

	// Login and config stay open; everything else requires a session token.
	mux.HandleFunc("/api/login", auth.LoginHandler(store, api))
	mux.HandleFunc("/api/login/saved", auth.SavedCredentialsHandler(store))
	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.Authenticate(store, h)
	}

	mux.HandleFunc("/api/hotels", guard(func(w http.ResponseWriter, r *http.Request) {
		hotels, ok := store.Hotels()
		if !ok {
			hotels = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hotels); err != nil {
			log.Printf("WARN: failed to encode hotels: %v", err)
		}
	}))

	mux.HandleFunc("/api/dashboard/sales", guard(dashboard.GetSalesHandler(sync)))
	mux.HandleFunc("/api/dashboard/transactions", guard(dashboard.GetTransactionsHandler(sync)))

	mux.HandleFunc("/api/menu/", guard(inventory.ListMenuHandler(sync)))
	mux.HandleFunc("/api/items/save", guard(inventory.SaveItemHandler(store, api)))
	mux.HandleFunc("/api/stock/adjust", guard(inventory.AdjustStockHandler(store, api)))

	mux.HandleFunc("/api/stock/summary", guard(stocksummary.GetSummaryHandler(sync)))
	mux.HandleFunc("/api/stock/summary/sync", guard(stocksummary.SyncSummaryHandler(sync)))
	mux.HandleFunc("/api/stock/summary/export_csv", guard(stocksummary.ExportCSVHandler(sync)))
	mux.HandleFunc("/api/stock/summary/export_pdf", guard(stocksummary.ExportPDFHandler(sync)))

	mux.HandleFunc("/api/profit", guard(profit.GetProfitHandler(sync)))
	mux.HandleFunc("/api/profit/export_csv", guard(profit.ExportProfitCSVHandler(sync)))
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"posdesk/cache"
	"posdesk/database"
)

func newTestStore(t *testing.T) *cache.Store {
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
	return cache.NewStore(db)
}

func TestMintAndAuthenticateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	token, err := MintToken(store, "ravi", []string{"Hotel Annapurna"})
	if err != nil {
		t.Fatal(err)
	}

	called := false
	handler := Authenticate(store, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Errorf("valid token rejected: called=%v status=%d", called, rec.Code)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	store := newTestStore(t)

	handler := Authenticate(store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	store := newTestStore(t)
	other := newTestStore(t)

	// Token minted against a different install's secret.
	token, err := MintToken(other, "ravi", nil)
	if err != nil {
		t.Fatal(err)
	}

	handler := Authenticate(store, func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/hotels", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"posdesk/cache"
	"posdesk/remote"
)

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Token    string   `json:"token,omitempty"`
	Username string   `json:"username,omitempty"`
	Hotels   []string `json:"hotels,omitempty"`
}

// LoginHandler authenticates the operator against the POS API, records the
// authorized hotel scope and session, and issues a local token.
func LoginHandler(store *cache.Store, api *remote.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "Username and password are required", http.StatusBadRequest)
			return
		}

		result, err := api.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			var writeErr *remote.WriteError
			if errors.As(err, &writeErr) {
				writeJSON(w, http.StatusUnauthorized, loginResponse{Success: false, Message: writeErr.Message})
				return
			}
			log.Printf("WARN: login request failed: %v", err)
			http.Error(w, "Login service unavailable", http.StatusBadGateway)
			return
		}

		hotels := splitHotels(result.User.Hotels)
		if err := store.PutHotels(hotels); err != nil {
			log.Printf("WARN: failed to store hotel scope: %v", err)
		}
		if err := store.PutCredentials(req.Username, req.Password, req.RememberMe); err != nil {
			log.Printf("WARN: failed to store credentials: %v", err)
		}
		if err := store.PutSession(result.Token, result.User); err != nil {
			log.Printf("WARN: failed to store session: %v", err)
		}

		token, err := MintToken(store, result.User.Username, hotels)
		if err != nil {
			log.Printf("WARN: failed to mint session token: %v", err)
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Success:  true,
			Token:    token,
			Username: result.User.Username,
			Hotels:   hotels,
		})
	}
}

// SavedCredentialsHandler returns the remembered login form values for
// prefill, or an empty object when nothing was remembered.
func SavedCredentialsHandler(store *cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := store.Credentials()
		resp := map[string]any{"rememberMe": ok}
		if ok {
			resp["username"] = username
			resp["password"] = password
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func splitHotels(joined string) []string {
	parts := strings.Split(joined, ",")
	hotels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			hotels = append(hotels, trimmed)
		}
	}
	return hotels
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode response: %v", err)
	}
}

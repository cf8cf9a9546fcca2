package cache

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"posdesk/database"
	"posdesk/model"
)

// Credentials returns the remembered login form values, present only when the
// operator opted into "remember me". Stored in plaintext, a known weakness
// inherited from the product, not a goal to fix here.
func (s *Store) Credentials() (username, password string, ok bool) {
	remember, found, err := database.GetValue(s.db, keyRememberMe)
	if err != nil || !found || remember != "true" {
		return "", "", false
	}
	username, uok, _ := database.GetValue(s.db, keyUsername)
	password, pok, _ := database.GetValue(s.db, keyPassword)
	return username, password, uok && pok
}

// PutCredentials persists or clears the remembered credentials depending on
// the remember flag.
func (s *Store) PutCredentials(username, password string, remember bool) error {
	if !remember {
		for _, key := range []string{keyUsername, keyPassword, keyRememberMe} {
			if err := database.DeleteValue(s.db, key); err != nil {
				return err
			}
		}
		return nil
	}
	if err := database.SetValue(s.db, keyUsername, username); err != nil {
		return err
	}
	if err := database.SetValue(s.db, keyPassword, password); err != nil {
		return err
	}
	return database.SetValue(s.db, keyRememberMe, "true")
}

// PutSession stores the remote auth token and the operator profile blob.
func (s *Store) PutSession(token string, user model.UserProfile) error {
	if err := database.SetValue(s.db, keyAuthToken, token); err != nil {
		return err
	}
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}
	return database.SetValue(s.db, keyUserData, string(blob))
}

// UserProfile returns the stored operator profile, if any.
func (s *Store) UserProfile() (model.UserProfile, bool) {
	var user model.UserProfile
	if !s.readJSON(keyUserData, &user) {
		return model.UserProfile{}, false
	}
	return user, true
}

// SessionSecret returns the per-install secret used to sign local session
// tokens, generating and persisting one on first use.
func (s *Store) SessionSecret() ([]byte, error) {
	raw, ok, err := database.GetValue(s.db, keySecret)
	if err != nil {
		return nil, err
	}
	if ok && raw != "" {
		return []byte(raw), nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	if err := database.SetValue(s.db, keySecret, secret); err != nil {
		return nil, err
	}
	log.Println("Generated new session secret.")
	return []byte(secret), nil
}

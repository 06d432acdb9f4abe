package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-Api-Key"

// Role is the access level a key grants.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ErrUnknownKey is returned when a key matches neither an administrator key
// nor a user.
var ErrUnknownKey = errors.New("unknown api key")

// KeyStore resolves an API key to the role it grants.
type KeyStore interface {
	Lookup(ctx context.Context, key string) (Role, error)
}

type keyStore struct {
	users repository.UserRepository
	keys  repository.APIKeyRepository
}

// NewKeyStore resolves keys against the administrator key table first and
// the users table second, so a key present in both grants admin access.
func NewKeyStore(users repository.UserRepository, keys repository.APIKeyRepository) KeyStore {
	return &keyStore{users: users, keys: keys}
}

func (s *keyStore) Lookup(ctx context.Context, key string) (Role, error) {
	if key == "" {
		return "", ErrUnknownKey
	}

	isAdmin, err := s.keys.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if isAdmin {
		return RoleAdmin, nil
	}

	if _, err := s.users.GetByAPIKey(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnknownKey
		}
		return "", err
	}
	return RoleUser, nil
}

// Gate is the access check run before every API handler.
type Gate struct {
	store KeyStore
	log   *zerolog.Logger
}

func NewGate(store KeyStore, log *zerolog.Logger) *Gate {
	return &Gate{store: store, log: log}
}

// RequireUser admits any user key or administrator key.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return g.require(next, RoleUser, RoleAdmin)
}

// RequireAdmin admits administrator keys only.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return g.require(next, RoleAdmin)
}

func (g *Gate) require(next http.Handler, allowed ...Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := g.store.Lookup(r.Context(), r.Header.Get(HeaderName))
		switch {
		case errors.Is(err, ErrUnknownKey):
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		case err != nil:
			g.log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to check api key")
			writeError(w, http.StatusInternalServerError, "Failed to check api key")
			return
		}

		for _, a := range allowed {
			if role == a {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}

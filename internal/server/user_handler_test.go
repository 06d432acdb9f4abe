package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/paulogil93/habitua-te-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.srv.users.nowFunc = func() time.Time { return time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC) }

	created := api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, url.Values{
		"name":  {"Ana"},
		"email": {"ana@example.com"},
	}), http.StatusCreated)
	assert.Equal(t, "Ana", created["name"])
	assert.Equal(t, "05-03-2024", created["start_date"])
	assert.Nil(t, created["profile_pic"])
	assert.Len(t, created["api_key"], 64)
	id := idOf(created)

	// Same email returns the existing user
	again := api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, url.Values{
		"name":  {"Someone else"},
		"email": {"ana@example.com"},
	}), http.StatusOK)
	assert.Equal(t, created["id"], again["id"])
	assert.Equal(t, "Ana", again["name"])
	assert.NotContains(t, again, "api_key")

	got := api.object(api.do(http.MethodGet, "/api/v1/users/"+id+"/", api.userKey, nil), http.StatusOK)
	assert.Equal(t, "ana@example.com", got["email"])
	assert.Equal(t, "05-03-2024", got["start_date"])

	// The new user's key passes the gate
	rec := api.do(http.MethodGet, "/api/v1/users/", created["api_key"].(string), nil)
	users := api.list(rec)
	require.Len(t, users, 2)
	assert.Equal(t, "member-key", users[0]["api_key"])
	assert.Equal(t, "01-09-2023", users[0]["start_date"])

	// Partial update changes only what was sent
	updated := api.object(api.do(http.MethodPut, "/api/v1/users/"+id+"/", adminKey, url.Values{
		"profile_pic": {"ana.png"},
	}), http.StatusOK)
	assert.Equal(t, "ana.png", updated["profile_pic"])
	assert.Equal(t, "Ana", updated["name"])
	assert.Equal(t, "ana@example.com", updated["email"])

	deleted := api.object(api.do(http.MethodDelete, "/api/v1/users/"+id+"/", adminKey, nil), http.StatusOK)
	assert.Equal(t, "User "+id+" deleted successfully.", deleted["message"])

	api.object(api.do(http.MethodGet, "/api/v1/users/"+id+"/", api.userKey, nil), http.StatusNotFound)
	api.object(api.do(http.MethodDelete, "/api/v1/users/"+id+"/", adminKey, nil), http.StatusNotFound)
	api.object(api.do(http.MethodPut, "/api/v1/users/"+id+"/", adminKey, url.Values{"name": {"x"}}), http.StatusNotFound)

	// The deleted user's key no longer passes the gate
	rec = api.do(http.MethodGet, "/api/v1/users/", created["api_key"].(string), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUserValidation(t *testing.T) {
	api := newTestAPI(t)

	api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, url.Values{"name": {"NoEmail"}}), http.StatusBadRequest)
	api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, url.Values{"email": {"x@example.com"}}), http.StatusBadRequest)
	api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, nil), http.StatusBadRequest)

	assert.Len(t, api.list(api.do(http.MethodGet, "/api/v1/users/", api.userKey, nil)), 1)

	// Query parameters work as well as form bodies
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/?name=Query&email=query%40example.com", nil)
	req.Header.Set(auth.HeaderName, api.userKey)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	created := api.object(rec, http.StatusCreated)
	assert.Equal(t, "query@example.com", created["email"])
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)

	created := api.object(api.do(http.MethodPost, "/api/v1/users/", api.userKey, url.Values{
		"name": {"Rui"}, "email": {"rui@example.com"},
	}), http.StatusCreated)

	api.object(api.do(http.MethodPut, "/api/v1/users/"+idOf(created)+"/", adminKey, url.Values{
		"email": {"member@example.com"},
	}), http.StatusConflict)
}

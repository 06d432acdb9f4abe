package server

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventTitles(rows []map[string]interface{}) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["title"].(string)
	}
	return out
}

func TestEventLifecycle(t *testing.T) {
	api := newTestAPI(t)

	created := api.object(api.do(http.MethodPost, "/api/v1/events/", adminKey, url.Values{
		"title":       {"Summer party"},
		"description": {"On the beach"},
		"date":        {"2024-07-20"},
		"time":        {"21:30"},
		"event_type":  {"event"},
	}), http.StatusCreated)
	id := idOf(created)
	assert.Equal(t, "2024-07-20", created["date"])
	assert.Equal(t, "21:30:00", created["time"])
	assert.Nil(t, created["picture"])

	got := api.object(api.do(http.MethodGet, "/api/v1/events/"+id+"/", api.userKey, nil), http.StatusOK)
	assert.Equal(t, "Sat, 20 Jul 2024 00:00:00 GMT", got["date"])
	assert.Equal(t, "21:30:00", got["time"])
	assert.Equal(t, "Summer party", got["title"])

	updated := api.object(api.do(http.MethodPut, "/api/v1/events/"+id+"/", adminKey, url.Values{
		"picture": {"beach.png"},
		"date":    {"21-07-2024"},
	}), http.StatusOK)
	assert.Equal(t, "beach.png", updated["picture"])
	assert.Equal(t, "2024-07-21", updated["date"])
	assert.Equal(t, "On the beach", updated["description"])

	cleared := api.object(api.do(http.MethodPut, "/api/v1/events/"+id+"/", adminKey, url.Values{"time": {""}}), http.StatusOK)
	assert.Nil(t, cleared["time"])
	assert.Equal(t, "2024-07-21", cleared["date"])

	deleted := api.object(api.do(http.MethodDelete, "/api/v1/events/"+id+"/", adminKey, nil), http.StatusOK)
	assert.Equal(t, "Event "+id+" deleted successfully.", deleted["message"])
	api.object(api.do(http.MethodGet, "/api/v1/events/"+id+"/", api.userKey, nil), http.StatusNotFound)
}

func TestCreateEventValidation(t *testing.T) {
	api := newTestAPI(t)

	api.object(api.do(http.MethodPost, "/api/v1/events/", adminKey, url.Values{"title": {"No description"}}), http.StatusBadRequest)
	api.object(api.do(http.MethodPost, "/api/v1/events/", adminKey, url.Values{
		"title": {"Bad date"}, "description": {"d"}, "date": {"tomorrow"},
	}), http.StatusBadRequest)
	api.object(api.do(http.MethodPost, "/api/v1/events/", adminKey, url.Values{
		"title": {"Bad time"}, "description": {"d"}, "time": {"25:99"},
	}), http.StatusBadRequest)

	assert.Empty(t, api.list(api.do(http.MethodGet, "/api/v1/events/", adminKey, nil)))
}

func TestEventFeeds(t *testing.T) {
	api := newTestAPI(t)
	api.srv.events.nowFunc = func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) }

	for _, e := range []url.Values{
		{"title": {"Old news"}, "description": {"d"}, "date": {"2024-03-01"}, "event_type": {"news"}},
		{"title": {"New news"}, "description": {"d"}, "date": {"2024-05-01"}, "event_type": {"news"}},
		{"title": {"Past"}, "description": {"d"}, "date": {"2024-05-20"}, "event_type": {"event"}},
		{"title": {"Today"}, "description": {"d"}, "date": {"2024-06-01"}, "event_type": {"event"}},
		{"title": {"Later"}, "description": {"d"}, "date": {"2024-08-01"}, "event_type": {"event"}},
		{"title": {"Soon"}, "description": {"d"}, "date": {"2024-06-10"}},
	} {
		api.object(api.do(http.MethodPost, "/api/v1/events/", adminKey, e), http.StatusCreated)
	}

	news := api.list(api.do(http.MethodGet, "/api/v1/events/news/", api.userKey, nil))
	assert.Equal(t, []string{"New news", "Old news"}, eventTitles(news))

	upcoming := api.list(api.do(http.MethodGet, "/api/v1/events/event/", api.userKey, nil))
	assert.Equal(t, []string{"Soon", "Later"}, eventTitles(upcoming))

	all := api.list(api.do(http.MethodGet, "/api/v1/events/event/all/", api.userKey, nil))
	assert.Equal(t, []string{"Later", "Soon", "Today", "Past"}, eventTitles(all))

	everything := api.list(api.do(http.MethodGet, "/api/v1/events/", adminKey, nil))
	require.Len(t, everything, 6)
	assert.Equal(t, "2024-03-01", everything[0]["date"])
}

package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"
)

var (
	dateLayouts = []string{"2006-01-02", "02-01-2006"}
	timeLayouts = []string{"15:04:05", "15:04"}
)

// params holds the query string and url-encoded body of a request.
type params struct {
	values url.Values
}

func readParams(r *http.Request) (params, error) {
	if err := r.ParseForm(); err != nil {
		return params{}, fmt.Errorf("invalid request parameters: %w", err)
	}
	return params{values: r.Form}, nil
}

func (p params) has(name string) bool {
	_, ok := p.values[name]
	return ok
}

func (p params) get(name string) string {
	return p.values.Get(name)
}

// blank reports a parameter that was sent with an empty value.
func (p params) blank(name string) bool {
	return p.has(name) && p.get(name) == ""
}

func (p params) optString(name string) *string {
	if !p.has(name) {
		return nil
	}
	v := p.get(name)
	return &v
}

func (p params) optUint(name string) (*uint, error) {
	if !p.has(name) {
		return nil, nil
	}
	v, err := strconv.ParseUint(p.get(name), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, p.get(name))
	}
	u := uint(v)
	return &u, nil
}

func (p params) optFloat(name string) (*float64, error) {
	if !p.has(name) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(p.get(name), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, p.get(name))
	}
	return &v, nil
}

// optBool accepts the strconv spellings, including "True" and "False".
func (p params) optBool(name string) (*bool, error) {
	if !p.has(name) {
		return nil, nil
	}
	v, err := strconv.ParseBool(p.get(name))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, p.get(name))
	}
	return &v, nil
}

func (p params) optDate(name string) (*datatypes.Date, error) {
	if !p.has(name) || p.blank(name) {
		return nil, nil
	}
	raw := p.get(name)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := datatypes.Date(t)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("invalid %s: %q", name, raw)
}

func (p params) optTime(name string) (*datatypes.Time, error) {
	if !p.has(name) || p.blank(name) {
		return nil, nil
	}
	raw := p.get(name)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			tod := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
			return &tod, nil
		}
	}
	return nil, fmt.Errorf("invalid %s: %q", name, raw)
}

// pathID reads a numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(v), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

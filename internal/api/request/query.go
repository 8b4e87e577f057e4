// Package request parses query parameters for the read API.
package request

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Limit parses the optional limit query parameter. A missing parameter
// returns 0, which stores interpret as their default feed limit.
func Limit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	return limit, nil
}

// PathID parses a numeric path variable registered on the route
func PathID(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}

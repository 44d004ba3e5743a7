// Package pathutil reads typed values from ServeMux path wildcards.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ErrEmptyValue is returned when a path wildcard is empty.
var ErrEmptyValue = errors.New("empty path value")

// PathID parses the wildcard name of r as a positive int64.
//
// Example:
//
//	// pattern "GET /news/{id}/{$}", path "/news/123/"
//	id, err := PathID(r, "id") // 123, nil
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathString returns the non-empty wildcard name of r.
func PathString(r *http.Request, name string) (string, error) {
	v := r.PathValue(name)
	if v == "" {
		return "", ErrEmptyValue
	}
	return v, nil
}

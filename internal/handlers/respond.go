// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/organ"
	"github.com/protscope/core/internal/query"
	"github.com/protscope/core/internal/sparql"
)

// writeJSON encodes v with status. ?pretty=true indents the output.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		zap.L().Warn("failed to encode response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// statusFor maps a core error onto the HTTP status returned to clients.
func statusFor(err error) int {
	var transport *sparql.TransportError
	var unknown *organ.UnknownError

	switch {
	case errors.Is(err, query.ErrEmptyTerm):
		return http.StatusBadRequest
	case errors.Is(err, explorer.ErrStale):
		return http.StatusConflict
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

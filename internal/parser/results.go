// Package parser provides utilities for parsing and transforming query results.
// It handles result normalization, graph projection, aggregation and highlighting.
package parser

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/protscope/core/internal/models"
)

// ErrMalformedResponse marks a body that is not a SPARQL JSON result set.
// Callers degrade it to an empty result rather than failing.
var ErrMalformedResponse = errors.New("malformed sparql response")

// ParseResults decodes an application/sparql-results+json body. A body
// without a results.bindings list yields zero bindings and no error.
func ParseResults(data []byte) ([]models.Binding, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var results models.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if results.Results == nil || results.Results.Bindings == nil {
		return []models.Binding{}, nil
	}
	return results.Results.Bindings, nil
}

// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://query.wikidata.org/sparql"

func getHealth(t *testing.T, method string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/health", nil)
	w := httptest.NewRecorder()
	Health(testEndpoint)(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Run("returns healthy JSON for GET", func(t *testing.T) {
		w := getHealth(t, http.MethodGet)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "protscope-api", response.Service)
		assert.NotEmpty(t, response.Uptime)

		_, err := time.Parse(time.RFC3339, response.Timestamp)
		assert.NoError(t, err, "Timestamp should be valid RFC3339 format")
	})

	t.Run("details carry runtime and endpoint", func(t *testing.T) {
		w := getHealth(t, http.MethodGet)

		var response HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, runtime.Version(), response.Details["go_version"])
		assert.Equal(t, strconv.Itoa(runtime.NumCPU()), response.Details["num_cpu"])
		assert.Equal(t, testEndpoint, response.Details["endpoint"])
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health?pretty=true", nil)
		w := httptest.NewRecorder()

		Health(testEndpoint)(w, req)

		assert.Contains(t, w.Body.String(), "\n  \"status\"")
	})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead} {
		t.Run("returns 405 for "+method, func(t *testing.T) {
			w := getHealth(t, method)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}

	t.Run("handles concurrent requests", func(t *testing.T) {
		results := make(chan int, 10)
		for range 10 {
			go func() {
				results <- getHealth(t, http.MethodGet).Code
			}()
		}
		for range 10 {
			assert.Equal(t, http.StatusOK, <-results)
		}
	})
}

func TestStartTime(t *testing.T) {
	assert.False(t, startTime.IsZero())
	assert.True(t, startTime.Before(time.Now()))
}

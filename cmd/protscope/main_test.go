package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/protscope/core/internal/explorer"
	"github.com/protscope/core/internal/handlers"
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/sparql"
	"github.com/protscope/core/internal/views"
)

func init() {
	color.NoColor = true
}

const wikidataBody = `{
	"head": {"vars": ["item", "itemLabel", "uniprotid", "biological_process", "biological_processLabel"]},
	"results": {"bindings": [
		{
			"item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q7240673"},
			"itemLabel": {"type": "literal", "value": "Insulin"},
			"uniprotid": {"type": "literal", "value": "P01308"},
			"biological_process": {"type": "uri", "value": "http://www.wikidata.org/entity/Q1"},
			"biological_processLabel": {"type": "literal", "value": "glucose homeostasis"}
		}
	]}
}`

func fakeWikidata(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", sparql.ResultsMediaType)
		_, _ = w.Write([]byte(wikidataBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// runCLI executes the root command against a fake endpoint with no user
// config file.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROTSCOPE_ENDPOINT", "")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--endpoint", fakeWikidata(t).URL,
		"--log-level", "error",
	}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()
	client := sparql.New(sparql.Options{Endpoint: fakeWikidata(t).URL}, nil)
	return setupRouter(explorer.New(client, nil, nil), client.Endpoint(), models.ViewTable, "*", nil)
}

func TestRoutes(t *testing.T) {
	router := setupTestRouter(t)

	testCases := []struct {
		name           string
		path           string
		method         string
		expectedStatus int
	}{
		{"health with GET", "/health", http.MethodGet, http.StatusOK},
		{"health with POST", "/health", http.MethodPost, http.StatusMethodNotAllowed},
		{"browse", "/browse", http.MethodGet, http.StatusOK},
		{"search", "/search?mode=uniprot&term=P01308", http.MethodGet, http.StatusOK},
		{"search without term", "/search?mode=name", http.MethodGet, http.StatusBadRequest},
		{"organs", "/organs", http.MethodGet, http.StatusOK},
		{"organ panel", "/organs/brain", http.MethodGet, http.StatusOK},
		{"unknown organ", "/organs/liver", http.MethodGet, http.StatusNotFound},
		{"preflight", "/search", http.MethodOptions, http.StatusNoContent},
		{"unknown path", "/unknown", http.MethodGet, http.StatusNotFound},
		{"root path", "/", http.MethodGet, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestHealthEndpointIntegration(t *testing.T) {
	router := setupTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response handlers.HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "protscope-api", response.Service)
	assert.True(t, strings.HasPrefix(response.Details["endpoint"], "http://127.0.0.1"))
}

func TestCommands(t *testing.T) {
	t.Run("browse prints the table", func(t *testing.T) {
		out, err := runCLI(t, "", "browse")

		require.NoError(t, err)
		assert.Contains(t, out, "Process Name")
		assert.Contains(t, out, "Insulin")
		assert.Contains(t, out, "1 rows")
	})

	t.Run("search emits json", func(t *testing.T) {
		out, err := runCLI(t, "", "search", "insulin", "--view", "graph", "-o", "json")
		require.NoError(t, err)

		var graph views.GraphView
		require.NoError(t, json.Unmarshal([]byte(out), &graph))
		assert.Len(t, graph.Nodes, 2)
		assert.True(t, graph.Emphasis["http://www.wikidata.org/entity/Q7240673"])
	})

	t.Run("search emits yaml", func(t *testing.T) {
		out, err := runCLI(t, "", "search", "glucose", "--mode", "process", "--view", "bubble", "-o", "yaml")
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "bubble", decoded["view"])
	})

	t.Run("blank search term fails", func(t *testing.T) {
		_, err := runCLI(t, "", "search", "  ")

		assert.ErrorContains(t, err, "search term is empty")
	})

	t.Run("bad mode fails", func(t *testing.T) {
		_, err := runCLI(t, "", "search", "x", "--mode", "sequence")

		assert.ErrorContains(t, err, "unknown search mode")
	})

	t.Run("bad output fails", func(t *testing.T) {
		_, err := runCLI(t, "", "browse", "-o", "xml")

		assert.ErrorContains(t, err, "unknown output")
	})

	t.Run("organ list and panel", func(t *testing.T) {
		out, err := runCLI(t, "", "organ")
		require.NoError(t, err)
		assert.Contains(t, out, "brain")

		out, err = runCLI(t, "", "organ", "Heart")
		require.NoError(t, err)
		assert.Contains(t, out, "Heart — 1 result")
		assert.Contains(t, out, "P01308")
	})

	t.Run("organ warm", func(t *testing.T) {
		out, err := runCLI(t, "", "organ", "warm")

		require.NoError(t, err)
		assert.Contains(t, out, "brain 1 rows")
		assert.Contains(t, out, "heart 1 rows")
	})

	t.Run("category", func(t *testing.T) {
		out, err := runCLI(t, "", "category", "glucose", "homeostasis")

		require.NoError(t, err)
		assert.Contains(t, out, "1 proteins:")
		assert.Contains(t, out, "• Insulin")
	})
}

func TestExport(t *testing.T) {
	t.Run("svg from extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "charts", "processes.svg")

		out, err := runCLI(t, "", "export", path)

		require.NoError(t, err)
		assert.Contains(t, out, "wrote "+path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "glucose homeostasis: 1")
	})

	t.Run("png for a search", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "insulin.png")

		_, err := runCLI(t, "", "export", path, "--term", "insulin")

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := runCLI(t, "", "export", filepath.Join(t.TempDir(), "chart.pdf"))

		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestShell(t *testing.T) {
	t.Run("session switches views", func(t *testing.T) {
		script := strings.Join([]string{
			"view bubble",
			"search name insulin",
			"view graph",
			"search process   ",
			"organ brain",
			"bogus",
			"quit",
		}, "\n")

		out, err := runCLI(t, script, "shell")

		require.NoError(t, err)
		assert.Contains(t, out, "nothing loaded yet")
		assert.Contains(t, out, "glucose homeostasis")
		assert.Contains(t, out, "1 edges")
		assert.Contains(t, out, "enter a search term")
		assert.Contains(t, out, "Brain — 1 result")
		assert.Contains(t, out, `unknown command "bogus"`)
	})

	t.Run("ends at end of input", func(t *testing.T) {
		_, err := runCLI(t, "help\n", "shell")

		assert.NoError(t, err)
	})
}

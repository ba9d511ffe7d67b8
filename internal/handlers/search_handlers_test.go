package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newSearchEnv(t *testing.T, handler http.HandlerFunc) *handlers.SearchHandler {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the client refuses to talk to anything that does not identify
		// itself as elasticsearch
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	return &handlers.SearchHandler{ES: es, Index: "products"}
}

func TestSearchProducts(t *testing.T) {
	env := newTestEnv(t)

	var gotPath string
	var gotBody map[string]any
	h := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"total": map[string]any{"value": 2},
				"hits": []map[string]any{
					{"_source": models.Product{ID: "p1", Name: "lavender soap", Price: 10, Category: "soaps"}},
					{"_source": models.Product{ID: "p2", Name: "soap dish", Price: 4, Category: "accessories"}},
				},
			},
		})
	})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/search?q=soap&page=1&size=5", nil)
	require.NoError(t, h.Search(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "/products/_search", gotPath)
	query := gotBody["query"].(map[string]any)["multi_match"].(map[string]any)
	require.Equal(t, "soap", query["query"])
	require.EqualValues(t, 0, gotBody["from"])
	require.EqualValues(t, 5, gotBody["size"])

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page  int   `json:"page"`
			Size  int   `json:"size"`
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "lavender soap", resp.Data[0].Name)
	require.Equal(t, 1, resp.Meta.Page)
	require.Equal(t, 5, resp.Meta.Size)
	require.EqualValues(t, 2, resp.Meta.Total)
}

func TestSearchMissingQuery(t *testing.T) {
	env := newTestEnv(t)
	h := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("elasticsearch must not be queried without q")
	})

	_, c := env.doJSONRequest(http.MethodGet, "/api/search", nil)
	err := h.Search(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSearchUpstreamError(t *testing.T) {
	env := newTestEnv(t)
	h := newSearchEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec, c := env.doJSONRequest(http.MethodGet, "/api/search?q=soap", nil)
	require.NoError(t, h.Search(c))
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

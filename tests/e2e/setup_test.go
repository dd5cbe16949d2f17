//go:build integration

package e2e

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/services"
	"github.com/light-bringer/decant-store/tests/testutil"
)

// Suite is a running storefront backed by a seeded embedded PostgreSQL.
type Suite struct {
	Server *httptest.Server
	Opts   *services.ServiceOptions
}

// setupTest seeds the catalog fixture and serves the full router.
func setupTest(t *testing.T) *Suite {
	t.Helper()

	db, url := testutil.SetupPostgresTest(t)
	testutil.SeedPostgres(t, db, testutil.CatalogFixture())

	return newSuite(t, url)
}

func newSuite(t *testing.T, databaseURL string) *Suite {
	t.Helper()

	cfg := config.Default()
	cfg.App.Env = config.EnvTest
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.URL = databaseURL

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts, err := services.NewServiceOptions(t.Context(), cfg, logger)
	require.NoError(t, err)

	server := httptest.NewServer(opts.Router)
	t.Cleanup(func() {
		server.Close()
		opts.Close()
	})
	return &Suite{Server: server, Opts: opts}
}

func (s *Suite) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := s.Server.Client().Get(s.Server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *Suite) getJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()

	resp := s.get(t, path)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func (s *Suite) getBody(t *testing.T, path string) (int, string) {
	t.Helper()

	resp := s.get(t, path)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// productsResponse mirrors the list envelope.
type productsResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		ID    string `json:"id"`
		Slug  string `json:"slug"`
		Brand string `json:"brand"`
		Price string `json:"price2ml"`
		Count struct {
			Reviews int64 `json:"reviews"`
		} `json:"_count"`
		Inventory []struct {
			BottleSizeMl int64 `json:"bottleSizeMl"`
		} `json:"inventory"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total   int64 `json:"total"`
		Page    int   `json:"page"`
		Limit   int   `json:"limit"`
		HasMore bool  `json:"hasMore"`
	} `json:"meta"`
}

func (r productsResponse) slugs() []string {
	out := make([]string, len(r.Data))
	for i, p := range r.Data {
		out[i] = p.Slug
	}
	return out
}

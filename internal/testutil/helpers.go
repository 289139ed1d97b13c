// Package testutil provides helpers shared by API and integration tests.
package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/api"
	"github.com/stayware/priceflow/internal/booking"
	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/pricing"
	"github.com/stayware/priceflow/internal/rules"
	"github.com/stayware/priceflow/internal/store"
)

// NewTestServer wires an API server onto an in-memory store with a nop
// recorder, mirroring the production assembly in cmd/server.
func NewTestServer(t *testing.T, adminKey string) (*api.Server, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	svc := pricing.NewService(
		memStore,
		booking.NewBuilder(0),
		engine.NewCalculator(0),
		nil,
		zerolog.Nop(),
	)
	server := api.NewServer(svc, memStore, adminKey, 0, zerolog.Nop())
	return server, memStore
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// SeedRules populates the store with test rules.
func SeedRules(ctx context.Context, st store.Store, defs []rules.Definition) error {
	for _, def := range defs {
		if err := st.UpsertRule(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

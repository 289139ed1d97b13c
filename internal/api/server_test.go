package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayware/priceflow/internal/rules"
	"github.com/stayware/priceflow/internal/testutil"
)

const adminKey = "test-admin-key"

func adminHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + adminKey}
}

func ruleJSON(id string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"name": "high occupancy uplift",
		"category": "PRICING",
		"priority": 1,
		"scope": {"organizationId": "org-1"},
		"conditions": [{"type": "occupancy", "operator": "greater_than", "value": 80}],
		"actions": [{"type": "multiply_price", "value": 1.2}],
		"active": true
	}`, id)
}

func TestHealthz(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	rr := (&testutil.HTTPRequest{Method: http.MethodGet, Path: "/healthz"}).Do(t, router)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpsertRule(t *testing.T) {
	server, st := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	rr := (&testutil.HTTPRequest{
		Method:  http.MethodPost,
		Path:    "/v1/rules",
		Body:    ruleJSON("r1"),
		Headers: adminHeaders(),
	}).Do(t, router)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		OK   bool   `json:"ok"`
		ID   string `json:"id"`
		ETag string `json:"etag"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "r1", resp.ID)
	assert.NotEmpty(t, resp.ETag)

	def, err := st.GetRule(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "high occupancy uplift", def.Name)
}

func TestUpsertRule_GeneratesID(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	body := `{
		"name": "no id supplied",
		"scope": {"organizationId": "org-1"},
		"actions": [{"type": "add_amount", "value": 5}],
		"active": true
	}`
	rr := (&testutil.HTTPRequest{
		Method:  http.MethodPost,
		Path:    "/v1/rules",
		Body:    body,
		Headers: adminHeaders(),
	}).Do(t, router)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID, "server must assign an id when none is supplied")
}

func TestUpsertRule_ValidationFailure(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	body := `{
		"id": "bad",
		"name": "bad operator",
		"category": "PRICING",
		"scope": {"organizationId": "org-1"},
		"conditions": [{"type": "occupancy", "operator": "regex_match", "value": 80}],
		"actions": []
	}`
	rr := (&testutil.HTTPRequest{
		Method:  http.MethodPost,
		Path:    "/v1/rules",
		Body:    body,
		Headers: adminHeaders(),
	}).Do(t, router)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_ERROR")
}

func TestUpsertRule_Auth(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	// no token
	rr := (&testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/v1/rules",
		Body:   ruleJSON("r1"),
	}).Do(t, router)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// wrong token
	rr = (&testutil.HTTPRequest{
		Method:  http.MethodPost,
		Path:    "/v1/rules",
		Body:    ruleJSON("r1"),
		Headers: map[string]string{"Authorization": "Bearer wrong-key"},
	}).Do(t, router)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetRule_NotFound(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	rr := (&testutil.HTTPRequest{Method: http.MethodGet, Path: "/v1/rules/missing"}).Do(t, router)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_FOUND")
}

func TestListRules_OrgFilter(t *testing.T) {
	server, st := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	require.NoError(t, testutil.SeedRules(context.Background(), st, []rules.Definition{
		{ID: "r1", Name: "one", Category: rules.CategoryPricing, Scope: rules.Scope{OrganizationID: "org-1"}, Active: true},
		{ID: "r2", Name: "two", Category: rules.CategoryPricing, Scope: rules.Scope{OrganizationID: "org-2"}, Active: true},
	}))

	rr := (&testutil.HTTPRequest{Method: http.MethodGet, Path: "/v1/rules?org=org-1"}).Do(t, router)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Rules []rules.Definition `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, "r1", resp.Rules[0].ID)
}

func TestDeleteRule_Idempotent(t *testing.T) {
	server, st := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	require.NoError(t, testutil.SeedRules(context.Background(), st, []rules.Definition{
		{ID: "r1", Name: "one", Category: rules.CategoryPricing, Scope: rules.Scope{OrganizationID: "org-1"}, Active: true},
	}))

	rr := (&testutil.HTTPRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/rules/r1",
		Headers: adminHeaders(),
	}).Do(t, router)
	assert.Equal(t, http.StatusOK, rr.Code)

	// deleting again still succeeds
	rr = (&testutil.HTTPRequest{
		Method:  http.MethodDelete,
		Path:    "/v1/rules/r1",
		Headers: adminHeaders(),
	}).Do(t, router)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSnapshot_ETagRoundTrip(t *testing.T) {
	server, _ := testutil.NewTestServer(t, adminKey)
	router := server.Router()

	// A mutation refreshes the global snapshot.
	rr := (&testutil.HTTPRequest{
		Method:  http.MethodPost,
		Path:    "/v1/rules",
		Body:    ruleJSON("snap-1"),
		Headers: adminHeaders(),
	}).Do(t, router)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = (&testutil.HTTPRequest{Method: http.MethodGet, Path: "/v1/rules/snapshot"}).Do(t, router)
	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	// Conditional fetch with the current ETag short-circuits.
	rr = (&testutil.HTTPRequest{
		Method:  http.MethodGet,
		Path:    "/v1/rules/snapshot",
		Headers: map[string]string{"If-None-Match": etag},
	}).Do(t, router)
	assert.Equal(t, http.StatusNotModified, rr.Code)

	// A stale ETag gets the full body.
	rr = (&testutil.HTTPRequest{
		Method:  http.MethodGet,
		Path:    "/v1/rules/snapshot",
		Headers: map[string]string{"If-None-Match": `W/"stale"`},
	}).Do(t, router)
	assert.Equal(t, http.StatusOK, rr.Code)
}

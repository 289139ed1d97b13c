package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stayware/priceflow/internal/rules"
	"github.com/stayware/priceflow/internal/snapshot"
	"github.com/stayware/priceflow/internal/store"
	"github.com/stayware/priceflow/internal/telemetry"
)

type listRulesResponse struct {
	Rules []rules.Definition `json:"rules"`
}

// handleListRules handles GET /v1/rules?org=...
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	org := strings.TrimSpace(r.URL.Query().Get("org"))

	defs, err := s.store.ListRules(r.Context(), org)
	if err != nil {
		s.logger.Error().Err(err).Msg("list rules")
		writeErrorCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "failed to list rules")
		return
	}
	writeJSON(w, http.StatusOK, listRulesResponse{Rules: defs})
}

// handleGetRule handles GET /v1/rules/{id}.
func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	def, err := s.store.GetRule(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("rule %s not found", id))
			return
		}
		s.logger.Error().Err(err).Str("rule_id", id).Msg("get rule")
		writeErrorCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "failed to load rule")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

type upsertRuleResponse struct {
	OK   bool   `json:"ok"`
	ID   string `json:"id"`
	ETag string `json:"etag"`
}

// handleUpsertRule handles POST /v1/rules. Definitions are validated eagerly
// here — the evaluation path never rejects, so this is where malformed rules
// must be stopped. A missing id is generated.
func (s *Server) handleUpsertRule(w http.ResponseWriter, r *http.Request) {
	var def rules.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.Category == "" {
		def.Category = rules.CategoryPricing
	}

	if err := rules.ValidateDefinition(def); err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := s.store.UpsertRule(r.Context(), def); err != nil {
		s.logger.Error().Err(err).Str("rule_id", def.ID).Msg("upsert rule")
		writeErrorCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "failed to store rule")
		return
	}

	etag := s.refreshSnapshot(r)
	writeJSON(w, http.StatusOK, upsertRuleResponse{OK: true, ID: def.ID, ETag: etag})
}

// handleDeleteRule handles DELETE /v1/rules/{id}. Idempotent.
func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteRule(r.Context(), id); err != nil {
		s.logger.Error().Err(err).Str("rule_id", id).Msg("delete rule")
		writeErrorCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "failed to delete rule")
		return
	}

	etag := s.refreshSnapshot(r)
	writeJSON(w, http.StatusOK, upsertRuleResponse{OK: true, ID: id, ETag: etag})
}

// handleSnapshot handles GET /v1/rules/snapshot with ETag semantics.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := snapshot.Load()
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", snap.ETag)
	writeJSON(w, http.StatusOK, snap)
}

// handleStream handles GET /v1/rules/stream: an SSE stream of snapshot ETags
// so clients can refetch rules when they change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErrorCode(w, r, http.StatusInternalServerError, ErrCodeInternal, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, unsub := snapshot.Subscribe()
	defer unsub()

	telemetry.StreamClients.Inc()
	defer telemetry.StreamClients.Dec()

	// initial event so clients learn the current ETag immediately
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", snapshot.Load().ETag)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case etag, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", etag)
			flusher.Flush()
		}
	}
}

// refreshSnapshot rebuilds the rule snapshot after a mutation and returns
// the new ETag. Snapshot failures are logged, not surfaced: the mutation
// itself already succeeded.
func (s *Server) refreshSnapshot(r *http.Request) string {
	defs, err := s.store.ListRules(r.Context(), "")
	if err != nil {
		s.logger.Error().Err(err).Msg("rebuild snapshot")
		return snapshot.Load().ETag
	}
	snap := snapshot.Build(defs)
	snapshot.Update(snap)
	telemetry.SnapshotRules.Set(float64(len(snap.Rules)))
	return snap.ETag
}

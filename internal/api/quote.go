package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/pricing"
)

// quoteResponse wraps the engine result with the evaluation timestamp.
type quoteResponse struct {
	Quote       *engine.PricingResult `json:"quote"`
	EvaluatedAt string                `json:"evaluatedAt"`
}

// handleQuote handles POST /v1/price/quote. A quote always succeeds once the
// request decodes: degraded evaluations still return 200 with the base
// price, per the pricing contract.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req pricing.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	if req.Stay.OrganizationID == "" {
		writeErrorCode(w, r, http.StatusBadRequest, ErrCodeBadRequest, "stay.organizationId is required")
		return
	}
	if req.Stay.CheckIn.IsZero() {
		writeErrorCode(w, r, http.StatusBadRequest, ErrCodeBadRequest, "stay.checkIn is required")
		return
	}

	result := s.pricing.Quote(r.Context(), req)

	writeJSON(w, http.StatusOK, quoteResponse{
		Quote:       result,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

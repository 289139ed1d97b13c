package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/engine"
)

const (
	// queueSize bounds how many undelivered traces we hold before dropping.
	queueSize = 1000

	deliveryTimeout = 10 * time.Second
)

// WebhookRecorder POSTs signed execution summaries to an analytics endpoint.
// Delivery runs on a single background worker; when the queue is full the
// trace is dropped rather than stalling a quote.
type WebhookRecorder struct {
	url    string
	secret string
	client *http.Client
	logger zerolog.Logger
	queue  chan webhookPayload
	done   chan struct{}
	closed int32 // atomic flag to prevent double-close
}

// webhookPayload is the wire form of one evaluation trace.
type webhookPayload struct {
	Event          string               `json:"event"`
	Timestamp      time.Time            `json:"timestamp"`
	OrganizationID string               `json:"organizationId,omitempty"`
	PropertyID     string               `json:"propertyId,omitempty"`
	Result         engine.PricingResult `json:"result"`
}

func NewWebhookRecorder(url, secret string, logger zerolog.Logger) *WebhookRecorder {
	w := &WebhookRecorder{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: deliveryTimeout},
		logger: logger,
		queue:  make(chan webhookPayload, queueSize),
		done:   make(chan struct{}),
	}
	go w.worker()
	return w
}

func (w *WebhookRecorder) Record(ctx context.Context, result *engine.PricingResult) {
	if result == nil || atomic.LoadInt32(&w.closed) == 1 {
		return
	}

	payload := webhookPayload{
		Event:     "pricing.evaluated",
		Timestamp: time.Now().UTC(),
		Result:    *result,
	}
	if result.Context != nil {
		payload.OrganizationID = result.Context.OrganizationID
		payload.PropertyID = result.Context.PropertyID
	}

	select {
	case w.queue <- payload:
	default:
		w.logger.Warn().Msg("recorder webhook queue full, dropping trace")
	}
}

// Close stops the worker after draining queued deliveries. Safe to call more
// than once.
func (w *WebhookRecorder) Close() error {
	if !atomic.CompareAndSwapInt32(&w.closed, 0, 1) {
		return nil
	}
	close(w.queue)
	<-w.done
	return nil
}

func (w *WebhookRecorder) worker() {
	defer close(w.done)
	for payload := range w.queue {
		w.deliver(payload)
	}
}

func (w *WebhookRecorder) deliver(payload webhookPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.logger.Error().Err(err).Msg("recorder webhook: encode payload")
		return
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		w.logger.Error().Err(err).Msg("recorder webhook: build request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Priceflow-Signature", ComputeHMAC(body, w.secret))

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Warn().Err(err).Str("url", w.url).Msg("recorder webhook: delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		w.logger.Warn().Int("status", resp.StatusCode).Str("url", w.url).Msg("recorder webhook: non-2xx response")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/api"
	"github.com/stayware/priceflow/internal/booking"
	"github.com/stayware/priceflow/internal/config"
	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/pricing"
	"github.com/stayware/priceflow/internal/recorder"
	"github.com/stayware/priceflow/internal/snapshot"
	"github.com/stayware/priceflow/internal/store"
	"github.com/stayware/priceflow/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	st, err := store.NewStore(ctx, cfg.StoreType, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("create store")
	}
	defer st.Close()

	telemetry.Init()

	// initial snapshot
	defs, err := st.ListRules(ctx, "")
	if err != nil {
		logger.Fatal().Err(err).Msg("load rules")
	}
	snap := snapshot.Build(defs)
	snapshot.Update(snap)
	telemetry.SnapshotRules.Set(float64(len(snap.Rules)))
	logger.Info().Int("rules", len(snap.Rules)).Str("etag", snap.ETag).Msg("snapshot built")

	rec, webhookRec := buildRecorder(cfg, logger)

	builder := booking.NewBuilder(cfg.DefaultBasePrice)
	calc := engine.NewCalculator(cfg.MaxRulesPerExecution)
	svc := pricing.NewService(st, builder, calc, rec, logger)

	srvAPI := api.NewServer(svc, st, cfg.AdminAPIKey, cfg.RateLimitPerIP, logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 0, // SSE stream endpoint must not be cut off
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	if webhookRec != nil {
		_ = webhookRec.Close()
	}
	logger.Info().Msg("stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// buildRecorder assembles the trace sinks: structured logs always, webhook
// delivery when configured.
func buildRecorder(cfg *config.Config, logger zerolog.Logger) (recorder.Recorder, *recorder.WebhookRecorder) {
	logRec := recorder.NewLogRecorder(logger)
	if cfg.RecorderWebhookURL == "" {
		return logRec, nil
	}
	webhookRec := recorder.NewWebhookRecorder(cfg.RecorderWebhookURL, cfg.RecorderWebhookSecret, logger)
	return recorder.Multi(logRec, webhookRec), webhookRec
}

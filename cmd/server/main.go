package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finstream-go/internal/api"
	"finstream-go/internal/config"
	"finstream-go/internal/docs"
	"finstream-go/internal/insight"
	"finstream-go/internal/market"
	"finstream-go/internal/metrics"
	"finstream-go/internal/stream"
	"finstream-go/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("FINSTREAM_CONFIG")
	if cfgPath == "" {
		cfgPath = "internal/config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot := util.NewLogger("finstream", "info")
		boot.Fatal().Err(err).Msg("load config")
	}

	log := util.NewLogger(cfg.App.Name, cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	windowSize := cfg.Stream.WindowSize
	if windowSize <= 0 {
		windowSize = market.DefaultWindowSize
	}
	gen := stream.NewGenerator(cfg.Stream.Symbols, cfg.Stream.BasePrices,
		stream.WithMaxMovePct(cfg.Stream.MaxMovePct),
		stream.WithVolumeRange(cfg.Stream.VolumeMin, cfg.Stream.VolumeMax),
	)
	engine := stream.NewEngine(
		gen,
		market.NewWindow(windowSize),
		market.NewAlertLog(cfg.Alerts.Retention),
		market.NewDetector(cfg.Alerts.ChangeThreshold, cfg.Alerts.HighThreshold, cfg.Alerts.Debounce()),
		log,
		stream.WithInterval(cfg.Stream.Interval()),
	)

	var store *docs.Store
	if cfg.Docs.PersistPath != "" {
		store, err = docs.NewPersistentStore(cfg.Docs.PersistPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open document store")
		}
	} else {
		store = docs.NewStore()
	}
	defer store.Close()
	if cfg.Docs.Seed {
		added := store.SeedDefaults()
		log.Info().Int("added", added).Int("total", store.Count()).Msg("knowledge base ready")
	}

	advisor := insight.NewAdvisor(store, engine, insight.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		APIKey:  os.Getenv(cfg.LLM.APIKeyEnv),
		Timeout: time.Duration(cfg.LLM.TimeoutMs) * time.Millisecond,
	}, log)
	if !advisor.Available() {
		log.Warn().Str("env", cfg.LLM.APIKeyEnv).Msg("llm key not set, query endpoint serves canned answers")
	}

	server := api.NewServer(engine, store, advisor, cfg.Server.CORSOrigins, log)
	httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: server.Handler()}

	engine.Start()
	log.Info().Msg("real-time data stream initiated")

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("addr", cfg.Server.Addr).Msg("api up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpSrv.Shutdown(shutdownCtx)
	engine.Stop()
	log.Info().Msg("shutdown complete")
}

// Command server starts the AI interview-prep HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ai "github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai"
	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai/gemini"
	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/embedding"
	openaiemb "github.com/fairyhunter13/ai-interview-prep/internal/adapter/embedding/openai"
	httpserver "github.com/fairyhunter13/ai-interview-prep/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/observability"
	tikaext "github.com/fairyhunter13/ai-interview-prep/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/ai-interview-prep/internal/app"
	"github.com/fairyhunter13/ai-interview-prep/internal/config"
	"github.com/fairyhunter13/ai-interview-prep/internal/extract"
	"github.com/fairyhunter13/ai-interview-prep/internal/retrieval"
	"github.com/fairyhunter13/ai-interview-prep/internal/scoring"
	"github.com/fairyhunter13/ai-interview-prep/internal/session"
	"github.com/fairyhunter13/ai-interview-prep/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP and model instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// The generative model is the one dependency the service cannot run
	// without.
	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is not set; aborting startup")
		os.Exit(1)
	}

	ctx := context.Background()
	modelClient, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("gemini client init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = modelClient.Close() }()

	maxAttempts, initial, maxIv, mult := cfg.GetRetryConfig()
	policy := ai.RetryPolicy{MaxAttempts: maxAttempts, InitialInterval: initial, MaxInterval: maxIv, Multiplier: mult}

	auditor, err := ai.NewAuditor(cfg.AuditLogPath)
	if err != nil {
		slog.Error("audit log unavailable; model calls will not be audited", slog.Any("error", err))
		auditor = nil
	}
	gateway := ai.NewGateway(modelClient, cfg.GeminiModel, policy, auditor)

	// Embeddings: OpenAI-compatible endpoint behind a cache. Missing
	// credentials degrade semantic scoring to zero at call time.
	embedder := embedding.NewCache(openaiemb.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingsModel, policy), cfg.EmbedCacheSize)
	scorer := scoring.NewScorer(embedder)

	// Data sources, loaded once. Both degrade to empty on failure.
	taxonomy, err := extract.LoadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		slog.Warn("taxonomy unavailable; extraction will use base entity types only", slog.Any("error", err))
	}
	bank := retrieval.LoadBank(cfg.QuestionBankPath)

	extractor := extract.NewExtractor(extract.NewLexiconRecognizer(), taxonomy)
	retriever := retrieval.NewRetriever(bank)
	docs := tikaext.New(cfg.TikaURL)
	sessions := session.NewStore()

	genSvc := usecase.NewGenerateService(extractor, retriever, gateway, docs, sessions)
	evalSvc := usecase.NewEvaluateService(gateway, scorer, sessions)
	sessSvc := usecase.NewSessionService(sessions)

	tikaCheck := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.TikaURL+"/tika", nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("tika status %d", resp.StatusCode)
		}
		return nil
	}

	srv := httpserver.NewServer(cfg, genSvc, evalSvc, sessSvc, tikaCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}

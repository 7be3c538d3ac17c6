package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpzk/clindoc/internal/bootstrap"
	"github.com/rpzk/clindoc/internal/config"
	"github.com/rpzk/clindoc/internal/observability/logging"
	"github.com/rpzk/clindoc/internal/observability/metrics"
)

const service = "clindoc-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(service, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(service)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		log.Printf("worker metrics listening on :%s", cfg.WorkerMetricsPort)
		if err := http.ListenAndServe(":"+cfg.WorkerMetricsPort, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()

	analyzeTimeout := time.Duration(cfg.AnalyzeTimeoutSeconds) * time.Second

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		analyzeCtx, cancel := context.WithTimeout(handlerCtx, analyzeTimeout)
		defer cancel()

		if doc, err := app.Repo.GetByID(analyzeCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag(service, time.Since(doc.CreatedAt))
		}

		workerMetrics.StartAnalysis()
		start := time.Now()
		analyzeErr := app.AnalyzeUC.AnalyzeByID(analyzeCtx, documentID)
		workerMetrics.FinishAnalysis(service, time.Since(start), analyzeErr)

		if analyzeErr == nil {
			if res, err := app.Repo.GetAnalysis(analyzeCtx, documentID); err == nil {
				workerMetrics.ObserveResult(service, *res)
			}
		}
		return analyzeErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

// Command climate aggregates tab-delimited NOAA climate observation files
// into a per-state summary report.
//
// Usage:
//
//	climate file1.tdv [file2.tdv ... fileN.tdv]
//
// The report is written to stdout; logs go to stderr. Optional behavior is
// env-configured: HTTP_ADDR starts a monitoring server for the duration of
// the run, KAFKA_SUMMARY_TOPIC publishes the final summaries to Kafka.
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

	httpadapter "github.com/couchcryptid/climate-tdv-report/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-tdv-report/internal/adapter/kafka"
	"github.com/couchcryptid/climate-tdv-report/internal/config"
	"github.com/couchcryptid/climate-tdv-report/internal/domain"
	"github.com/couchcryptid/climate-tdv-report/internal/observability"
	"github.com/couchcryptid/climate-tdv-report/internal/pipeline"
	"github.com/couchcryptid/climate-tdv-report/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	files := os.Args[1:]
	if len(files) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s tdv_file1 tdv_file2 ... tdv_fileN\n", os.Args[0])
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	aggregator := domain.NewAggregator()
	p := pipeline.New(aggregator, logger, metrics, cfg.MaxLineBytes)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional monitoring server for long-running input sets.
	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer shutdownServer(srv, logger)
	}

	if err := p.Run(ctx, files); err != nil {
		logger.Error("run aborted", "error", err)
		return 1
	}

	// The fold is complete; the snapshot is the read-only hand-off to the
	// formatter and the optional publisher.
	summaries := aggregator.Snapshot()
	fmt.Print(report.Render(summaries))

	if cfg.PublishEnabled() {
		if err := publishSummaries(cfg, logger, summaries); err != nil {
			logger.Error("summary publish failed", "error", err)
			return 1
		}
	}

	return 0
}

func publishSummaries(cfg *config.Config, logger *slog.Logger, summaries []domain.StateSummary) error {
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PublishTimeout)
	defer cancel()

	return writer.PublishSummaries(ctx, summaries)
}

func shutdownServer(srv *httpadapter.Server, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}

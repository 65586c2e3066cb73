package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/climate-tdv-report/internal/domain"
	"github.com/couchcryptid/climate-tdv-report/internal/observability"
)

// Pipeline streams TDV files through tokenize, decode, and fold.
type Pipeline struct {
	aggregator   *domain.Aggregator
	logger       *slog.Logger
	metrics      *observability.Metrics
	maxLineBytes int
	ready        atomic.Bool
}

// New creates a Pipeline folding into the given aggregator.
func New(agg *domain.Aggregator, logger *slog.Logger, metrics *observability.Metrics, maxLineBytes int) *Pipeline {
	return &Pipeline{
		aggregator:   agg,
		logger:       logger,
		metrics:      metrics,
		maxLineBytes: maxLineBytes,
	}
}

// CheckReadiness returns nil once the pipeline has folded at least one record,
// or an error describing why the run is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not aggregated any records yet")
	}
	return nil
}

// Run streams every file in argument order. A file that cannot be opened or
// read aborts the whole run; lines that cannot be decoded are logged, counted,
// and skipped. Returns the context error if the run is cancelled mid-file.
func (p *Pipeline) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no input files")
	}

	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processFile(ctx, path); err != nil {
			return fmt.Errorf("process %s: %w", path, err)
		}
	}

	p.logger.Info("run complete",
		"files", len(paths),
		"states", p.aggregator.Len(),
	)
	return nil
}

func (p *Pipeline) processFile(ctx context.Context, path string) error {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p.logger.Info("opening file", "path", path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), p.maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNum++
		p.metrics.LinesRead.Inc()
		p.consumeLine(scanner.Text(), path, lineNum)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read: %w", err)
	}

	p.metrics.FilesProcessed.Inc()
	p.metrics.FileProcessingDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("file processed", "path", path, "lines", lineNum, "duration", time.Since(start))
	return nil
}

// consumeLine decodes and folds one line. Decode failures are local: the line
// is skipped and the run continues.
func (p *Pipeline) consumeLine(line, path string, lineNum int) {
	fields, err := domain.SplitLine(line)
	if err != nil {
		p.skipLine(err, path, lineNum)
		return
	}

	rec, err := domain.ParseRecord(fields)
	if err != nil {
		p.skipLine(err, path, lineNum)
		return
	}

	p.aggregator.Consume(rec)
	p.metrics.RecordsAggregated.Inc()
	p.metrics.StatesDiscovered.Set(float64(p.aggregator.Len()))
	p.ready.Store(true)
}

func (p *Pipeline) skipLine(err error, path string, lineNum int) {
	reason := parseErrorReason(err)
	p.logger.Warn("skipping undecodable line",
		"error", err,
		"path", path,
		"line", lineNum,
		"reason", reason,
	)
	p.metrics.ParseErrors.WithLabelValues(reason).Inc()
}

func parseErrorReason(err error) string {
	var malformed *domain.MalformedLineError
	if errors.As(err, &malformed) {
		return "malformed_line"
	}
	return "bad_field"
}

// Package batch runs the telemetry normalization pipeline over a set of
// uploaded files and merges the results into per-metric series collections.
package batch

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/extract"
	"activity-telemetry-lab/internal/normalization"
	"activity-telemetry-lab/internal/observability"
	"activity-telemetry-lab/internal/sniff"
)

// FileOutcome is the pipeline result for one uploaded file. A file that
// could not be read (unsupported suffix, corrupt content, zero usable
// records) carries an empty dataset and contributes nothing downstream;
// absence is the only failure signal.
type FileOutcome struct {
	Name    string
	Format  sniff.Format
	Dataset *domain.Dataset
	Series  map[domain.MetricKey]domain.MetricSeries
}

// Runner executes the per-file pipeline: sniff → extract → build dataset →
// project each supported metric. Files are independent; the only ordering
// requirement is that the merged result lists series in submission order.
type Runner struct {
	workers int
	metrics *observability.Metrics
	logger  *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of files processed concurrently. Values
// below 2 keep processing sequential. Results are identical either way.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger attaches a logger for per-file diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a batch runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process runs the pipeline over all files and merges the projections into
// a BatchResult in file submission order.
func (r *Runner) Process(ctx context.Context, files []domain.UploadFile) domain.BatchResult {
	return MergeOutcomes(r.ProcessFiles(ctx, files))
}

// ProcessFiles runs the pipeline over all files, returning one outcome per
// file in submission order. Per-file failure is isolated: a corrupt file
// yields an empty outcome and does not affect its neighbors.
func (r *Runner) ProcessFiles(ctx context.Context, files []domain.UploadFile) []FileOutcome {
	outcomes := make([]FileOutcome, len(files))

	if r.workers > 1 {
		group, _ := errgroup.WithContext(ctx)
		group.SetLimit(r.workers)
		for i, file := range files {
			group.Go(func() error {
				outcomes[i] = r.processFile(file)
				return nil
			})
		}
		// Workers never return errors; Wait only synchronizes.
		_ = group.Wait()
	} else {
		for i, file := range files {
			outcomes[i] = r.processFile(file)
		}
	}

	if r.metrics != nil {
		r.metrics.BatchesTotal.Inc()
	}
	return outcomes
}

// MergeOutcomes folds per-file outcomes into the per-metric collections.
// Only non-empty series are appended; insertion order equals submission
// order because outcomes arrive indexed by file position.
func MergeOutcomes(outcomes []FileOutcome) domain.BatchResult {
	result := domain.NewBatchResult()
	for _, outcome := range outcomes {
		for _, key := range domain.MetricKeys {
			if series, ok := outcome.Series[key]; ok && len(series.Data) > 0 {
				result[key] = append(result[key], series)
			}
		}
	}
	return result
}

func (r *Runner) processFile(file domain.UploadFile) FileOutcome {
	started := time.Now()
	format := sniff.Detect(file.Name)

	var rows []domain.TelemetryRow
	switch format {
	case sniff.Binary:
		rows = extract.FromFIT(file.Data)
	case sniff.XML:
		rows = extract.FromTCX(file.Data)
	case sniff.Unsupported:
		// Silently skipped; the file simply never appears in any series.
	}

	dataset := normalization.BuildDataset(file.Name, rows)
	series := make(map[domain.MetricKey]domain.MetricSeries, len(domain.MetricKeys))
	for _, key := range domain.MetricKeys {
		series[key] = normalization.ProjectSeries(dataset, key, file.Name)
	}

	r.observe(file.Name, format, dataset, series, time.Since(started))
	return FileOutcome{Name: file.Name, Format: format, Dataset: dataset, Series: series}
}

func (r *Runner) observe(name string, format sniff.Format, dataset *domain.Dataset, series map[domain.MetricKey]domain.MetricSeries, elapsed time.Duration) {
	if r.logger != nil && dataset.Empty() {
		r.logger.Printf("upload %q (%s) yielded no usable telemetry", name, format)
	}
	if r.metrics == nil {
		return
	}
	if dataset.Empty() {
		r.metrics.FilesSkipped.Inc()
	} else {
		r.metrics.FilesParsed.WithLabelValues(format.String()).Inc()
		r.metrics.RowsExtracted.Add(float64(len(dataset.Rows)))
	}
	for key, s := range series {
		if len(s.Data) > 0 {
			r.metrics.PointsProjected.WithLabelValues(string(key)).Add(float64(len(s.Data)))
		}
	}
	r.metrics.ParseDuration.WithLabelValues(format.String()).Observe(elapsed.Seconds())
}

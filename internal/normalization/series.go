package normalization

import (
	"activity-telemetry-lab/internal/domain"
)

// ProjectSeries converts a dataset into the point list for one metric.
// A point is emitted only when the row carries a value for the metric;
// rows missing it are skipped, so gaps in the source signal stay gaps
// instead of becoming fabricated zeros. The returned series has empty
// (non-nil) data when the dataset is empty or no row carries the metric.
func ProjectSeries(dataset *domain.Dataset, key domain.MetricKey, seriesName string) domain.MetricSeries {
	series := domain.MetricSeries{Name: seriesName, Data: []domain.MetricPoint{}}
	if dataset.Empty() {
		return series
	}
	for i := range dataset.Rows {
		value := dataset.Rows[i].Metric(key)
		if value == nil {
			continue
		}
		series.Data = append(series.Data, domain.MetricPoint{
			TimestampMs: dataset.Rows[i].Timestamp.UnixMilli(),
			Value:       *value,
		})
	}
	return series
}

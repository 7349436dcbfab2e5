package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"activity-telemetry-lab/internal/batch"
	"activity-telemetry-lab/internal/domain"
	"activity-telemetry-lab/internal/idhash"
	"activity-telemetry-lab/internal/storage"
)

// uploadSummary is the per-file payload of a batch notification.
type uploadSummary struct {
	UploadID string `json:"upload_id"`
	FileName string `json:"file_name"`
	Format   string `json:"format"`
	RowCount int    `json:"row_count"`
}

// batchNotification is pushed to websocket clients after each parse.
type batchNotification struct {
	Type    string          `json:"type"`
	Uploads []uploadSummary `json:"uploads"`
}

// handleParse accepts multipart uploads under the "files" field and returns
// chart-ready series grouped by metric. Unusable files contribute nothing;
// the endpoint only fails on malformed requests.
func (s *Server) handleParse(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > s.cfg.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large: " + fh.Filename})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file: " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file: " + fh.Filename})
			return
		}

		name := fh.Filename
		if name == "" {
			name = "file"
		}
		files = append(files, domain.UploadFile{Name: name, Data: data})
	}

	outcomes := s.runner.ProcessFiles(c.Request.Context(), files)
	result := batch.MergeOutcomes(outcomes)

	summaries := s.archive(c, files, outcomes)
	if len(summaries) > 0 {
		s.hub.Broadcast(batchNotification{Type: "batch", Uploads: summaries})
	}

	c.JSON(http.StatusOK, gin.H{"series": result})
}

// archive persists each usable outcome to the activity and point stores.
// Failures are logged and counted, never surfaced to the uploader; the
// parse response does not depend on the archive.
func (s *Server) archive(c *gin.Context, files []domain.UploadFile, outcomes []batch.FileOutcome) []uploadSummary {
	var summaries []uploadSummary

	for i, outcome := range outcomes {
		if outcome.Dataset == nil || outcome.Dataset.Empty() {
			continue
		}

		uploadID := idhash.ComputeUploadID(files[i].Name, files[i].Data)
		summaries = append(summaries, uploadSummary{
			UploadID: uploadID,
			FileName: outcome.Name,
			Format:   outcome.Format.String(),
			RowCount: len(outcome.Dataset.Rows),
		})

		if s.activities == nil {
			continue
		}

		activity := &domain.Activity{
			UploadID:     uploadID,
			FileName:     outcome.Name,
			Format:       outcome.Format.String(),
			RowCount:     len(outcome.Dataset.Rows),
			UploadedAtMs: time.Now().UnixMilli(),
		}

		err := s.activities.Insert(c.Request.Context(), activity)
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Same file uploaded before; points are already archived.
			continue
		}
		if err != nil {
			s.observeArchiveError("store activity", outcome.Name, err)
			continue
		}
		if s.metrics != nil {
			s.metrics.ActivitiesStored.Inc()
		}

		if s.points == nil {
			continue
		}

		var points []*domain.StoredPoint
		for metric, series := range outcome.Series {
			for _, p := range series.Data {
				points = append(points, &domain.StoredPoint{
					UploadID:    uploadID,
					Metric:      metric,
					TimestampMs: p.TimestampMs,
					Value:       p.Value,
				})
			}
		}
		if err := s.points.InsertBulk(c.Request.Context(), points); err != nil {
			s.observeArchiveError("store points", outcome.Name, err)
		}
	}

	return summaries
}

func (s *Server) observeArchiveError(op, name string, err error) {
	if s.metrics != nil {
		s.metrics.ArchiveErrors.Inc()
	}
	s.logger.Printf("%s for %q: %v", op, name, err)
}

// handleListActivities returns archived uploads, newest first.
func (s *Server) handleListActivities(c *gin.Context) {
	if s.activities == nil {
		c.JSON(http.StatusOK, gin.H{"activities": []*domain.Activity{}})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	activities, err := s.activities.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.Printf("list activities: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive unavailable"})
		return
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// handleActivitySeries rebuilds one chart series from the archive.
func (s *Server) handleActivitySeries(c *gin.Context) {
	if s.activities == nil || s.points == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "archive disabled"})
		return
	}

	metric, ok := parseMetricKey(c.Query("metric"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown metric"})
		return
	}

	uploadID := c.Param("id")
	activity, err := s.activities.GetByID(c.Request.Context(), uploadID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown upload"})
		return
	}
	if err != nil {
		s.logger.Printf("get activity %q: %v", uploadID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive unavailable"})
		return
	}

	stored, err := s.points.GetByUpload(c.Request.Context(), uploadID, metric)
	if err != nil {
		s.logger.Printf("get points %q: %v", uploadID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive unavailable"})
		return
	}

	series := domain.MetricSeries{Name: activity.FileName, Data: make([]domain.MetricPoint, 0, len(stored))}
	for _, p := range stored {
		series.Data = append(series.Data, domain.MetricPoint{TimestampMs: p.TimestampMs, Value: p.Value})
	}

	c.JSON(http.StatusOK, gin.H{"series": series})
}

func parseMetricKey(raw string) (domain.MetricKey, bool) {
	for _, key := range domain.MetricKeys {
		if raw == string(key) {
			return key, true
		}
	}
	return "", false
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"clients_connected": s.hub.ClientCount(),
	})
}

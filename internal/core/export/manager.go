package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
)

// Manager produces downloadable artifacts from dataset views and keeps a
// bounded in-memory history of completed exports.
type Manager interface {
	ExportCSV(v *dataset.View, filter dataset.Filter, compress bool) (*Result, error)
	History() []Job
}

// Result is a completed export artifact.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Job records one completed export.
type Job struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Rows       int            `json:"rows"`
	Bytes      int            `json:"bytes"`
	Compressed bool           `json:"compressed"`
	Filter     dataset.Filter `json:"filter"`
	CreatedAt  time.Time      `json:"created_at"`
}

type exportManager struct {
	logger       *logrus.Logger
	historyLimit int

	mu      sync.Mutex
	history []Job
}

// NewManager creates an export manager keeping at most historyLimit jobs.
func NewManager(logger *logrus.Logger, historyLimit int) Manager {
	return &exportManager{
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// ExportCSV writes the view's rows as CSV in column order, header first,
// optionally gzip-compressed. The filename carries a timestamp so repeated
// downloads do not collide.
func (m *exportManager) ExportCSV(v *dataset.View, filter dataset.Filter, compress bool) (*Result, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(v.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := 0; i < v.Len(); i++ {
		if err := writer.Write(v.Row(i)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	filename := fmt.Sprintf("filtered_sales_%s.csv", time.Now().Format("20060102_150405"))
	contentType := "text/csv"
	data := buf.Bytes()

	if compress {
		var compressed bytes.Buffer
		gz := gzip.NewWriter(&compressed)
		if _, err := gz.Write(data); err != nil {
			return nil, fmt.Errorf("failed to compress export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return nil, fmt.Errorf("failed to finalize compressed export: %w", err)
		}
		data = compressed.Bytes()
		filename += ".gz"
		contentType = "application/gzip"
	}

	m.record(Job{
		ID:         uuid.New().String(),
		Filename:   filename,
		Rows:       v.Len(),
		Bytes:      len(data),
		Compressed: compress,
		Filter:     filter,
		CreatedAt:  time.Now(),
	})

	m.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"rows":       v.Len(),
		"bytes":      len(data),
		"compressed": compress,
	}).Info("Export completed")

	return &Result{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// History returns the recorded jobs, newest first.
func (m *exportManager) History() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]Job, len(m.history))
	for i, job := range m.history {
		jobs[len(m.history)-1-i] = job
	}
	return jobs
}

func (m *exportManager) record(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, job)
	if len(m.history) > m.historyLimit {
		m.history = m.history[len(m.history)-m.historyLimit:]
	}
}

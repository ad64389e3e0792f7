// Package telemetry persists per-query records and error logs as Parquet
// files for offline analysis of answer quality.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// QueryRecord is one answered question in the Parquet query log.
type QueryRecord struct {
	ID           string    `parquet:"id"`
	Timestamp    time.Time `parquet:"timestamp"`
	Query        string    `parquet:"query"`
	Intent       string    `parquet:"intent"`
	Confidence   string    `parquet:"confidence"`
	MatchScore   float64   `parquet:"match_score"`
	CandidateCnt int       `parquet:"candidate_count"`
	KeywordOnly  bool      `parquet:"keyword_only"`
	DurationMs   int64     `parquet:"duration_ms"`
}

// Recorder buffers query records and writes them to Parquet files in batches.
type Recorder struct {
	outputDir string
	batchSize int

	mu     sync.Mutex
	buffer []QueryRecord
}

// NewRecorder creates a recorder writing under outputDir.
func NewRecorder(outputDir string) (*Recorder, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create telemetry directory: %w", err)
	}
	return &Recorder{
		outputDir: outputDir,
		batchSize: 100,
		buffer:    make([]QueryRecord, 0, 100),
	}, nil
}

// Record buffers one query record, flushing when the batch fills.
func (r *Recorder) Record(rec QueryRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = append(r.buffer, rec)
	if len(r.buffer) >= r.batchSize {
		r.flush()
	}
}

// Close flushes any buffered records.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

// flush writes the current buffer to a new Parquet file. Caller holds the
// lock.
func (r *Recorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("queries_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.outputDir, filename)

	if err := parquet.WriteFile(path, r.buffer); err != nil {
		return fmt.Errorf("write telemetry parquet file: %w", err)
	}

	r.buffer = r.buffer[:0]
	return nil
}

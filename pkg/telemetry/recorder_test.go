package telemetry_test

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlaw/trafficqa/pkg/telemetry"
)

func TestRecorderWritesParquetOnClose(t *testing.T) {
	dir := t.TempDir()
	recorder, err := telemetry.NewRecorder(dir)
	require.NoError(t, err)

	recorder.Record(telemetry.QueryRecord{
		Query:        "Vượt đèn đỏ phạt bao nhiêu?",
		Intent:       "penalty_inquiry",
		Confidence:   "high",
		MatchScore:   0.92,
		CandidateCnt: 2,
		DurationMs:   14,
	})
	recorder.Record(telemetry.QueryRecord{
		Query:      "Làm thế nào để nấu phở?",
		Intent:     "general_info",
		Confidence: "none",
	})
	require.NoError(t, recorder.Close())

	files, err := filepath.Glob(filepath.Join(dir, "queries_*.parquet"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	rows, err := parquet.ReadFile[telemetry.QueryRecord](files[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "penalty_inquiry", rows[0].Intent)
	assert.Equal(t, "none", rows[1].Confidence)
	// missing IDs and timestamps are filled in on record
	assert.NotEmpty(t, rows[0].ID)
	assert.False(t, rows[0].Timestamp.IsZero())
}

func TestRecorderCloseWithoutRecords(t *testing.T) {
	recorder, err := telemetry.NewRecorder(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, recorder.Close())
}

func TestRecorderRejectsUncreatableDir(t *testing.T) {
	_, err := telemetry.NewRecorder("/proc/nonexistent/telemetry")
	assert.Error(t, err)
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/config"
)

func TestWriteSummaryJSON(t *testing.T) {
	t.Setenv("EXPORTS_FOLDER", t.TempDir())
	svc := NewFiles(config.NewEnv())

	summary := model.RunSummary{
		SessionID: "abc",
		Video:     "demo",
		Timestamp: "2026-01-02T15:04:05Z",
		Pipeline: model.PipelineSummary{
			Resolution:      "1280x720",
			FPS:             30,
			FramesProcessed: 90,
			LatencyP50MS:    0.9,
			LatencyP95MS:    1.0,
		},
		Detection: model.DetectionSummary{
			DefectsDetected: 12,
			HighSeverity:    4,
			AvgConfidence:   0.88,
		},
		ROI: model.FixedROISummary(),
	}

	path, err := svc.WriteSummaryJSON(summary)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, ".json"))
	require.Contains(t, path, "aurasense_demo_")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.RunSummary
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, summary, got)
}

func TestWriteFramesCSV(t *testing.T) {
	t.Setenv("EXPORTS_FOLDER", t.TempDir())
	svc := NewFiles(config.NewEnv())

	rows := []FrameRow{
		{FrameIndex: 0, Defects: 2, HighSeverity: 1, AvgConfidence: 0.9123, LatencyMS: 0.987},
		{FrameIndex: 1, Defects: 0, HighSeverity: 0, AvgConfidence: 0, LatencyMS: 1.041},
	}

	path, err := svc.WriteFramesCSV("demo", rows)
	require.NoError(t, err)
	require.Contains(t, path, "demo_frames_")

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t,
		[]string{"frame_index", "defects", "high_severity", "avg_confidence", "latency_ms"},
		records[0])
	require.Equal(t, []string{"0", "2", "1", "0.9123", "0.987"}, records[1])
	require.Equal(t, []string{"1", "0", "0", "0.0000", "1.041"}, records[2])
}

func TestWriteFramesCSVEmpty(t *testing.T) {
	t.Setenv("EXPORTS_FOLDER", t.TempDir())
	svc := NewFiles(config.NewEnv())

	path, err := svc.WriteFramesCSV("demo", nil)
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

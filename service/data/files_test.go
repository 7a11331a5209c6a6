package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/config"
)

const videosFixture = `[
  {
    "id": "demo-1",
    "name": "Bridge Pass A",
    "path": "./videos/demo.mp4",
    "framerType": "file",
    "threshold": 0.8,
    "spikesEnabled": true,
    "excluded": false
  },
  {
    "id": "demo-2",
    "name": "Synthetic Feed",
    "path": "",
    "framerType": "synthetic",
    "threshold": 0.85,
    "spikesEnabled": false,
    "excluded": true
  }
]`

func newTestService(t *testing.T) IService {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("INPUT_FOLDER", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos.json"), []byte(videosFixture), 0644))
	return NewFilesDB(config.NewEnv())
}

func TestRetrieveVideos(t *testing.T) {
	svc := newTestService(t)

	videos, err := svc.RetrieveVideos()
	require.NoError(t, err)
	require.Len(t, videos, 2)
	require.Equal(t, "demo-1", videos[0].ID)
	require.Equal(t, "Bridge Pass A", videos[0].Name)
	require.Equal(t, 0.8, videos[0].Threshold)
	require.True(t, videos[0].SpikesEnabled)
	require.True(t, videos[1].Excluded)
}

func TestRetrieveVideosMissingFile(t *testing.T) {
	t.Setenv("INPUT_FOLDER", t.TempDir())
	svc := NewFilesDB(config.NewEnv())

	_, err := svc.RetrieveVideos()
	require.Error(t, err)
}

func TestRetrieveVideoByID(t *testing.T) {
	svc := newTestService(t)

	video, err := svc.RetrieveVideoByID("demo-2")
	require.NoError(t, err)
	require.Equal(t, "synthetic", video.FramerType)

	_, err = svc.RetrieveVideoByID("nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestNewRunSummaryAppends(t *testing.T) {
	svc := newTestService(t)

	first := model.RunSummary{SessionID: "s1", Video: "demo", ROI: model.FixedROISummary()}
	second := model.RunSummary{SessionID: "s2", Video: "demo", ROI: model.FixedROISummary()}

	require.NoError(t, svc.NewRunSummary(first))
	require.NoError(t, svc.NewRunSummary(second))

	summaries, err := svc.RetrieveRunSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, first, summaries[0])
	require.Equal(t, second, summaries[1])
}

func TestRetrieveRunSummariesEmpty(t *testing.T) {
	t.Setenv("INPUT_FOLDER", t.TempDir())
	svc := NewFilesDB(config.NewEnv())

	summaries, err := svc.RetrieveRunSummaries()
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestNewStatsEntities(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.NewFramerStats(model.FramerStats{Name: "framer", Video: "demo", Frames: 10}))
	require.NoError(t, svc.NewStreamerStats(model.StreamerStats{Name: "streamer", Worker: 0, Video: "demo", Frames: 10}))
	require.NoError(t, svc.NewAlerterStats(model.AlerterStats{Name: "alerter", Alerts: 2}))
	require.NoError(t, svc.NewSessionStats(model.SessionStats{ID: "x1", Video: "demo", Frames: 10}))

	for _, name := range []string{"framer-stats", "streamer-stats", "alerter-stats", "session-stats"} {
		_, err := os.Stat(filepath.Join(os.Getenv("INPUT_FOLDER"), name+".json"))
		require.NoError(t, err, name)
	}
}

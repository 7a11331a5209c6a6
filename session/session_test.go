package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/synthetic"
)

func newTestSession() *Session {
	return New(Options{
		VideoName:     "unit",
		Width:         1280,
		Height:        720,
		SourceFPS:     30,
		Threshold:     0.80,
		SpikesEnabled: true,
	})
}

func TestStepAdvancesFrameIndex(t *testing.T) {
	s := newTestSession()

	for i := 0; i < 10; i++ {
		require.Equal(t, i, s.FrameIndex())
		result := s.Step()
		require.Equal(t, i, result.FrameIndex)
	}
	require.Equal(t, 10, s.FrameIndex())
}

func TestStepMatchesGenerator(t *testing.T) {
	s := newTestSession()

	for i := 0; i < 50; i++ {
		result := s.Step()
		require.Equal(t,
			synthetic.Generate(1280, 720, i, 0.80),
			result.Defects, "frame %d", i)
		require.Equal(t, synthetic.SimulateLatency(i), result.Latency)
	}
}

func TestSummaryAggregates(t *testing.T) {
	const frames = 120
	s := newTestSession()

	wantDefects, wantHigh := 0, 0
	confSum, confCount := 0.0, 0
	for i := 0; i < frames; i++ {
		for _, d := range s.Step().Defects {
			wantDefects++
			if d.Severity == model.SeverityHigh {
				wantHigh++
			}
			confSum += d.Confidence
			confCount++
		}
	}

	sum := s.Summary()
	require.Equal(t, frames, sum.Pipeline.FramesProcessed)
	require.Equal(t, "1280x720", sum.Pipeline.Resolution)
	require.Equal(t, 30.0, sum.Pipeline.FPS)
	require.Equal(t, wantDefects, sum.Detection.DefectsDetected)
	require.Equal(t, wantHigh, sum.Detection.HighSeverity)
	if confCount > 0 {
		require.InDelta(t, confSum/float64(confCount), sum.Detection.AvgConfidence, 1e-9)
	}
	require.Equal(t, model.FixedROISummary(), sum.ROI)
}

func TestSummaryLatencyOrdering(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 200; i++ {
		s.Step()
	}

	p := s.Summary().Pipeline
	require.Greater(t, p.LatencyP50MS, 0.0)
	require.LessOrEqual(t, p.LatencyP50MS, p.LatencyP95MS)
	require.LessOrEqual(t, p.LatencyP95MS, p.LatencyP99MS)
	require.LessOrEqual(t, p.LatencyP99MS, p.MaxLatencyMS)
	require.LessOrEqual(t, p.AvgLatencyMS, p.MaxLatencyMS)
}

func TestResetZeroesAggregate(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 40; i++ {
		s.Step()
	}
	require.NotZero(t, s.FrameIndex())

	s.Reset()
	require.Zero(t, s.FrameIndex())

	sum := s.Summary()
	require.Zero(t, sum.Pipeline.FramesProcessed)
	require.Zero(t, sum.Detection.DefectsDetected)
	require.Zero(t, sum.Detection.HighSeverity)
	require.Zero(t, sum.Detection.AvgConfidence)
	require.Zero(t, sum.Pipeline.LatencyP50MS)

	// Replay after reset sees the identical stream; the generator keys
	// off the frame index alone.
	require.Equal(t, synthetic.Generate(1280, 720, 0, 0.80), s.Step().Defects)
}

func TestPercentile(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}

	require.Equal(t, 3.0, percentile(values, 0.50))
	require.Equal(t, 5.0, percentile(values, 0.95))
	require.Equal(t, 5.0, percentile(values, 0.99))
	require.Zero(t, percentile(nil, 0.50))
}

func TestStatsCountsFrames(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 7; i++ {
		s.Step()
	}

	stats := s.Stats()
	require.Equal(t, s.ID, stats.ID)
	require.Equal(t, "unit", stats.Video)
	require.Equal(t, 7, stats.Frames)
}

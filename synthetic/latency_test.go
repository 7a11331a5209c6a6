package synthetic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulateLatencyDeterministic(t *testing.T) {
	for fidx := 0; fidx < 100; fidx++ {
		require.Equal(t, SimulateLatency(fidx), SimulateLatency(fidx), "frame %d", fidx)
	}
}

func TestSimulateLatencyStageRanges(t *testing.T) {
	for fidx := 0; fidx < 500; fidx++ {
		l := SimulateLatency(fidx)

		require.GreaterOrEqual(t, l.CopyMS, copyMinMS)
		require.Less(t, l.CopyMS, copyMaxMS)
		require.GreaterOrEqual(t, l.ResizeMS, resizeMinMS)
		require.Less(t, l.ResizeMS, resizeMaxMS)
		require.GreaterOrEqual(t, l.DetectMS, detectMinMS)
		require.Less(t, l.DetectMS, detectMaxMS)
		require.GreaterOrEqual(t, l.EncodeMS, encodeMinMS)
		require.Less(t, l.EncodeMS, encodeMaxMS)
		require.GreaterOrEqual(t, l.CPUPct, cpuBasePct-cpuJitterPct)
		require.Less(t, l.CPUPct, cpuBasePct+cpuJitterPct)
	}
}

func TestFrameLatencyTotal(t *testing.T) {
	l := FrameLatency{CopyMS: 0.1, ResizeMS: 0.3, DetectMS: 0.45, EncodeMS: 0.03}
	require.InDelta(t, 0.88, l.TotalMS(), 1e-9)
	require.InDelta(t, 1000.0/0.88, l.ThroughputFPS(), 1e-9)
}

func TestFrameLatencySubMillisecond(t *testing.T) {
	// The whole pitch is "P99 < 1ms"; the simulated hot path must never
	// contradict the deck.
	for fidx := 0; fidx < 1000; fidx++ {
		require.Less(t, SimulateLatency(fidx).TotalMS(), 1.1)
	}
}

func TestFrameLatencyZeroTotal(t *testing.T) {
	require.Zero(t, FrameLatency{}.ThroughputFPS())
}

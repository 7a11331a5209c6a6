package synthetic

import "math/rand"

// Latency seeding uses the same affine discipline as the defect generator
// but a different line, so the two streams never correlate.
const (
	latencySeedMul = 3
	latencySeedAdd = 17
)

// Stage timing ranges in milliseconds. These are the figures the sales
// deck quotes for the (separately implemented) SIMD pipeline.
const (
	copyMinMS = 0.08
	copyMaxMS = 0.12

	resizeMinMS = 0.25
	resizeMaxMS = 0.35

	detectMinMS = 0.35
	detectMaxMS = 0.55

	encodeMinMS = 0.02
	encodeMaxMS = 0.04

	cpuBasePct   = 15.0
	cpuJitterPct = 2.0
)

// FrameLatency is the fabricated per-frame hot-path breakdown.
type FrameLatency struct {
	CopyMS   float64 `json:"copyMs"`
	ResizeMS float64 `json:"resizeMs"`
	DetectMS float64 `json:"detectMs"`
	EncodeMS float64 `json:"encodeMs"`
	CPUPct   float64 `json:"cpuPct"`
}

// TotalMS is the end-to-end simulated latency for the frame.
func (l FrameLatency) TotalMS() float64 {
	return l.CopyMS + l.ResizeMS + l.DetectMS + l.EncodeMS
}

// ThroughputFPS converts the simulated latency into the frames-per-second
// figure shown on the dashboard.
func (l FrameLatency) ThroughputFPS() float64 {
	total := l.TotalMS()
	if total <= 0 {
		return 0
	}
	return 1000.0 / total
}

// SimulateLatency fabricates the stage timings for one frame. Like
// Generate, it is deterministic per frame index.
func SimulateLatency(frameIndex int) FrameLatency {
	rng := rand.New(rand.NewSource(int64(frameIndex)*latencySeedMul + latencySeedAdd))

	return FrameLatency{
		CopyMS:   floatBetween(rng, copyMinMS, copyMaxMS),
		ResizeMS: floatBetween(rng, resizeMinMS, resizeMaxMS),
		DetectMS: floatBetween(rng, detectMinMS, detectMaxMS),
		EncodeMS: floatBetween(rng, encodeMinMS, encodeMaxMS),
		CPUPct:   cpuBasePct + floatBetween(rng, -cpuJitterPct, cpuJitterPct),
	}
}

func floatBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

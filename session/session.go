// Package session owns the mutable state of one playback run. Each tick
// runs generator -> overlay -> aggregate and then hands control back to
// the caller; there is no locking because a session belongs to exactly
// one playback loop. Stop/reset zeroes the aggregate and the frame index.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/overlay"
	"github.com/aurasense/sfsvc-demo/synthetic"
)

// Options fixes the knobs of a playback session at creation time.
type Options struct {
	VideoName     string
	Width         int
	Height        int
	SourceFPS     float64
	Threshold     float64
	SpikesEnabled bool
}

// TickResult is what one frame tick produced. The defect slice is owned
// by the caller for the duration of the tick only.
type TickResult struct {
	FrameIndex int                    `json:"frameIndex"`
	Defects    []model.DefectRecord   `json:"defects"`
	Latency    synthetic.FrameLatency `json:"latency"`
}

// Session is the explicit per-run state struct: frame cursor plus the
// running aggregate. The aggregate grows without bound across a run,
// which is acceptable for short demo sessions.
type Session struct {
	ID   string
	Opts Options

	frameIndex   int
	defects      int
	highSeverity int
	confidences  []float64
	latencies    []float64
	startTime    time.Time
}

func New(opts Options) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Opts:      opts,
		startTime: time.Now(),
	}
}

// FrameIndex is the cursor of the next tick.
func (s *Session) FrameIndex() int {
	return s.frameIndex
}

// Step runs one headless tick: generate defects and latency for the
// current frame index, fold them into the aggregate and advance the
// cursor. No rendering happens here.
func (s *Session) Step() TickResult {
	defects := synthetic.Generate(s.Opts.Width, s.Opts.Height, s.frameIndex, s.Opts.Threshold)
	latency := synthetic.SimulateLatency(s.frameIndex)

	s.defects += len(defects)
	for _, d := range defects {
		if d.Severity == model.SeverityHigh {
			s.highSeverity++
		}
		s.confidences = append(s.confidences, d.Confidence)
	}
	s.latencies = append(s.latencies, latency.TotalMS())

	result := TickResult{
		FrameIndex: s.frameIndex,
		Defects:    defects,
		Latency:    latency,
	}
	s.frameIndex++
	return result
}

// Tick runs one full tick against a frame buffer: Step plus the overlay
// pass (boxes, optional spike layer, status banner). The buffer is
// mutated in place.
func (s *Session) Tick(mat *gocv.Mat) TickResult {
	result := s.Step()

	overlay.DrawDefects(mat, result.Defects)

	spikes := "OFF"
	if s.Opts.SpikesEnabled && len(result.Defects) > 0 {
		plan := overlay.PlanSpikes(s.Opts.Width, s.Opts.Height, result.FrameIndex, result.Defects)
		overlay.DrawSpikes(mat, plan)
		spikes = "ON"
	}

	overlay.DrawStatus(mat, fmt.Sprintf("Det: %d | Spikes: %s | Frame %d",
		len(result.Defects), spikes, result.FrameIndex))

	return result
}

// Reset zeroes the frame cursor and the running aggregate, as if the
// stream had been restarted.
func (s *Session) Reset() {
	s.frameIndex = 0
	s.defects = 0
	s.highSeverity = 0
	s.confidences = nil
	s.latencies = nil
	s.startTime = time.Now()
}

// Stats reports the heartbeat view of the session.
func (s *Session) Stats() model.SessionStats {
	return model.SessionStats{
		ID:     s.ID,
		Video:  s.Opts.VideoName,
		Frames: s.frameIndex,
		Uptime: int64(time.Since(s.startTime).Seconds()),
	}
}

// Summary folds the running aggregate into the exportable run report.
func (s *Session) Summary() model.RunSummary {
	avgConf := 0.0
	if len(s.confidences) > 0 {
		for _, c := range s.confidences {
			avgConf += c
		}
		avgConf /= float64(len(s.confidences))
	}

	return model.RunSummary{
		SessionID: s.ID,
		Video:     s.Opts.VideoName,
		Timestamp: time.Now().Format(time.RFC3339),
		Pipeline: model.PipelineSummary{
			Resolution:      fmt.Sprintf("%dx%d", s.Opts.Width, s.Opts.Height),
			FPS:             s.Opts.SourceFPS,
			FramesProcessed: s.frameIndex,
			LatencyP50MS:    percentile(s.latencies, 0.50),
			LatencyP95MS:    percentile(s.latencies, 0.95),
			LatencyP99MS:    percentile(s.latencies, 0.99),
			AvgLatencyMS:    average(s.latencies),
			MaxLatencyMS:    maximum(s.latencies),
		},
		Detection: model.DetectionSummary{
			DefectsDetected: s.defects,
			HighSeverity:    s.highSeverity,
			AvgConfidence:   avgConf,
		},
		ROI: model.FixedROISummary(),
	}
}

// percentile uses the index convention the demo has always displayed:
// sorted[int(len*q)], with q=0.5 landing on sorted[len/2].
func percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maximum(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

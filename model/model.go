package model

import (
	"fmt"
	"image"
	"math"
	"runtime/debug"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// Severity of a synthetic defect. Drives overlay color and labeling only.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// DefectRecord is a simulated crack detection: a bounding box plus
// severity/confidence tuple. Created fresh per frame by the synthetic
// generator and never persisted.
type DefectRecord struct {
	X1         int      `json:"x1"`
	Y1         int      `json:"y1"`
	X2         int      `json:"x2"`
	Y2         int      `json:"y2"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`
}

// Rect returns the defect box as an image.Rectangle.
func (d DefectRecord) Rect() image.Rectangle {
	return image.Rect(d.X1, d.Y1, d.X2, d.Y2)
}

// Center returns the pixel center of the defect box.
func (d DefectRecord) Center() (x, y int) {
	return (d.X1 + d.X2) / 2, (d.Y1 + d.Y2) / 2
}

// LengthMM is the demo-grade crack length estimate shown in reports:
// box diagonal scaled by a fixed mm-per-pixel factor.
func (d DefectRecord) LengthMM() float64 {
	const mmPerPixel = 0.05
	return mmPerPixel * math.Hypot(float64(d.X2-d.X1), float64(d.Y2-d.Y1))
}

type Video struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Path          string  `json:"path"`
	FramerType    string  `json:"framerType"` // "file" or "synthetic"
	Threshold     float64 `json:"threshold"`
	SpikesEnabled bool    `json:"spikesEnabled"`
	Excluded      bool    `json:"excluded"`
}

type AlerterStats struct {
	Name      string `json:"name"`
	Alerts    int    `json:"alerts"`
	Errors    int    `json:"errors"`
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

type StreamerStats struct {
	Name        string  `json:"name"`
	Worker      int     `json:"worker"`
	Video       string  `json:"video"`
	FPS         int     `json:"fps"`
	Frames      int     `json:"frames"`
	Errors      int     `json:"errors"`
	Uptime      int64   `json:"uptime"`
	AvgProcTime float64 `json:"avgProcTime"`
	Timestamp   int64   `json:"timestamp"`
}

type FramerStats struct {
	Name      string `json:"name"`
	Video     string `json:"video"`
	FPS       int    `json:"fps"`
	Frames    int    `json:"frames"`
	Errors    int    `json:"errors"`
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

type SessionStats struct {
	ID        string `json:"id"`     // Session ID
	Video     string `json:"video"`  // Video name
	Frames    int    `json:"frames"` // Frames ticked so far
	Uptime    int64  `json:"uptime"` // Uptime of the playback session
	Timestamp int64  `json:"timestamp"`
}

// PipelineSummary describes the simulated hot path over one run.
type PipelineSummary struct {
	Resolution      string  `json:"inputResolution"`
	FPS             float64 `json:"fps"`
	FramesProcessed int     `json:"framesProcessed"`
	LatencyP50MS    float64 `json:"latencyP50Ms"`
	LatencyP95MS    float64 `json:"latencyP95Ms"`
	LatencyP99MS    float64 `json:"latencyP99Ms"`
	AvgLatencyMS    float64 `json:"avgLatencyMs"`
	MaxLatencyMS    float64 `json:"maxLatencyMs"`
}

// DetectionSummary folds per-frame defect counts into run totals.
type DetectionSummary struct {
	DefectsDetected int     `json:"defectsDetected"`
	HighSeverity    int     `json:"highSeverity"`
	AvgConfidence   float64 `json:"avgConfidence"`
}

// ROISummary carries the fixed sales figures quoted in every demo export.
// These are constants, not computed values.
type ROISummary struct {
	BandwidthReductionPct float64 `json:"bandwidthReductionPct"`
	CompressionRatio      float64 `json:"compressionRatio"`
	MonthlyCostPerMbps    float64 `json:"monthlyCostPerMbps"`
	CostPerDroneMonth     float64 `json:"costPerDroneMonth"`
}

const (
	ROIBandwidthReductionPct = 94.0
	ROICompressionRatio      = 0.062
	ROIMonthlyCostPerMbps    = 200.0
	ROICostPerDroneMonth     = 500.0
)

func FixedROISummary() ROISummary {
	return ROISummary{
		BandwidthReductionPct: ROIBandwidthReductionPct,
		CompressionRatio:      ROICompressionRatio,
		MonthlyCostPerMbps:    ROIMonthlyCostPerMbps,
		CostPerDroneMonth:     ROICostPerDroneMonth,
	}
}

// RunSummary is the exportable report for one playback session.
type RunSummary struct {
	SessionID string           `json:"sessionId"`
	Video     string           `json:"video"`
	Timestamp string           `json:"timestamp"`
	Pipeline  PipelineSummary  `json:"processingPipeline"`
	Detection DetectionSummary `json:"crackDetection"`
	ROI       ROISummary       `json:"roi"`
}

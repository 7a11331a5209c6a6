package export

import "github.com/aurasense/sfsvc-demo/model"

// FrameRow is one CSV line of a per-frame export.
type FrameRow struct {
	FrameIndex    int
	Defects       int
	HighSeverity  int
	AvgConfidence float64
	LatencyMS     float64
}

type IService interface {
	WriteSummaryJSON(summary model.RunSummary) (string, error)
	WriteFramesCSV(videoName string, rows []FrameRow) (string, error)
}

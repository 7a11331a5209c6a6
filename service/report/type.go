package report

import "github.com/aurasense/sfsvc-demo/model"

// Stats summarizes what a generated report contains.
type Stats struct {
	FramePairs   int
	Defects      int
	HighSeverity int
	OutputPath   string
}

type IService interface {
	Build(video model.Video, outputPath, recipient string) (Stats, error)
}

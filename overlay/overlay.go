// Package overlay draws synthetic detections onto frame buffers: severity
// colored defect boxes with labels, plus an optional decorative spike
// layer. Drawing is purely additive and never feeds back into the defect
// data model.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
)

var severityColors = map[model.Severity]color.RGBA{
	model.SeverityHigh:   {R: 255, G: 0, B: 0},
	model.SeverityMedium: {R: 255, G: 165, B: 0},
	model.SeverityLow:    {R: 0, G: 255, B: 0},
}

var (
	spikeBackgroundColor = color.RGBA{R: 200, G: 200, B: 0}
	spikeClusterColor    = color.RGBA{R: 255, G: 255, B: 0}
	spikeLinkColor       = color.RGBA{R: 220, G: 220, B: 0}
	statusColor          = color.RGBA{R: 0, G: 255, B: 0}
)

const (
	labelOffsetPx = 8
	barHeightPx   = 8
)

// DrawDefects draws each defect box with its severity color and a
// "Severity NN%" label above the box. High severity gets a thicker box.
func DrawDefects(mat *gocv.Mat, defects []model.DefectRecord) {
	for _, d := range defects {
		clr := severityColors[d.Severity]
		thickness := 2
		if d.Severity == model.SeverityHigh {
			thickness = 3
		}

		gocv.Rectangle(mat, d.Rect(), clr, thickness)
		gocv.PutText(mat,
			fmt.Sprintf("%s %.0f%%", d.Severity, d.Confidence*100),
			image.Pt(d.X1, d.Y1-labelOffsetPx),
			gocv.FontHersheySimplex, 0.6, clr, 2)
	}
}

// DrawSpikes renders a spike plan: background scatter, per-defect
// clusters with their connecting segments, and the bottom activity bar.
func DrawSpikes(mat *gocv.Mat, plan SpikePlan) {
	for _, pt := range plan.Background {
		gocv.Circle(mat, pt, 2, spikeBackgroundColor, -1)
	}

	for _, cluster := range plan.Clusters {
		for _, pt := range cluster.Points {
			gocv.Circle(mat, pt, 3, spikeClusterColor, -1)
		}
		for _, link := range cluster.Links {
			gocv.Line(mat, link[0], link[1], spikeLinkColor, 1)
		}
	}

	h := mat.Rows()
	w := mat.Cols()
	barColor := color.RGBA{R: uint8(plan.BarIntensity), G: uint8(plan.BarIntensity), B: 0}
	gocv.Rectangle(mat, image.Rect(0, h-barHeightPx, w, h), barColor, -1)
}

// DrawStatus stamps a one-line status banner in the top-left corner, e.g.
// "Det: 3 | Spikes: ON | Frame 42".
func DrawStatus(mat *gocv.Mat, text string) {
	gocv.PutText(mat, text, image.Pt(10, 28), gocv.FontHersheySimplex, 0.6, statusColor, 2)
}

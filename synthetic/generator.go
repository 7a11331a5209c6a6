// Package synthetic manufactures the deterministic fake "detections" the
// demo dashboards and reports are built on. There is no image analysis
// anywhere in here: every value comes from a pseudo-random source seeded
// by a fixed affine function of the frame index, so the same frame always
// yields the same defects across reruns.
package synthetic

import (
	"math/rand"

	"github.com/aurasense/sfsvc-demo/model"
)

// Seeding rules. Fixed so that outputs are reproducible across runs and
// across the dashboard/report/summary surfaces.
const (
	defectSeedMul = 7
	defectSeedAdd = 31
)

// Margins keep generated boxes on-screen for the box size ranges below.
const (
	marginLeft   = 50
	marginTop    = 50
	marginRight  = 220
	marginBottom = 170

	boxWidthMin  = 60
	boxWidthMax  = 200
	boxHeightMin = 30
	boxHeightMax = 100

	confidenceMin = 0.80
	confidenceMax = 0.99

	maxCandidates = 5
)

var severities = []model.Severity{
	model.SeverityLow,
	model.SeverityMedium,
	model.SeverityHigh,
}

// Generate returns the synthetic defects for one frame. It is a pure
// function of its inputs: the internal source is seeded with
// frameIndex*7+31, candidate count is uniform in [0,5], and every
// candidate draws all of its fields before the threshold filter runs, so
// the draw stream never depends on the threshold. A candidate is kept
// only when its confidence is at or above threshold. The returned slice
// may be empty but Generate never fails for valid input.
func Generate(width, height, frameIndex int, threshold float64) []model.DefectRecord {
	rng := rand.New(rand.NewSource(int64(frameIndex)*defectSeedMul + defectSeedAdd))

	defects := []model.DefectRecord{}
	n := rng.Intn(maxCandidates + 1)
	for i := 0; i < n; i++ {
		x1 := intBetween(rng, marginLeft, maxInt(marginLeft+1, width-marginRight))
		y1 := intBetween(rng, marginTop, maxInt(marginTop+1, height-marginBottom))
		bw := intBetween(rng, boxWidthMin, boxWidthMax)
		bh := intBetween(rng, boxHeightMin, boxHeightMax)
		sev := severities[rng.Intn(len(severities))]
		conf := confidenceMin + rng.Float64()*(confidenceMax-confidenceMin)

		if conf < threshold {
			continue
		}

		defects = append(defects, model.DefectRecord{
			X1:         x1,
			Y1:         y1,
			X2:         x1 + bw,
			Y2:         y1 + bh,
			Severity:   sev,
			Confidence: conf,
		})
	}

	return defects
}

// intBetween draws uniformly from [lo, hi] inclusive.
func intBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

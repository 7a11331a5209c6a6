package overlay

import (
	"image"
	"math/rand"

	"github.com/aurasense/sfsvc-demo/model"
)

// Spike scatter seeding. A different affine line from the defect
// generator so the decorative stream is independent of the defect stream
// while staying reproducible per frame.
const (
	spikeSeedMul = 13
	spikeSeedAdd = 97
)

const (
	backgroundMin = 80
	backgroundMax = 150

	clusterMin = 40
	clusterMax = 80

	// Consecutive cluster points closer than this on the x axis get a
	// connecting segment.
	linkDistancePx = 60

	barIntensityStep = 50
	barIntensityMax  = 255
)

// SpikeCluster is the scatter generated around one defect center.
type SpikeCluster struct {
	Points []image.Point
	Links  [][2]image.Point
}

// SpikePlan is the full decorative layer for one frame: a sparse uniform
// background scatter, one cluster per defect, and the intensity of the
// bottom activity bar. It carries no semantic data.
type SpikePlan struct {
	Background   []image.Point
	Clusters     []SpikeCluster
	BarIntensity int
}

// PlanSpikes computes the spike layer geometry for one frame. Seeded with
// frameIndex*13+97, so the same frame and defect set always yields the
// same scatter. All points are clamped into [0,width)x[0,height).
func PlanSpikes(width, height, frameIndex int, defects []model.DefectRecord) SpikePlan {
	rng := rand.New(rand.NewSource(int64(frameIndex)*spikeSeedMul + spikeSeedAdd))

	plan := SpikePlan{
		BarIntensity: minInt(len(defects)*barIntensityStep, barIntensityMax),
	}

	n := intBetween(rng, backgroundMin, backgroundMax)
	for i := 0; i < n; i++ {
		plan.Background = append(plan.Background, image.Pt(rng.Intn(width), rng.Intn(height)))
	}

	for _, d := range defects {
		cx, cy := d.Center()
		sx, sy := d.X2-d.X1, d.Y2-d.Y1

		cluster := SpikeCluster{}
		count := intBetween(rng, clusterMin, clusterMax)
		for i := 0; i < count; i++ {
			px := clamp(cx+intBetween(rng, -sx, sx), 0, width-1)
			py := clamp(cy+intBetween(rng, -sy, sy), 0, height-1)
			cluster.Points = append(cluster.Points, image.Pt(px, py))
		}

		for i := 0; i+1 < len(cluster.Points); i++ {
			a, b := cluster.Points[i], cluster.Points[i+1]
			if absInt(a.X-b.X) < linkDistancePx {
				cluster.Links = append(cluster.Links, [2]image.Point{a, b})
			}
		}

		plan.Clusters = append(plan.Clusters, cluster)
	}

	return plan
}

func intBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/synthetic"
)

func defectsForFrame(t *testing.T, fidx int) []model.DefectRecord {
	t.Helper()
	return synthetic.Generate(1280, 720, fidx, 0.0)
}

func TestPlanSpikesDeterministic(t *testing.T) {
	for fidx := 0; fidx < 100; fidx++ {
		defects := defectsForFrame(t, fidx)
		require.Equal(t,
			PlanSpikes(1280, 720, fidx, defects),
			PlanSpikes(1280, 720, fidx, defects),
			"frame %d", fidx)
	}
}

func TestPlanSpikesBackgroundCount(t *testing.T) {
	for fidx := 0; fidx < 200; fidx++ {
		plan := PlanSpikes(1280, 720, fidx, nil)
		require.GreaterOrEqual(t, len(plan.Background), backgroundMin)
		require.LessOrEqual(t, len(plan.Background), backgroundMax)
	}
}

func TestPlanSpikesClusters(t *testing.T) {
	for fidx := 0; fidx < 200; fidx++ {
		defects := defectsForFrame(t, fidx)
		plan := PlanSpikes(1280, 720, fidx, defects)

		require.Len(t, plan.Clusters, len(defects))
		for _, cluster := range plan.Clusters {
			require.GreaterOrEqual(t, len(cluster.Points), clusterMin)
			require.LessOrEqual(t, len(cluster.Points), clusterMax)
		}
	}
}

func TestPlanSpikesPointsClamped(t *testing.T) {
	const w, h = 640, 360
	for fidx := 0; fidx < 200; fidx++ {
		defects := synthetic.Generate(w, h, fidx, 0.0)
		plan := PlanSpikes(w, h, fidx, defects)

		for _, pt := range plan.Background {
			require.GreaterOrEqual(t, pt.X, 0)
			require.Less(t, pt.X, w)
			require.GreaterOrEqual(t, pt.Y, 0)
			require.Less(t, pt.Y, h)
		}
		for _, cluster := range plan.Clusters {
			for _, pt := range cluster.Points {
				require.GreaterOrEqual(t, pt.X, 0)
				require.Less(t, pt.X, w)
				require.GreaterOrEqual(t, pt.Y, 0)
				require.Less(t, pt.Y, h)
			}
		}
	}
}

func TestPlanSpikesLinkRule(t *testing.T) {
	for fidx := 0; fidx < 100; fidx++ {
		defects := defectsForFrame(t, fidx)
		plan := PlanSpikes(1280, 720, fidx, defects)

		for ci, cluster := range plan.Clusters {
			// Links only exist between consecutive points within the x
			// distance threshold; recompute and compare.
			expected := 0
			for i := 0; i+1 < len(cluster.Points); i++ {
				if absInt(cluster.Points[i].X-cluster.Points[i+1].X) < linkDistancePx {
					expected++
				}
			}
			require.Len(t, cluster.Links, expected, "frame %d cluster %d", fidx, ci)

			for _, link := range cluster.Links {
				require.Less(t, absInt(link[0].X-link[1].X), linkDistancePx)
			}
		}
	}
}

func TestPlanSpikesBarIntensity(t *testing.T) {
	mk := func(n int) []model.DefectRecord {
		defects := make([]model.DefectRecord, n)
		for i := range defects {
			defects[i] = model.DefectRecord{X1: 100, Y1: 100, X2: 200, Y2: 150,
				Severity: model.SeverityLow, Confidence: 0.9}
		}
		return defects
	}

	require.Equal(t, 0, PlanSpikes(1280, 720, 1, nil).BarIntensity)
	require.Equal(t, 100, PlanSpikes(1280, 720, 1, mk(2)).BarIntensity)
	require.Equal(t, 250, PlanSpikes(1280, 720, 1, mk(5)).BarIntensity)
	// Saturates at 255
	require.Equal(t, 255, PlanSpikes(1280, 720, 1, mk(9)).BarIntensity)
}

func TestPlanSpikesEmptyDefects(t *testing.T) {
	plan := PlanSpikes(1280, 720, 7, nil)
	require.Empty(t, plan.Clusters)
	require.NotEmpty(t, plan.Background)
	require.Zero(t, plan.BarIntensity)
}

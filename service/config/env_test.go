package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	svc := NewEnv()

	require.Equal(t, 5, svc.GetModeMaxShutdownTime())
	require.Equal(t, "./settings", svc.GetInputFolder())
	require.Equal(t, "./settings/videos.json", svc.GetVideosInputFile())
	require.Equal(t, "./recordings", svc.GetRecordingsFolder())
	require.Equal(t, "./exports", svc.GetExportsFolder())
	require.Equal(t, 8080, svc.GetDashboardPort())
	require.Equal(t, 30, svc.GetSessionHeartbeatTimeout())
	require.Equal(t, 5, svc.GetAlertCooldownPeriod())
	require.Equal(t, 0.80, svc.GetConfidenceThreshold())
	require.True(t, svc.GetSpikesEnabled())
	require.Equal(t, 30, svc.GetSummaryFrames())
	require.Equal(t, 92, svc.GetJPEGQuality())
	require.Equal(t, "Prospect", svc.GetReportRecipient())
	require.Equal(t, "./exports/AuraSense_SFSVC_Demo_Report.pdf", svc.GetReportOutputFile())
}

func TestOverrides(t *testing.T) {
	t.Setenv("INPUT_FOLDER", "/tmp/in")
	t.Setenv("DASHBOARD_PORT", "9090")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.92")
	t.Setenv("SPIKES_ENABLED", "false")
	t.Setenv("REPORT_RECIPIENT", "Acme Bridgeworks")

	svc := NewEnv()
	require.Equal(t, "/tmp/in", svc.GetInputFolder())
	require.Equal(t, "/tmp/in/videos.json", svc.GetVideosInputFile())
	require.Equal(t, 9090, svc.GetDashboardPort())
	require.Equal(t, 0.92, svc.GetConfidenceThreshold())
	require.False(t, svc.GetSpikesEnabled())
	require.Equal(t, "Acme Bridgeworks", svc.GetReportRecipient())
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("DASHBOARD_PORT", "not-a-number")
	t.Setenv("CONFIDENCE_THRESHOLD", "high")
	t.Setenv("SPIKES_ENABLED", "maybe")

	svc := NewEnv()
	require.Equal(t, 8080, svc.GetDashboardPort())
	require.Equal(t, 0.80, svc.GetConfidenceThreshold())
	require.True(t, svc.GetSpikesEnabled())
}

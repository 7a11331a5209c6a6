package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults match the figures the demo has always shipped with.
const (
	defaultShutdownTime     = 5
	defaultInputFolder      = "./settings"
	defaultRecordingsFolder = "./recordings"
	defaultExportsFolder    = "./exports"
	defaultDashboardPort    = 8080
	defaultHeartbeat        = 30
	defaultAlertCooldown    = 5
	defaultThreshold        = 0.80
	defaultSummaryFrames    = 30
	defaultJPEGQuality      = 92
)

type envService struct {
}

func NewEnv() IService {
	return &envService{}
}

func (svc *envService) GetModeMaxShutdownTime() int {
	return getInt("MODE_MAX_SHUTDOWN_TIME", defaultShutdownTime)
}

func (svc *envService) GetInputFolder() string {
	return getString("INPUT_FOLDER", defaultInputFolder)
}

func (svc *envService) GetVideosInputFile() string {
	return getString("VIDEOS_INPUT_FILE", fmt.Sprintf("%s/videos.json", svc.GetInputFolder()))
}

func (svc *envService) GetRecordingsFolder() string {
	return getString("RECORDINGS_FOLDER", defaultRecordingsFolder)
}

func (svc *envService) GetExportsFolder() string {
	return getString("EXPORTS_FOLDER", defaultExportsFolder)
}

func (svc *envService) GetDashboardPort() int {
	return getInt("DASHBOARD_PORT", defaultDashboardPort)
}

func (svc *envService) GetSessionHeartbeatTimeout() int {
	return getInt("SESSION_HEARTBEAT_TIMEOUT", defaultHeartbeat)
}

func (svc *envService) GetAlertCooldownPeriod() int {
	return getInt("ALERT_COOLDOWN_PERIOD", defaultAlertCooldown)
}

func (svc *envService) GetConfidenceThreshold() float64 {
	return getFloat("CONFIDENCE_THRESHOLD", defaultThreshold)
}

func (svc *envService) GetSpikesEnabled() bool {
	return getBool("SPIKES_ENABLED", true)
}

func (svc *envService) GetSummaryFrames() int {
	return getInt("SUMMARY_FRAMES", defaultSummaryFrames)
}

func (svc *envService) GetJPEGQuality() int {
	return getInt("JPEG_QUALITY", defaultJPEGQuality)
}

func (svc *envService) GetReportRecipient() string {
	return getString("REPORT_RECIPIENT", "Prospect")
}

func (svc *envService) GetReportOutputFile() string {
	return getString("REPORT_OUTPUT_FILE",
		fmt.Sprintf("%s/AuraSense_SFSVC_Demo_Report.pdf", svc.GetExportsFolder()))
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

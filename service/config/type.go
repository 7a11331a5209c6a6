package config

type IService interface {
	GetModeMaxShutdownTime() int
	GetInputFolder() string
	GetVideosInputFile() string
	GetRecordingsFolder() string
	GetExportsFolder() string
	GetDashboardPort() int
	GetSessionHeartbeatTimeout() int
	GetAlertCooldownPeriod() int
	GetConfidenceThreshold() float64
	GetSpikesEnabled() bool
	GetSummaryFrames() int
	GetJPEGQuality() int
	GetReportRecipient() string
	GetReportOutputFile() string
}

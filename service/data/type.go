package data

import "github.com/aurasense/sfsvc-demo/model"

type IService interface {
	RetrieveVideos() ([]model.Video, error)
	RetrieveVideoByID(id string) (model.Video, error)

	NewError(err interface{}) error
	NewRunSummary(summary model.RunSummary) error
	RetrieveRunSummaries() ([]model.RunSummary, error)
	NewFramerStats(stats model.FramerStats) error
	NewStreamerStats(stats model.StreamerStats) error
	NewAlerterStats(stats model.AlerterStats) error
	NewSessionStats(stats model.SessionStats) error
}

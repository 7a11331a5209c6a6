package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/lgr"
)

// Agent runs one demo playback: it wires the framer for the given video
// into the supplied streamers and then heartbeats until cancelled.
func Agent(canxCtx context.Context,
	svcs ServicesFactory,
	errorStream chan interface{},
	statsStream chan interface{},
	alertStream chan AlertData,
	video model.Video,
	streamers []Streamer) error {
	agentID := uuid.NewString()
	lgr.Logger.Info(
		"agent starting....",
		slog.String("agentID", agentID),
		slog.String("video", video.Name),
		slog.String("framerType", video.FramerType),
		slog.String("path", video.Path),
	)

	var agentStartTime = time.Now().Unix()

	// Setup the stream channels
	streamChannels := []chan FrameData{}
	for _, streamer := range streamers {
		streamChannels = append(streamChannels, streamer(canxCtx, svcs, video, errorStream, statsStream, alertStream))
	}

	// Start the frame capturer
	framer(canxCtx, svcs, video, errorStream, statsStream, streamChannels)

	// Monitor cancellations and report liveness
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"agent context cancelled",
			)
			return nil

		case <-time.After(time.Duration(svcs.CfgSvc.GetSessionHeartbeatTimeout()) * time.Second):
			statsStream <- model.SessionStats{
				ID:     agentID,
				Video:  video.Name,
				Uptime: time.Now().Unix() - agentStartTime,
			}
		}
	}
}

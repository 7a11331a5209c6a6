package mode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aurasense/sfsvc-demo/pipeline"
	"github.com/aurasense/sfsvc-demo/service/lgr"
)

// Report generates the side-by-side demo PDF for the first playable
// video and exits. The streamers/alerter arguments exist to satisfy the
// uniform mode signature; report generation is a one-shot job.
func Report(canxCtx context.Context, svcs pipeline.ServicesFactory, _ []pipeline.Streamer, _ pipeline.Alerter) error {
	videos, err := svcs.DataSvc.RetrieveVideos()
	if err != nil {
		return fmt.Errorf("error retrieving videos: %w", err)
	}

	for _, video := range videos {
		if video.Excluded || video.FramerType == "synthetic" {
			continue
		}
		if _, err := os.Stat(video.Path); err != nil {
			lgr.Logger.Warn(
				"video file missing, skipped",
				slog.String("video", video.Name),
				slog.String("path", video.Path),
			)
			continue
		}

		output := svcs.CfgSvc.GetReportOutputFile()
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return err
		}

		stats, err := svcs.ReportSvc.Build(video, output, svcs.CfgSvc.GetReportRecipient())
		if err != nil {
			return fmt.Errorf("error building report for %s: %w", video.Name, err)
		}

		lgr.Logger.Info(
			"report generated",
			slog.String("video", video.Name),
			slog.String("output", stats.OutputPath),
			slog.Int("framePairs", stats.FramePairs),
			slog.Int("defects", stats.Defects),
			slog.Int("highSeverity", stats.HighSeverity),
		)
		return nil
	}

	return fmt.Errorf("no playable video files configured in %s", svcs.CfgSvc.GetVideosInputFile())
}

package mode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/pipeline"
	"github.com/aurasense/sfsvc-demo/service/export"
	"github.com/aurasense/sfsvc-demo/service/lgr"
	"github.com/aurasense/sfsvc-demo/session"
)

// Headless runs replay at the canonical demo resolution.
const (
	summaryWidth  = 1280
	summaryHeight = 720
	summaryFPS    = 30
)

// Summary replays the configured number of frames headlessly (no video,
// no rendering), then exports the run summary as JSON and the per-frame
// rows as CSV and persists the summary.
func Summary(canxCtx context.Context, svcs pipeline.ServicesFactory, _ []pipeline.Streamer, _ pipeline.Alerter) error {
	videoName := "headless"
	threshold := svcs.CfgSvc.GetConfidenceThreshold()
	if videos, err := svcs.DataSvc.RetrieveVideos(); err == nil {
		for _, v := range videos {
			if !v.Excluded {
				videoName = v.Name
				threshold = v.Threshold
				break
			}
		}
	}

	sess := session.New(session.Options{
		VideoName:     videoName,
		Width:         summaryWidth,
		Height:        summaryHeight,
		SourceFPS:     summaryFPS,
		Threshold:     threshold,
		SpikesEnabled: svcs.CfgSvc.GetSpikesEnabled(),
	})

	frames := svcs.CfgSvc.GetSummaryFrames()
	rows := make([]export.FrameRow, 0, frames)

	for i := 0; i < frames; i++ {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info("summary context cancelled")
			return nil
		default:
		}

		result := sess.Step()

		high := 0
		avgConf := 0.0
		for _, d := range result.Defects {
			if d.Severity == model.SeverityHigh {
				high++
			}
			avgConf += d.Confidence
		}
		if len(result.Defects) > 0 {
			avgConf /= float64(len(result.Defects))
		}

		rows = append(rows, export.FrameRow{
			FrameIndex:    result.FrameIndex,
			Defects:       len(result.Defects),
			HighSeverity:  high,
			AvgConfidence: avgConf,
			LatencyMS:     result.Latency.TotalMS(),
		})
	}

	summary := sess.Summary()

	jsonPath, err := svcs.ExportSvc.WriteSummaryJSON(summary)
	if err != nil {
		return fmt.Errorf("error writing summary json: %w", err)
	}

	csvPath, err := svcs.ExportSvc.WriteFramesCSV(videoName, rows)
	if err != nil {
		return fmt.Errorf("error writing frames csv: %w", err)
	}

	if err := svcs.DataSvc.NewRunSummary(summary); err != nil {
		return fmt.Errorf("error persisting run summary: %w", err)
	}

	lgr.Logger.Info(
		"summary run complete",
		slog.Int("frames", frames),
		slog.Int("defects", summary.Detection.DefectsDetected),
		slog.Int("highSeverity", summary.Detection.HighSeverity),
		slog.String("json", jsonPath),
		slog.String("csv", csvPath),
	)

	return nil
}

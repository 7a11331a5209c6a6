package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/lgr"
)

// StillAlerter captures the annotated frame of every high-severity alert
// as a JPEG in the recordings folder and logs the alert payload.
func StillAlerter(canx context.Context, svcs ServicesFactory, _ chan interface{}, statsStream chan interface{}) chan AlertData {
	in := make(chan AlertData, 100)

	go func() {
		defer close(in)

		alerts := 0
		errors := 0
		beginTime := time.Now().Unix()

		defer func() {
			statsStream <- model.AlerterStats{
				Name:   "stillAlerter",
				Alerts: alerts,
				Errors: errors,
				Uptime: time.Now().Unix() - beginTime,
			}
		}()

		if err := os.MkdirAll(svcs.CfgSvc.GetRecordingsFolder(), 0755); err != nil {
			lgr.Logger.Error("error creating recordings folder", slog.Any("error", err))
			errors++
		}

		for {
			select {
			case <-canx.Done():
				lgr.Logger.Info("alerter context cancelled")
				return

			case alert := <-in:
				filename := fmt.Sprintf("%s/%s_alerted_frame_%d.jpg",
					svcs.CfgSvc.GetRecordingsFolder(), alert.Video.ID, time.Now().Unix())
				if ok := gocv.IMWrite(filename, alert.Mat); !ok {
					errors++
					lgr.Logger.Error("error writing alerted frame", slog.String("file", filename))
				}
				alert.Mat.Close()

				alerts++
				lgr.Logger.Info(
					"high severity defect alert",
					slog.String("video", alert.Video.Name),
					slog.Int("frameIndex", alert.FrameIndex),
					slog.String("severity", string(alert.Defect.Severity)),
					slog.Float64("confidence", alert.Defect.Confidence),
					slog.Time("timestamp", alert.Timestamp),
				)

				payload := map[string]interface{}{
					"source":     alert.Video.Name,
					"frameIndex": alert.FrameIndex,
					"stillURL":   filename,
					"severity":   alert.Defect.Severity,
					"confidence": alert.Defect.Confidence,
					"timestamp":  alert.Timestamp.Format(time.RFC3339),
				}
				lgr.Logger.Info(
					"alert payload",
					slog.Any("payload", payload),
				)
			}
		}
	}()

	return in
}

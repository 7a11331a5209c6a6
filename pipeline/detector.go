package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/natefinch/lumberjack"
	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/lgr"
	"github.com/aurasense/sfsvc-demo/session"
)

// Rotating log of everything the "detector" claims to have seen, one JSON
// entry per frame with defects.
var detectionLogger = &lumberjack.Logger{
	Filename:   "detections.log",
	MaxSize:    10, // MB
	MaxBackups: 5,
	MaxAge:     7,    // days
	Compress:   true, // compress old logs
}

// TickPayload is what the dashboard receives per frame over the hub.
type TickPayload struct {
	Video   string             `json:"video"`
	Frame   string             `json:"frame"` // base64 JPEG
	Result  session.TickResult `json:"result"`
	Summary model.RunSummary   `json:"summary"`
}

// SyntheticDetector is the streamer driving the demo loop: one session
// tick per frame (generate -> overlay -> aggregate), JPEG-encode the
// annotated frame, broadcast it to dashboard clients, and raise an alert
// for high-severity defects. Runs on a single worker because ticks must
// stay in frame order.
func SyntheticDetector(canx context.Context, svcs ServicesFactory, video model.Video, errorStream chan interface{}, statsStream chan interface{}, alertStream chan AlertData) chan FrameData {
	in := make(chan FrameData, 100)

	go func() {
		defer close(in)

		lgr.Logger.Info(
			"synthetic detector initialized...",
			slog.String("video", video.Name),
			slog.Float64("threshold", video.Threshold),
			slog.Bool("spikes", video.SpikesEnabled),
		)

		var sess *session.Session
		var lastAlertTime time.Time
		cooldown := time.Duration(svcs.CfgSvc.GetAlertCooldownPeriod()) * time.Second

		proc := func(frame FrameData) {
			defer frame.Mat.Close()

			// The session is sized from the first frame we see
			if sess == nil {
				fps := frame.FPS
				if fps <= 0 {
					fps = syntheticFramerFPS
				}
				sess = session.New(session.Options{
					VideoName:     video.Name,
					Width:         frame.Mat.Cols(),
					Height:        frame.Mat.Rows(),
					SourceFPS:     fps,
					Threshold:     video.Threshold,
					SpikesEnabled: video.SpikesEnabled,
				})
			}

			_, span := svcs.Tracer.Start(canx, "session.tick")
			result := sess.Tick(&frame.Mat)
			span.End()

			if len(result.Defects) > 0 {
				logDetections(video.Name, result)
			}

			if svcs.HubSvc != nil {
				buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame.Mat,
					[]int{gocv.IMWriteJpegQuality, svcs.CfgSvc.GetJPEGQuality()})
				if err != nil {
					errorStream <- model.GenError("synthetic_detector",
						err,
						map[string]interface{}{"frame": result.FrameIndex},
						"error encoding annotated frame")
					return
				}

				svcs.HubSvc.Broadcast("tick", TickPayload{
					Video:   video.Name,
					Frame:   base64.StdEncoding.EncodeToString(buf.GetBytes()),
					Result:  result,
					Summary: sess.Summary(),
				})
				buf.Close()
			}

			for _, d := range result.Defects {
				if d.Severity != model.SeverityHigh {
					continue
				}
				if time.Since(lastAlertTime) < cooldown {
					continue
				}
				lastAlertTime = time.Now()

				select {
				case alertStream <- AlertData{
					Mat:        frame.Mat.Clone(),
					Video:      video,
					Defect:     d,
					FrameIndex: result.FrameIndex,
					Timestamp:  time.Now(),
				}:
				default:
					lgr.Logger.Warn("alertStream full, dropping alert")
				}
			}
		}

		go func(in chan FrameData) {
			frames := 0
			beginTime := time.Now().Unix()
			errors := 0

			var totalProcTime time.Duration

			defer func() {
				uptime := time.Now().Unix() - beginTime
				fps := 1
				if uptime > 0 {
					fps = int(float64(frames) / float64(uptime))
				}

				var avgProcTime float64
				if frames > 0 {
					avgProcTime = totalProcTime.Seconds() / float64(frames)
				}

				statsStream <- model.StreamerStats{
					Name:        "syntheticDetector",
					Worker:      0,
					Video:       video.Name,
					Frames:      frames,
					Errors:      errors,
					Uptime:      uptime,
					FPS:         fps,
					AvgProcTime: avgProcTime,
				}

				if sess != nil {
					statsStream <- sess.Stats()
					// Persist the final run summary through the mode's sink
					statsStream <- sess.Summary()
				}
			}()

			for f := range in {
				select {
				case <-canx.Done():
					lgr.Logger.Info("synthetic detector worker context cancelled")
					return
				default:
					start := time.Now()
					proc(f)
					frames++
					totalProcTime += time.Since(start)
				}
			}
		}(in)

		// Wait until cancelled
		<-canx.Done()
		// Give some time to the framer to recognize the context is cancelled
		time.Sleep(waitBeforeCancel)
		lgr.Logger.Info("synthetic detector context cancelled")
	}()

	return in
}

func logDetections(videoName string, result session.TickResult) {
	entry := map[string]interface{}{
		"time":       time.Now().Format(time.RFC3339),
		"video":      videoName,
		"frameIndex": result.FrameIndex,
		"detections": result.Defects,
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Println("Error marshaling detections:", err)
		return
	}

	if _, err := detectionLogger.Write(append(jsonData, '\n')); err != nil {
		fmt.Println("Error writing to detection log file:", err)
	}
}

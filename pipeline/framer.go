package pipeline

import (
	"context"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/lgr"
)

const syntheticFramerFPS = 30

func framer(canxCtx context.Context, svcs ServicesFactory, video model.Video, errorStream chan interface{}, statsStream chan interface{}, streamChannels []chan FrameData) {
	if video.FramerType == "synthetic" {
		go syntheticFramer(canxCtx, svcs, video, errorStream, statsStream, streamChannels)
		return
	}

	go fileFramer(canxCtx, svcs, video, errorStream, statsStream, streamChannels)
}

// fileFramer reads the demo video sequentially, paced to the source FPS.
// A failed read mid-playback ends the run silently; there is no retry.
func fileFramer(canxCtx context.Context, svcs ServicesFactory, video model.Video, errorStream chan interface{}, statsStream chan interface{}, streamChannels []chan FrameData) {
	capture, err := gocv.OpenVideoCapture(video.Path)
	if err != nil {
		errorStream <- model.GenError("file_framer",
			err,
			map[string]interface{}{"path": video.Path},
			"error opening video file")
		return
	}
	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = syntheticFramerFPS
	}
	total := int(capture.Get(gocv.VideoCaptureFrameCount))

	var startTime = time.Now().Unix()
	var frames = 0
	var errors = 0

	defer func() {
		uptime := time.Now().Unix() - startTime
		if uptime == 0 {
			uptime = 1
		}
		statsStream <- model.FramerStats{
			Name:   "fileFramer",
			Video:  video.Name,
			Frames: frames,
			Errors: errors,
			Uptime: uptime,
			FPS:    int(float64(frames) / float64(uptime)),
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info("fileFramer context cancelled")
			return

		case <-ticker.C:
			img := gocv.NewMat()
			if ok := capture.Read(&img); !ok || img.Empty() {
				// End of stream or decode failure: playback just stops
				img.Close()
				lgr.Logger.Info(
					"fileFramer playback ended",
					slog.String("video", video.Name),
					slog.Int("frames", frames),
				)
				return
			}

			for _, streamChan := range streamChannels {
				select {
				case <-canxCtx.Done():
					lgr.Logger.Info("fileFramer context cancelled while sending")
					img.Close()
					return
				case streamChan <- FrameData{Mat: img.Clone(), Index: frames, Total: total, FPS: fps, Timestamp: time.Now()}:
				}
			}

			frames++
			img.Close()
		}
	}
}

// syntheticFramer fabricates blank frames so the dashboard can run with
// no video file at all. Everything drawn on top is synthetic anyway.
func syntheticFramer(canxCtx context.Context, svcs ServicesFactory, video model.Video, _ chan interface{}, statsStream chan interface{}, streamChannels []chan FrameData) {
	var startTime = time.Now().Unix()
	var frames = 0

	defer func() {
		uptime := time.Now().Unix() - startTime
		if uptime == 0 {
			uptime = 1
		}
		statsStream <- model.FramerStats{
			Name:   "syntheticFramer",
			Video:  video.Name,
			Frames: frames,
			Uptime: uptime,
			FPS:    int(float64(frames) / float64(uptime)),
		}
	}()

	ticker := time.NewTicker(time.Second / syntheticFramerFPS)
	defer ticker.Stop()

	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info("syntheticFramer context cancelled")
			return

		case <-ticker.C:
			img := gocv.NewMatWithSize(720, 1280, gocv.MatTypeCV8UC3)
			for _, streamChan := range streamChannels {
				select {
				case <-canxCtx.Done():
					lgr.Logger.Info("syntheticFramer context cancelled while sending")
					img.Close()
					return
				case streamChan <- FrameData{Mat: img.Clone(), Index: frames, FPS: syntheticFramerFPS, Timestamp: time.Now()}:
				}
			}

			frames++
			img.Close()
		}
	}
}

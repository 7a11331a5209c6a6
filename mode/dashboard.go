package mode

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/pipeline"
	"github.com/aurasense/sfsvc-demo/service/lgr"
)

//go:embed dashboard.html
var dashboardPage []byte

// Dashboard runs the live demo view: one playback agent per configured
// video, annotated frames and metrics streamed to browsers over
// websockets.
func Dashboard(canxCtx context.Context, svcs pipeline.ServicesFactory, streamers []pipeline.Streamer, alerter pipeline.Alerter) error {
	// Create an error stream
	errorStream := make(chan interface{})
	defer close(errorStream)

	// Create a stats stream
	statsStream := make(chan interface{})
	defer close(statsStream)

	// Create an alerter stream
	alertStream := alerter(canxCtx, svcs, errorStream, statsStream)

	videos, err := svcs.DataSvc.RetrieveVideos()
	if err != nil {
		return fmt.Errorf("error retrieving videos: %w", err)
	}

	started := 0
	for _, video := range videos {
		if video.Excluded {
			continue
		}
		// A missing input file disables that view instead of crashing
		if video.FramerType != "synthetic" {
			if _, err := os.Stat(video.Path); err != nil {
				lgr.Logger.Warn(
					"video file missing, view disabled",
					slog.String("video", video.Name),
					slog.String("path", video.Path),
				)
				continue
			}
		}

		v := video
		go func() {
			err := pipeline.Agent(canxCtx, svcs, errorStream, statsStream, alertStream, v, streamers)
			if err != nil {
				procError(svcs.DataSvc, model.GenError("dashboard",
					err,
					map[string]interface{}{},
					"error starting agent for video: %s",
					v.Name))
			}
		}()
		started++
	}

	if started == 0 {
		return fmt.Errorf("no playable videos configured in %s", svcs.CfgSvc.GetVideosInputFile())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(dashboardPage)
	})
	mux.HandleFunc("/ws", svcs.HubSvc.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/summaries", func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svcs.DataSvc.RetrieveRunSummaries()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", svcs.CfgSvc.GetDashboardPort()),
		Handler: mux,
	}

	serverResult := make(chan error, 1)
	go func() {
		lgr.Logger.Info(
			"dashboard listening",
			slog.Int("port", svcs.CfgSvc.GetDashboardPort()),
		)
		serverResult <- server.ListenAndServe()
	}()

	// Wait for cancellation, server exit, stats or errors
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"dashboard context cancelled",
			)
			shutdownCtx, shutdownFn := context.WithTimeout(context.Background(),
				time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime())*time.Second)
			server.Shutdown(shutdownCtx)
			shutdownFn()
			svcs.HubSvc.Close()
			goto resume

		case err := <-serverResult:
			if err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("dashboard server error: %w", err)
			}
			goto resume

		case s := <-statsStream:
			procStats(svcs.DataSvc, s)

		case e := <-errorStream:
			procError(svcs.DataSvc, e)
		}
	}

	// Wait in a non-blocking way for the shutdown period so the go
	// routines can report their final stats and errors as they exit
resume:
	lgr.Logger.Info(
		"dashboard is waiting for all go routines to exit",
	)

	timer := time.NewTimer(time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime()) * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			lgr.Logger.Info(
				"dashboard shutdown waiting period expired. Exiting now",
				slog.Duration("period", time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime())*time.Second),
			)
			return nil

		case s := <-statsStream:
			procStats(svcs.DataSvc, s)

		case e := <-errorStream:
			procError(svcs.DataSvc, e)
		}
	}
}

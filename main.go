package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
	"go.opentelemetry.io/otel/trace"

	"github.com/aurasense/sfsvc-demo/mode"
	"github.com/aurasense/sfsvc-demo/pipeline"
	"github.com/aurasense/sfsvc-demo/service/config"
	"github.com/aurasense/sfsvc-demo/service/data"
	"github.com/aurasense/sfsvc-demo/service/export"
	"github.com/aurasense/sfsvc-demo/service/hub"
	"github.com/aurasense/sfsvc-demo/service/lgr"
	"github.com/aurasense/sfsvc-demo/service/report"
)

const (
	// WARNING: this has to be bigger than the mode processor shutdown time
	waitOnShutdown = 8 * time.Second
)

var modeProcessors = map[string]mode.Processor{
	"dashboard": mode.Dashboard,
	"report":    mode.Report,
	"summary":   mode.Summary,
}

func main() {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)

	// Hook up a signal handler to cancel the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		lgr.Logger.Info("loading env vars from .env file")
		err := godotenv.Load()
		if err != nil {
			lgr.Logger.Warn("no .env file found, using process env", slog.Any("error", xerrors.New(err.Error())))
		}
	}

	modeType := "dashboard"
	args := os.Args[1:]
	if len(args) > 0 {
		modeType = args[0]
	}

	modeProc, ok := modeProcessors[modeType]
	if !ok {
		lgr.Logger.Error("invalid mode", slog.String("mode", modeType))
		panic("invalid mode")
	}

	color.New(color.FgCyan, color.Bold).Println("AuraSense SFSVC demo toolkit")
	color.Green("mode: %s", modeType)

	// Create the services needed for the mode processor
	// They can be overridden by the mode processor with different implementations
	// Config service
	cfgSvc := config.NewEnv()
	// Data service
	dataSvc := data.NewFilesDB(cfgSvc)
	// Export service
	exportSvc := export.NewFiles(cfgSvc)
	// Report service
	reportSvc := report.NewPDF(cfgSvc)
	// Dashboard hub service
	hubSvc := hub.NewWebsocket()

	svcs := pipeline.ServicesFactory{
		CfgSvc:    cfgSvc,
		DataSvc:   dataSvc,
		ExportSvc: exportSvc,
		ReportSvc: reportSvc,
		HubSvc:    hubSvc,
		Tracer:    trace.NewNoopTracerProvider().Tracer("sfsvc-demo"),
	}

	// Create mode processor result
	modeProcResult := make(chan error)
	defer close(modeProcResult)

	// Decide on streamers
	streamers := []pipeline.Streamer{
		pipeline.SyntheticDetector,
	}

	// Start the mode processor
	go func() {
		modeProcResult <- modeProc(canxCtx, svcs, streamers, pipeline.StillAlerter)
	}()

	// Wait for cancellation, mode proc or error
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"demo pod context cancelled",
			)
			goto resume

		case err := <-modeProcResult:
			if err != nil {
				lgr.Logger.Info(
					"demo pod mode processor exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
			goto resume
		}
	}

	// Wait in a non-blocking way for `waitOnShutdown` for all the go routines to exit
	// This is needed because the go routines may need to report errors as they are exiting
resume:
	// Cancel the context if not already cancelled
	if canxCtx.Err() == nil {
		// Force cancel the context
		canxFn()
	}

	lgr.Logger.Info(
		"demo pod is waiting for all go routines to exit",
	)

	// The only way to exit the main function is to wait for the shutdown
	// duration
	timer := time.NewTimer(waitOnShutdown)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// Timer expired, proceed with shutdown
			lgr.Logger.Info(
				"demo pod shutdown waiting period expired. Exiting now",
				slog.Duration("period", waitOnShutdown),
			)

			return

		case err := <-modeProcResult:
			if err != nil {
				lgr.Logger.Info(
					"demo pod mode processor exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
		}
	}
}

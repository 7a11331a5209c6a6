package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"gocv.io/x/gocv"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/config"
	"github.com/aurasense/sfsvc-demo/service/data"
	"github.com/aurasense/sfsvc-demo/service/export"
	"github.com/aurasense/sfsvc-demo/service/hub"
	"github.com/aurasense/sfsvc-demo/service/report"
)

// Give framers a moment to notice cancellation before their channels go away.
const waitBeforeCancel = 2 * time.Second

type FrameData struct {
	Mat       gocv.Mat
	Index     int
	Total     int
	FPS       float64
	Timestamp time.Time
}

type AlertData struct {
	Mat        gocv.Mat
	Video      model.Video
	Defect     model.DefectRecord
	FrameIndex int
	Timestamp  time.Time
}

// ServicesFactory carries the services a mode processor hands down the
// pipeline. Mode processors may override individual services.
type ServicesFactory struct {
	CfgSvc    config.IService
	DataSvc   data.IService
	ExportSvc export.IService
	ReportSvc report.IService
	HubSvc    hub.IService
	Tracer    trace.Tracer
}

// Signature of streamer function
type Streamer func(canx context.Context, svcs ServicesFactory, video model.Video, errorStream chan interface{}, statsStream chan interface{}, alertStream chan AlertData) chan FrameData

// Signature of alerter function
type Alerter func(canx context.Context, svcs ServicesFactory, errorStream chan interface{}, statsStream chan interface{}) chan AlertData

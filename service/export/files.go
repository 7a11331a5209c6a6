package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aurasense/sfsvc-demo/model"
	"github.com/aurasense/sfsvc-demo/service/config"
)

type filesService struct {
	CfgSvc config.IService
}

func NewFiles(cfgsvc config.IService) IService {
	return &filesService{
		CfgSvc: cfgsvc,
	}
}

// WriteSummaryJSON writes the run summary the same way the dashboard's
// download button always has: pretty-printed JSON, timestamped filename.
func (svc *filesService) WriteSummaryJSON(summary model.RunSummary) (string, error) {
	if err := os.MkdirAll(svc.CfgSvc.GetExportsFolder(), 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/aurasense_demo_%s.json",
		svc.CfgSvc.GetExportsFolder(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// WriteFramesCSV writes one row per processed frame.
func (svc *filesService) WriteFramesCSV(videoName string, rows []FrameRow) (string, error) {
	if err := os.MkdirAll(svc.CfgSvc.GetExportsFolder(), 0755); err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s_frames_%s.csv",
		svc.CfgSvc.GetExportsFolder(), videoName, time.Now().Format("20060102_150405"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"frame_index", "defects", "high_severity", "avg_confidence", "latency_ms"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.FrameIndex),
			strconv.Itoa(row.Defects),
			strconv.Itoa(row.HighSeverity),
			strconv.FormatFloat(row.AvgConfidence, 'f', 4, 64),
			strconv.FormatFloat(row.LatencyMS, 'f', 3, 64),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return path, writer.Error()
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snanayakkara/dictascope/internal/analyzer"
	"github.com/snanayakkara/dictascope/internal/mains"
)

// Data carries everything needed to generate an analysis report.
type Data struct {
	InputPath  string
	Report     *analyzer.Report
	When       time.Time
	Thresholds analyzer.Thresholds // zero value means defaults
}

func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

// Generate writes a plain-text analysis report alongside the input
// clip and returns the report path. The report filename is
// <input>-analysis.log.
func Generate(data Data) (string, error) {
	if data.Report == nil {
		return "", fmt.Errorf("no measurements for %s", data.InputPath)
	}

	th := data.Thresholds
	if th == (analyzer.Thresholds{}) {
		th = analyzer.DefaultThresholds()
	}

	logPath := strings.TrimSuffix(data.InputPath, filepath.Ext(data.InputPath)) + "-analysis.log"

	f, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	writeHeader(f, data)
	writeMeasurements(f, data.Report)
	writeTips(f, data.Report, th)

	return logPath, nil
}

func writeHeader(f *os.File, data Data) {
	fmt.Fprintln(f, "Dictascope Analysis Report")
	fmt.Fprintln(f, "==========================")
	fmt.Fprintf(f, "File: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(f, "Analysed: %s\n", data.When.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(f, "Duration: %s\n", formatDuration(data.Report.DurationSeconds))
	fmt.Fprintf(f, "Quality: %s\n", data.Report.Quality)
	fmt.Fprintln(f, "")
}

func writeMeasurements(f *os.File, rep *analyzer.Report) {
	writeSection(f, "Measurements")

	table := &MetricTable{}
	table.AddMetricRow("Average volume", rep.AvgVolume, 4, "", interpretVolume(rep.AvgVolume))
	table.AddMetricRow("Silence", rep.SilenceDurationSeconds, 1, "s", interpretSilence(silenceRatio(rep)))
	table.AddMetricRow("Estimated SNR", rep.EstimatedSNRdB, 1, "dB", interpretSNR(rep.EstimatedSNRdB))
	table.AddMetricRow("Mains hum", rep.HumLevelDB, 1, "dB", interpretHum(rep.HumLevelDB, rep.MainsHz))
	table.AddMetricRow("File size", float64(rep.FileSizeBytes)/1024, 1, "KB", "")

	fmt.Fprint(f, table.String())
	fmt.Fprintln(f, "")
}

func writeTips(f *os.File, rep *analyzer.Report, th analyzer.Thresholds) {
	tips := GenerateRecordingTips(rep, th)
	if len(tips) == 0 {
		return
	}

	writeSection(f, "Recording Tips")
	for _, tip := range tips {
		fmt.Fprintf(f, "  - %s\n", wrapText(tip.Message, 72, "    "))
	}
	fmt.Fprintln(f, "")
}

func interpretVolume(avg float64) string {
	switch {
	case avg < 0.005:
		return "very quiet"
	case avg < 0.02:
		return "quiet"
	default:
		return "healthy"
	}
}

func interpretSilence(ratio float64) string {
	switch {
	case ratio >= 0.8:
		return "mostly silent"
	case ratio >= 0.5:
		return "long pauses"
	default:
		return "normal"
	}
}

func interpretSNR(snr float64) string {
	switch {
	case snr < 10:
		return "noisy"
	case snr < 20:
		return "acceptable"
	default:
		return "clean"
	}
}

func interpretHum(level float64, freq mains.Hz) string {
	if level >= humAudibleDB {
		return fmt.Sprintf("%s hum present", freq)
	}
	return "none detected"
}

// formatDuration renders seconds as m:ss for the report header.
func formatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}

package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateWritesReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ward-round.wav")

	path, err := Generate(Data{
		InputPath: input,
		Report:    healthyReport(),
		When:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := filepath.Join(dir, "ward-round-analysis.log")
	if path != want {
		t.Errorf("report path = %q, want %q", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	text := string(content)

	for _, fragment := range []string{
		"Dictascope Analysis Report",
		"File: ward-round.wav",
		"Quality: good",
		"Duration: 0:30",
		"Measurements",
		"Average volume",
		"Estimated SNR",
		"Mains hum",
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("report missing %q\n%s", fragment, text)
		}
	}

	// Healthy clip: no tips section.
	if strings.Contains(text, "Recording Tips") {
		t.Error("healthy clip should not get a tips section")
	}
}

func TestGenerateIncludesTipsForPoorClip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "quiet.mp3")

	rep := healthyReport()
	rep.AvgVolume = 0.002

	path, err := Generate(Data{InputPath: input, Report: rep, When: time.Now()})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(content), "Recording Tips") {
		t.Error("quiet clip should get a tips section")
	}
}

func TestGenerateNilReport(t *testing.T) {
	if _, err := Generate(Data{InputPath: "x.wav"}); err == nil {
		t.Error("expected error for missing measurements")
	}
}

func TestMetricTableAlignment(t *testing.T) {
	table := &MetricTable{}
	table.AddMetricRow("Average volume", 0.0512, 4, "", "healthy")
	table.AddMetricRow("Estimated SNR", 25.0, 1, "dB", "clean")

	got := table.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "Average volume  ") {
		t.Errorf("label not left-aligned: %q", lines[0])
	}
	if !strings.Contains(lines[1], "25.0  dB  clean") {
		t.Errorf("unit and interpretation misplaced: %q", lines[1])
	}
}

func TestMetricTableEmpty(t *testing.T) {
	table := &MetricTable{}
	if got := table.String(); got != "" {
		t.Errorf("empty table should render empty, got %q", got)
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"plain", 12.345, 2, "12.35"},
		{"zero", 0, 2, "0.00"},
		{"tiny goes scientific", 0.00002, 4, "2.00e-05"},
		{"nan", math.NaN(), 2, "-"},
		{"inf", math.Inf(1), 2, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMetric(tt.value, tt.decimals); got != tt.want {
				t.Errorf("formatMetric(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

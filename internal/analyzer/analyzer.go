// Package analyzer computes recording-quality metrics and the visual
// waveform for a decoded dictation clip.
package analyzer

import (
	"math"
	"sort"

	"github.com/snanayakkara/dictascope/internal/audio"
	"github.com/snanayakkara/dictascope/internal/mains"
)

// Quality is the categorical recording quality tier.
type Quality int

const (
	QualityPoor Quality = iota
	QualityFair
	QualityGood
)

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityFair:
		return "fair"
	default:
		return "poor"
	}
}

// Report is the full quality report for one clip. It is recomputed from
// scratch whenever a new clip is analysed, never patched incrementally.
type Report struct {
	DurationSeconds        float64
	FileSizeBytes          int
	Quality                Quality
	AvgVolume              float64
	SilenceDurationSeconds float64
	EstimatedSNRdB         float64

	// HumLevelDB is the mains-hum prominence relative to the average
	// speech-band level; values above zero mean the hum bin stands out.
	HumLevelDB float64
	MainsHz    mains.Hz
}

// noiseFloorGuard keeps the SNR ratio finite when the 10th-percentile
// amplitude is exactly zero.
const noiseFloorGuard = 0.001

// Analyze computes the quality report and visual waveform for a decoded
// buffer. fileSize is the encoded clip size for the report. Analysis
// either fully succeeds or fails; no partial report is returned.
func Analyze(buf *audio.SampleBuffer, fileSize int, cfg Config) (*Report, Waveform, error) {
	if buf == nil || len(buf.Samples) == 0 {
		return nil, nil, audio.ErrEmptyBuffer
	}

	samples := buf.Samples
	duration := buf.Duration()
	th := cfg.Thresholds

	// Volume and silence in one pass
	var sumAbs float64
	silentCount := 0
	for _, s := range samples {
		a := math.Abs(s)
		sumAbs += a
		if a < th.SilenceFloor {
			silentCount++
		}
	}
	avgVolume := sumAbs / float64(len(samples))
	silenceSeconds := float64(silentCount) / float64(buf.SampleRate)

	snr := estimateSNR(samples)

	freq := cfg.MainsHz
	if freq == 0 {
		freq = mains.Local()
	}

	report := &Report{
		DurationSeconds:        duration,
		FileSizeBytes:          fileSize,
		AvgVolume:              avgVolume,
		SilenceDurationSeconds: silenceSeconds,
		EstimatedSNRdB:         snr,
		HumLevelDB:             humLevel(buf, freq),
		MainsHz:                freq,
	}
	report.Quality = classify(report, th)

	points := cfg.WaveformPoints
	if points <= 0 {
		points = DefaultWaveformPoints
	}

	return report, Downsample(samples, points), nil
}

// estimateSNR derives a signal-to-noise figure from percentile amplitude
// statistics: the 10th percentile stands in for the noise floor, the
// 90th for the signal level. Not a spectral measurement.
func estimateSNR(samples []float64) float64 {
	sorted := make([]float64, len(samples))
	for i, s := range samples {
		sorted[i] = math.Abs(s)
	}
	sort.Float64s(sorted)

	noiseFloor := sorted[int(float64(len(sorted))*0.1)]
	signalIdx := int(float64(len(sorted)) * 0.9)
	if signalIdx >= len(sorted) {
		signalIdx = len(sorted) - 1
	}
	signalLevel := sorted[signalIdx]

	if signalLevel <= 0 {
		return 0
	}
	return 20 * math.Log10(signalLevel/(noiseFloor+noiseFloorGuard))
}

// classify applies the tier rules in fixed poor-then-fair order; the
// first matching rule wins.
func classify(r *Report, th Thresholds) Quality {
	switch {
	case r.AvgVolume < th.PoorVolume,
		r.SilenceDurationSeconds > th.PoorSilenceRatio*r.DurationSeconds,
		r.EstimatedSNRdB < th.PoorSNRdB:
		return QualityPoor
	case r.AvgVolume < th.FairVolume,
		r.SilenceDurationSeconds > th.FairSilenceRatio*r.DurationSeconds,
		r.EstimatedSNRdB < th.FairSNRdB:
		return QualityFair
	default:
		return QualityGood
	}
}

package analyzer

import (
	"math"
	"testing"

	"github.com/snanayakkara/dictascope/internal/audio"
)

// clipOptions configures the synthetic dictation buffers used in tests.
type clipOptions struct {
	DurationSecs float64
	SampleRate   int
	ToneFreq     float64 // 0 = no tone
	ToneAmp      float64 // linear amplitude
	NoiseAmp     float64 // white noise amplitude (0 = none)
	SilenceGap   struct {
		Start    float64
		Duration float64
	}
}

// makeClip generates a synthetic mono buffer: optional sine tone plus
// deterministic white noise, with an optional silence gap.
func makeClip(t *testing.T, opts clipOptions) *audio.SampleBuffer {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	total := int(opts.DurationSecs * float64(opts.SampleRate))

	gapStart := int(opts.SilenceGap.Start * float64(opts.SampleRate))
	gapEnd := int((opts.SilenceGap.Start + opts.SilenceGap.Duration) * float64(opts.SampleRate))

	// Simple LCG for deterministic noise, as seeding math/rand per test
	// makes failures harder to reproduce.
	seed := uint64(12345)
	next := func() float64 {
		seed = seed*6364136223846793005 + 1442695040888963407
		return float64(seed>>11)/float64(1<<53)*2 - 1
	}

	samples := make([]float64, total)
	for i := range samples {
		if i >= gapStart && i < gapEnd {
			continue
		}
		v := 0.0
		if opts.ToneFreq > 0 {
			v += opts.ToneAmp * math.Sin(2*math.Pi*opts.ToneFreq*float64(i)/float64(opts.SampleRate))
		}
		if opts.NoiseAmp > 0 {
			v += opts.NoiseAmp * next()
		}
		samples[i] = v
	}

	return &audio.SampleBuffer{Samples: samples, SampleRate: opts.SampleRate}
}

package analyzer

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/snanayakkara/dictascope/internal/audio"
	"github.com/snanayakkara/dictascope/internal/mains"
)

// humWindow is the FFT window length. ~1.5s at 44.1kHz, which puts the
// 50/60 Hz fundamentals several bins above DC.
const humWindow = 1 << 16

// speechBandHz bounds the band used as the reference level for hum
// prominence. Dictation energy lives well inside it.
const (
	speechBandLowHz  = 100.0
	speechBandHighHz = 4000.0
)

// humLevel measures how far the mains fundamental (and its first
// harmonic) stands out above the average speech-band level, in dB.
// Returns 0 when the clip is too short to resolve the mains bin.
func humLevel(buf *audio.SampleBuffer, freq mains.Hz) float64 {
	n := len(buf.Samples)
	if n > humWindow {
		n = humWindow
	}

	binWidth := float64(buf.SampleRate) / float64(n)
	humBin := int(math.Round(float64(freq) / binWidth))
	if humBin < 2 {
		return 0
	}

	// Hann-windowed chunk from the middle of the clip, where speech is
	// most likely to be underway.
	start := (len(buf.Samples) - n) / 2
	windowed := make([]float64, n)
	for i := range windowed {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = buf.Samples[start+i] * w
	}

	spectrum := fft.FFTReal(windowed)

	magnitude := func(bin int) float64 {
		if bin < 0 || bin >= len(spectrum)/2 {
			return 0
		}
		return cmplx.Abs(spectrum[bin])
	}

	// Spectral leakage spreads the hum over neighbouring bins; take the
	// strongest of the fundamental's neighbourhood and the first harmonic.
	hum := 0.0
	for _, bin := range []int{humBin - 1, humBin, humBin + 1, 2 * humBin} {
		if m := magnitude(bin); m > hum {
			hum = m
		}
	}

	lowBin := int(speechBandLowHz / binWidth)
	highBin := int(speechBandHighHz / binWidth)
	if highBin >= len(spectrum)/2 {
		highBin = len(spectrum)/2 - 1
	}
	if highBin <= lowBin {
		return 0
	}

	var sum float64
	for bin := lowBin; bin <= highBin; bin++ {
		sum += magnitude(bin)
	}
	reference := sum / float64(highBin-lowBin+1)

	const eps = 1e-12
	return 20 * math.Log10((hum+eps)/(reference+eps))
}

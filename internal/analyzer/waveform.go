package analyzer

import "math"

// Waveform is a fixed-length amplitude envelope for visualisation only.
// Values are unnormalised block means of |sample|; rendering divides by
// Max to get bar heights.
type Waveform []float64

// Max returns the largest envelope value, or 0 for an empty waveform.
func (w Waveform) Max() float64 {
	max := 0.0
	for _, v := range w {
		if v > max {
			max = v
		}
	}
	return max
}

// Downsample reduces samples to exactly points envelope values. With
// fewer samples than points the envelope is built by nearest-index
// upsampling so the length invariant still holds.
func Downsample(samples []float64, points int) Waveform {
	if points <= 0 || len(samples) == 0 {
		return nil
	}

	wave := make(Waveform, points)

	if len(samples) < points {
		for i := range wave {
			idx := i * len(samples) / points
			wave[i] = math.Abs(samples[idx])
		}
		return wave
	}

	// Contiguous blocks of floor(len/points); the last block absorbs
	// the remainder.
	blockSize := len(samples) / points
	for i := range wave {
		start := i * blockSize
		end := start + blockSize
		if i == points-1 {
			end = len(samples)
		}

		var sum float64
		for _, s := range samples[start:end] {
			sum += math.Abs(s)
		}
		wave[i] = sum / float64(end-start)
	}
	return wave
}

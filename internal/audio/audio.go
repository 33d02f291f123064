// Package audio decodes finished dictation clips into sample buffers
// for analysis and holds the raw clip bytes for playback and export.
package audio

import "path/filepath"

// Clip is an immutable finished recording: the encoded bytes as captured,
// plus an optional display name. The decoded forms (SampleBuffer for
// analysis, the playback buffer) are derived from it and released
// independently.
type Clip struct {
	Name string
	Data []byte
}

// Size returns the encoded size in bytes.
func (c *Clip) Size() int {
	return len(c.Data)
}

// Base returns the clip's display name without directory or extension,
// falling back to "dictation" for unnamed in-memory clips.
func (c *Clip) Base() string {
	if c.Name == "" {
		return "dictation"
	}
	name := filepath.Base(c.Name)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	if name == "" {
		return "dictation"
	}
	return name
}

// SampleBuffer is the decoded, mono, read-only form of a clip.
// Samples are in [-1, 1]. Never mutated after decode.
type SampleBuffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

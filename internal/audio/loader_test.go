package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// wavOptions configures the synthetic WAV clips used across the package tests.
type wavOptions struct {
	DurationSecs float64
	SampleRate   int
	Channels     int
	ToneFreq     float64
	ToneAmp      float64
}

// makeWAV builds an in-memory 16-bit PCM WAV file with a sine tone.
// A canonical 44-byte header is enough for the decoder under test.
func makeWAV(t *testing.T, opts wavOptions) []byte {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}

	frames := int(opts.DurationSecs * float64(opts.SampleRate))
	dataSize := frames * opts.Channels * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(opts.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(opts.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(opts.SampleRate*opts.Channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(opts.Channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))

	for i := range frames {
		v := opts.ToneAmp * math.Sin(2*math.Pi*opts.ToneFreq*float64(i)/float64(opts.SampleRate))
		s := int16(v * 32767)
		for range opts.Channels {
			binary.Write(&buf, binary.LittleEndian, s)
		}
	}

	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav", makeWAV(t, wavOptions{DurationSecs: 0.01, ToneFreq: 440, ToneAmp: 0.5}), FormatWAV},
		{"ogg", []byte("OggS\x00rest-of-page"), FormatOgg},
		{"mp3 id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
		{"garbage", []byte("not audio at all"), FormatUnknown},
		{"empty", nil, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeWAV(t *testing.T) {
	data := makeWAV(t, wavOptions{
		DurationSecs: 0.5,
		SampleRate:   22050,
		ToneFreq:     440,
		ToneAmp:      0.5,
	})

	buf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if buf.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", buf.SampleRate)
	}
	if got := buf.Duration(); math.Abs(got-0.5) > 0.01 {
		t.Errorf("Duration = %.3f, want ~0.5", got)
	}

	// Sine tone peaks should sit near the configured amplitude
	peak := 0.0
	for _, s := range buf.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak < 0.45 || peak > 0.55 {
		t.Errorf("peak amplitude = %.3f, want ~0.5", peak)
	}
}

func TestDecodeStereoMixdown(t *testing.T) {
	mono := makeWAV(t, wavOptions{DurationSecs: 0.2, ToneFreq: 440, ToneAmp: 0.5})
	stereo := makeWAV(t, wavOptions{DurationSecs: 0.2, Channels: 2, ToneFreq: 440, ToneAmp: 0.5})

	monoBuf, err := Decode(mono)
	if err != nil {
		t.Fatalf("mono decode failed: %v", err)
	}
	stereoBuf, err := Decode(stereo)
	if err != nil {
		t.Fatalf("stereo decode failed: %v", err)
	}

	if len(monoBuf.Samples) != len(stereoBuf.Samples) {
		t.Fatalf("frame counts differ: mono %d, stereo %d", len(monoBuf.Samples), len(stereoBuf.Samples))
	}

	// Identical channels averaged should reproduce the mono signal
	for i := range monoBuf.Samples {
		if math.Abs(monoBuf.Samples[i]-stereoBuf.Samples[i]) > 1e-4 {
			t.Fatalf("sample %d differs: mono %.5f, stereo %.5f", i, monoBuf.Samples[i], stereoBuf.Samples[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty clip", nil, ErrNoData},
		{"unknown format", []byte("definitely not audio data here"), ErrUnknownFormat},
		{"zero-length wav", makeWAV(t, wavOptions{DurationSecs: 0}), ErrEmptyBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClipBase(t *testing.T) {
	tests := []struct {
		name string
		clip Clip
		want string
	}{
		{"plain name", Clip{Name: "ward-round.wav"}, "ward-round"},
		{"with directory", Clip{Name: "/inbox/patient-note.ogg"}, "patient-note"},
		{"no extension", Clip{Name: "dictation-7"}, "dictation-7"},
		{"unnamed", Clip{}, "dictation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clip.Base(); got != tt.want {
				t.Errorf("Base() = %q, want %q", got, tt.want)
			}
		})
	}
}

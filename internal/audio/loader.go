package audio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Format identifies a supported clip container.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatOgg
	FormatMP3
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatOgg:
		return "ogg"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// DetectFormat sniffs the container from the leading bytes.
// MP3 is matched last because its frame sync is the weakest signature.
func DetectFormat(data []byte) Format {
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")) {
		return FormatWAV
	}
	if len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")) {
		return FormatOgg
	}
	if len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")) {
		return FormatMP3
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return FormatMP3
	}
	return FormatUnknown
}

// Decode decodes clip bytes into a mono SampleBuffer. This is the analysis
// copy of the clip; playback decodes its own copy so the two sides never
// share a decoder.
func Decode(data []byte) (*SampleBuffer, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}

	var (
		buf *SampleBuffer
		err error
	)
	switch DetectFormat(data) {
	case FormatWAV:
		buf, err = decodeWAV(data)
	case FormatOgg:
		buf, err = decodeOgg(data)
	case FormatMP3:
		buf, err = decodeMP3(data)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}

	if len(buf.Samples) == 0 {
		return nil, ErrEmptyBuffer
	}
	return buf, nil
}

func decodeWAV(data []byte) (*SampleBuffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav decode: invalid file")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode: %w", err)
	}

	scale := float64(int64(1) << (dec.BitDepth - 1))
	return &SampleBuffer{
		Samples:    mixdownPCM(pcm, scale),
		SampleRate: pcm.Format.SampleRate,
	}, nil
}

// mixdownPCM averages interleaved integer PCM channels into normalised
// mono float samples.
func mixdownPCM(pcm *goaudio.IntBuffer, scale float64) []float64 {
	channels := pcm.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	frames := len(pcm.Data) / channels
	samples := make([]float64, frames)
	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += float64(pcm.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}
	return samples
}

func decodeOgg(data []byte) (*SampleBuffer, error) {
	raw, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("vorbis decode: %w", err)
	}

	channels := format.Channels
	if channels < 1 {
		channels = 1
	}

	frames := len(raw) / channels
	samples := make([]float64, frames)
	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += float64(raw[i*channels+ch])
		}
		samples[i] = sum / float64(channels)
	}

	return &SampleBuffer{Samples: samples, SampleRate: format.SampleRate}, nil
}

func decodeMP3(data []byte) (*SampleBuffer, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3 decode: %w", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode: %w", err)
	}

	frames := len(raw) / 4
	samples := make([]float64, frames)
	for i := range frames {
		l := int16(uint16(raw[4*i]) | uint16(raw[4*i+1])<<8)
		r := int16(uint16(raw[4*i+2]) | uint16(raw[4*i+3])<<8)
		samples[i] = (float64(l) + float64(r)) / 2.0 / 32768.0
	}

	return &SampleBuffer{Samples: samples, SampleRate: dec.SampleRate()}, nil
}

package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/snanayakkara/dictascope/internal/audio"
)

// ErrResourceClosed is returned when starting a released resource.
var ErrResourceClosed = errors.New("media resource is closed")

const speakerBuffer = 100 * time.Millisecond

// resampleQuality trades CPU for rate-change fidelity; 4 is beep's
// recommended middle ground.
const resampleQuality = 4

// minVolumeDB is the exponent applied at the quietest non-silent
// setting. Perceptual curve borrowed from the volume controls in the
// beep ecosystem.
const minVolumeDB = -10.0

// The speaker is process-global in beep; reinitialise only when a clip
// arrives with a different sample rate.
var speakerState struct {
	sync.Mutex
	rate beep.SampleRate
}

func ensureSpeaker(rate beep.SampleRate) error {
	speakerState.Lock()
	defer speakerState.Unlock()

	if speakerState.rate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("failed to initialise audio output: %w", err)
	}
	speakerState.rate = rate
	return nil
}

// BeepResource is the beep/speaker-backed media resource. The clip is
// fully materialised into a beep.Buffer at construction; the playback
// chain is seeker → resampler (rate) → volume → ctrl (pause).
type BeepResource struct {
	format    beep.Format
	seeker    beep.StreamSeeker
	resampler *beep.Resampler
	volume    *effects.Volume
	ctrl      *beep.Ctrl
	events    chan Event

	mu     sync.Mutex
	queued bool // streamer currently queued on the speaker
	closed bool
}

// NewBeepResource decodes clip bytes into a playback resource. This is
// the playback copy of the clip, decoded independently of the analysis
// buffer.
func NewBeepResource(data []byte) (*BeepResource, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch audio.DetectFormat(data) {
	case audio.FormatWAV:
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	case audio.FormatOgg:
		streamer, format, err = vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	case audio.FormatMP3:
		streamer, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	default:
		return nil, audio.ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("playback decode: %w", err)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	streamer.Close()

	if buffer.Len() == 0 {
		return nil, audio.ErrEmptyBuffer
	}

	seeker := buffer.Streamer(0, buffer.Len())
	resampler := beep.ResampleRatio(resampleQuality, 1.0, seeker)
	volume := &effects.Volume{Streamer: resampler, Base: 2, Volume: 0}
	ctrl := &beep.Ctrl{Streamer: volume, Paused: true}

	return &BeepResource{
		format:    format,
		seeker:    seeker,
		resampler: resampler,
		volume:    volume,
		ctrl:      ctrl,
		events:    make(chan Event, 4),
	}, nil
}

// Start queues the clip on the speaker (once) and unpauses. A clip that
// has played to the end rewinds and plays again.
func (r *BeepResource) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrResourceClosed
	}

	if err := ensureSpeaker(r.format.SampleRate); err != nil {
		return err
	}

	speaker.Lock()
	if r.seeker.Position() >= r.seeker.Len() {
		if err := r.seeker.Seek(0); err != nil {
			speaker.Unlock()
			return fmt.Errorf("rewind failed: %w", err)
		}
	}
	r.ctrl.Paused = false
	speaker.Unlock()

	if !r.queued {
		speaker.Play(beep.Seq(r.ctrl, beep.Callback(r.onEnded)))
		r.queued = true
	}
	return nil
}

// onEnded runs on the speaker goroutine when the clip drains; it must
// not take the speaker lock.
func (r *BeepResource) onEnded() {
	r.mu.Lock()
	r.queued = false
	r.mu.Unlock()

	select {
	case r.events <- Event{Kind: EventEnded}:
	default:
	}
}

func (r *BeepResource) Stop() {
	speaker.Lock()
	r.ctrl.Paused = true
	speaker.Unlock()
}

func (r *BeepResource) Position() float64 {
	speaker.Lock()
	pos := r.seeker.Position()
	speaker.Unlock()
	return r.format.SampleRate.D(pos).Seconds()
}

func (r *BeepResource) SetPosition(seconds float64) error {
	target := r.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	speaker.Lock()
	defer speaker.Unlock()

	if target < 0 {
		target = 0
	}
	if limit := r.seeker.Len(); target > limit {
		target = limit
	}
	if err := r.seeker.Seek(target); err != nil {
		return fmt.Errorf("seek failed: %w", err)
	}
	return nil
}

func (r *BeepResource) Duration() float64 {
	return r.format.SampleRate.D(r.seeker.Len()).Seconds()
}

func (r *BeepResource) SetRate(ratio float64) {
	speaker.Lock()
	r.resampler.SetRatio(ratio)
	speaker.Unlock()
}

// SetVolume maps linear [0,1] onto a perceptual exponent for
// effects.Volume; zero mutes outright.
func (r *BeepResource) SetVolume(v float64) {
	exponent := (1 - math.Sqrt(v)) * minVolumeDB

	speaker.Lock()
	r.volume.Volume = exponent
	r.volume.Silent = v <= 0
	speaker.Unlock()
}

func (r *BeepResource) Events() <-chan Event {
	return r.events
}

// Close releases the speaker queue. Safe to call more than once.
func (r *BeepResource) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.queued = false
	speaker.Clear()
}

package player

import "github.com/rs/zerolog"

// fakeResource is a scripted media resource for driving the controller
// deterministically: tests set positions and inject faults directly.
type fakeResource struct {
	position float64
	duration float64

	startErr error
	seekErr  error

	started   bool
	closed    bool
	seekCalls int
	rate      float64
	volume    float64

	// onSeek lets a test model resource-side rounding: it runs after a
	// successful SetPosition and may adjust position.
	onSeek func(target float64) float64

	events chan Event
}

func newFakeResource(duration float64) *fakeResource {
	return &fakeResource{
		duration: duration,
		rate:     1.0,
		volume:   1.0,
		events:   make(chan Event, 4),
	}
}

func (f *fakeResource) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeResource) Stop() { f.started = false }

func (f *fakeResource) Position() float64 { return f.position }

func (f *fakeResource) SetPosition(seconds float64) error {
	f.seekCalls++
	if f.seekErr != nil {
		return f.seekErr
	}
	if f.onSeek != nil {
		f.position = f.onSeek(seconds)
		return nil
	}
	f.position = seconds
	return nil
}

func (f *fakeResource) Duration() float64 { return f.duration }

func (f *fakeResource) SetRate(ratio float64) { f.rate = ratio }

func (f *fakeResource) SetVolume(v float64) { f.volume = v }

func (f *fakeResource) Events() <-chan Event { return f.events }

func (f *fakeResource) Close() { f.closed = true }

func newTestController(res Resource) *Controller {
	return NewController(res, zerolog.Nop())
}

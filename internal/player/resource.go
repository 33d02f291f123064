// Package player drives playback and seeking for a single dictation
// clip: a transport state machine in front of the audio device, with
// generation-counted cancellation for the position sync loop and the
// seek fallback timer.
package player

// EventKind identifies an asynchronous media resource event.
type EventKind int

const (
	// EventEnded fires when the clip plays to its natural end.
	EventEnded EventKind = iota
	// EventError reports a non-fatal playback fault.
	EventError
)

// Event is an asynchronous notification from the media resource.
type Event struct {
	Kind EventKind
	Err  error
}

// Resource is the underlying media resource for one open clip. It is
// exclusively owned by a single Controller; the analysis pipeline works
// on its own decoded copy and never touches it.
//
// Position/SetPosition are in seconds. All methods are safe to call
// from the UI event loop; Events delivers end-of-clip and error
// notifications from the audio device.
type Resource interface {
	// Start begins or resumes playback. An error means the device
	// refused to start; the clip stays paused and the call may be
	// retried.
	Start() error
	// Stop pauses playback. Idempotent.
	Stop()
	Position() float64
	// SetPosition jumps to the given time, clamped to the clip bounds.
	SetPosition(seconds float64) error
	Duration() float64
	// SetRate sets the playback speed ratio (1.0 = realtime).
	SetRate(ratio float64)
	// SetVolume sets the output volume in [0, 1].
	SetVolume(v float64)
	Events() <-chan Event
	// Close releases the device. The resource is unusable afterwards.
	Close()
}

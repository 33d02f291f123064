package player

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Phase is the transport phase. Exactly one phase owns writes to the
// current position at any time: Playing writes from the sync loop,
// Seeking from the in-flight seek resolution, Scrubbing from the user's
// drag. Idle writes nothing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseSeeking
	PhaseScrubbing
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseSeeking:
		return "seeking"
	case PhaseScrubbing:
		return "scrubbing"
	default:
		return "idle"
	}
}

// Rates are the selectable playback speeds.
var Rates = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// SeekFallback is how long a seek may stay unconfirmed before it is
// treated as complete anyway, so the transport can never stick in the
// seeking phase.
const SeekFallback = 200 * time.Millisecond

// State is a read-only snapshot of the transport for the UI.
type State struct {
	Playing     bool
	Phase       Phase
	CurrentTime float64
	Duration    float64
	Rate        float64
	Volume      float64
}

// Seeking reports whether a seek is in flight.
func (s State) Seeking() bool { return s.Phase == PhaseSeeking }

// Scrubbing reports whether the user is dragging the position.
func (s State) Scrubbing() bool { return s.Phase == PhaseScrubbing }

// SeekTicket identifies one in-flight seek. The resource confirmation
// and the fallback timer carry the same ticket; whichever arrives first
// resolves the seek and the loser becomes a stale no-op.
type SeekTicket struct {
	Gen uint64
}

// SyncGen identifies one run of the position sync loop. Bumping the
// controller's counter orphans every tick already scheduled with an
// older value.
type SyncGen uint64

// Controller owns the transport state for one open clip. It is a pure,
// synchronous state machine: all timing (the per-frame sync loop, the
// seek fallback) is driven from outside by calling the Tick/Confirm/
// Timeout methods, which keeps every transition deterministic and
// single-threaded.
type Controller struct {
	res Resource
	log zerolog.Logger

	phase   Phase
	playing bool
	current float64
	rate    float64
	volume  float64

	syncGen SyncGen
	seekGen uint64
}

// NewController wraps a media resource. The controller assumes
// exclusive ownership; Close releases it.
func NewController(res Resource, log zerolog.Logger) *Controller {
	return &Controller{
		res:    res,
		log:    log.With().Str("component", "player").Logger(),
		rate:   1.0,
		volume: 1.0,
	}
}

// State returns the current transport snapshot.
func (c *Controller) State() State {
	return State{
		Playing:     c.playing,
		Phase:       c.phase,
		CurrentTime: c.current,
		Duration:    c.res.Duration(),
		Rate:        c.rate,
		Volume:      c.volume,
	}
}

// Play asks the resource to start. A refusal is recoverable: it is
// logged, nothing changes, and the user may retry. On success the
// position sync loop starts unless a seek or scrub currently owns the
// position; ok reports whether the caller should begin ticking with gen.
func (c *Controller) Play() (gen SyncGen, ok bool) {
	if c.playing {
		return 0, false
	}
	if err := c.res.Start(); err != nil {
		c.log.Warn().Err(err).Msg("playback start refused")
		return 0, false
	}

	c.playing = true
	if c.phase != PhaseIdle {
		// A seek or scrub owns the position; the sync loop resumes
		// when it settles.
		return 0, false
	}
	c.phase = PhasePlaying
	c.syncGen++
	return c.syncGen, true
}

// Pause stops the resource and orphans the sync loop. Idempotent.
func (c *Controller) Pause() {
	if !c.playing {
		return
	}
	c.res.Stop()
	c.playing = false
	c.syncGen++
	if c.phase == PhasePlaying {
		c.phase = PhaseIdle
	}
}

// Tick is one frame of the position sync loop. It copies the resource's
// true position into the observable state and reports whether the loop
// should continue. Stale generations and non-playing phases are
// rejected so an orphaned loop dies on its next frame.
func (c *Controller) Tick(gen SyncGen) bool {
	if gen != c.syncGen || c.phase != PhasePlaying || !c.playing {
		return false
	}
	c.current = c.res.Position()
	return true
}

// SeekToPercent requests a jump to a fractional position (0-100). The
// request is rejected outright (no state change, no timer) when the
// duration is unusable, the percentage is not finite or out of range,
// or another seek is already in flight.
//
// On acceptance the observable position updates optimistically, the
// resource is told to seek, and the returned ticket must be armed with
// a SeekFallback timer by the caller.
func (c *Controller) SeekToPercent(pct float64) (SeekTicket, bool) {
	duration := c.res.Duration()
	if !(duration > 0) || math.IsInf(duration, 0) {
		return SeekTicket{}, false
	}
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
		return SeekTicket{}, false
	}
	if c.phase == PhaseSeeking {
		return SeekTicket{}, false
	}

	newTime := pct / 100 * duration
	if newTime < 0 {
		newTime = 0
	}
	if newTime > duration {
		newTime = duration
	}

	// Optimistic update for immediate feedback; the resolution resyncs
	// to the resource's actual reported position.
	c.current = newTime
	c.phase = PhaseSeeking
	c.syncGen++
	c.seekGen++

	if err := c.res.SetPosition(newTime); err != nil {
		// Absorbed locally: resync to wherever the resource ended up.
		c.log.Warn().Err(err).Float64("target", newTime).Msg("seek rejected by resource")
		c.settleSeek()
		return SeekTicket{}, false
	}

	return SeekTicket{Gen: c.seekGen}, true
}

// ConfirmSeek resolves a seek on resource confirmation. Stale tickets
// are no-ops. When playback is rolling the sync loop restarts; the
// returned generation drives it.
func (c *Controller) ConfirmSeek(tk SeekTicket) (SyncGen, bool) {
	if tk.Gen != c.seekGen || c.phase != PhaseSeeking {
		return 0, false
	}
	return c.settleSeek()
}

// SeekTimeout resolves a seek whose confirmation never arrived. The
// fallback is a normal operational path, not an error: it guarantees
// the transport cannot stay in the seeking phase indefinitely.
func (c *Controller) SeekTimeout(tk SeekTicket) (SyncGen, bool) {
	if tk.Gen != c.seekGen || c.phase != PhaseSeeking {
		return 0, false
	}
	c.log.Debug().Msg("seek fallback fired before confirmation")
	return c.settleSeek()
}

// SeekError resolves a seek the resource reported a fault for. The
// error is absorbed, never propagated.
func (c *Controller) SeekError(tk SeekTicket, err error) (SyncGen, bool) {
	if tk.Gen != c.seekGen || c.phase != PhaseSeeking {
		return 0, false
	}
	c.log.Warn().Err(err).Msg("seek failed, resyncing position")
	return c.settleSeek()
}

// settleSeek leaves the seeking phase: resync the position from the
// resource (absorbing any resource-side rounding of the optimistic
// value) and hand position ownership back to the sync loop or to idle.
func (c *Controller) settleSeek() (SyncGen, bool) {
	c.current = c.res.Position()
	if c.playing {
		c.phase = PhasePlaying
		c.syncGen++
		return c.syncGen, true
	}
	c.phase = PhaseIdle
	return 0, false
}

// BeginScrub hands position ownership to the user's drag; the sync
// loop must not overwrite the position until the drag ends.
func (c *Controller) BeginScrub() {
	if c.phase == PhaseScrubbing || c.phase == PhaseSeeking {
		return
	}
	c.phase = PhaseScrubbing
	c.syncGen++
}

// Scrub moves the optimistic position during a drag without touching
// the resource.
func (c *Controller) Scrub(pct float64) {
	if c.phase != PhaseScrubbing {
		return
	}
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return
	}
	duration := c.res.Duration()
	if !(duration > 0) {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	c.current = pct / 100 * duration
}

// EndScrub finishes the drag and issues the real seek to the final
// position. When the seek is rejected outright the transport drops back
// to the playing phase if playback was rolling; the caller should then
// ResumeSync so the position loop does not stay orphaned.
func (c *Controller) EndScrub(pct float64) (SeekTicket, bool) {
	if c.phase != PhaseScrubbing {
		return SeekTicket{}, false
	}
	c.phase = PhaseIdle
	tk, ok := c.SeekToPercent(pct)
	if !ok && c.phase == PhaseIdle && c.playing {
		c.phase = PhasePlaying
	}
	return tk, ok
}

// ResumeSync restarts the position sync loop after a rejected seek or
// scrub left it orphaned while playback was rolling. The returned
// generation supersedes any chain still in flight, so calling it with a
// healthy loop is harmless. No-op in any other phase.
func (c *Controller) ResumeSync() (SyncGen, bool) {
	if c.phase != PhasePlaying || !c.playing {
		return 0, false
	}
	c.syncGen++
	return c.syncGen, true
}

// HandleEnded processes the natural end of the clip: stopped, not
// playing, sync loop orphaned.
func (c *Controller) HandleEnded() {
	c.playing = false
	c.syncGen++
	if c.phase == PhasePlaying {
		c.phase = PhaseIdle
	}
	c.current = c.res.Duration()
}

// SetRate snaps the requested speed to the nearest supported rate and
// applies it. Always succeeds.
func (c *Controller) SetRate(rate float64) float64 {
	snapped := Rates[0]
	best := math.Abs(rate - snapped)
	for _, r := range Rates[1:] {
		if d := math.Abs(rate - r); d < best {
			snapped, best = r, d
		}
	}
	c.rate = snapped
	c.res.SetRate(snapped)
	return snapped
}

// SetVolume clamps to [0,1] and applies. Always succeeds.
func (c *Controller) SetVolume(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.volume = v
	c.res.SetVolume(v)
	return v
}

// Close tears down the transport: every pending loop and timer is
// orphaned and the resource is released. Safe on all exit paths.
func (c *Controller) Close() {
	c.syncGen++
	c.seekGen++
	c.playing = false
	c.phase = PhaseIdle
	c.res.Close()
}

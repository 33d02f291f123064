package ui

import (
	"github.com/snanayakkara/dictascope/internal/analyzer"
	"github.com/snanayakkara/dictascope/internal/audio"
	"github.com/snanayakkara/dictascope/internal/player"
)

// AnalyzedMsg carries the analysis result for one clip in the session.
type AnalyzedMsg struct {
	Index  int
	Clip   *audio.Clip
	Report *analyzer.Report
	Wave   analyzer.Waveform
	Err    error
}

// OpenedMsg carries a freshly created playback resource for a clip, or
// the decode failure that prevented one.
type OpenedMsg struct {
	Index    int
	Resource player.Resource
	Err      error
}

// TickMsg is one frame of the position sync loop. Stale generations are
// dropped by the controller; Res guards against frames left in flight
// by a previously open clip, whose controller counted its own
// generations from zero.
type TickMsg struct {
	Res uint64
	Gen player.SyncGen
}

// SeekConfirmedMsg is the resource-side confirmation of an in-flight seek.
type SeekConfirmedMsg struct {
	Res    uint64
	Ticket player.SeekTicket
}

// SeekTimeoutMsg fires when the fallback timer beats the confirmation.
type SeekTimeoutMsg struct {
	Res    uint64
	Ticket player.SeekTicket
}

// ResourceEventMsg delivers asynchronous media events (ended, error).
// Res identifies the open resource that emitted it, so an event
// buffered by a closed clip never reaches the next clip's controller.
type ResourceEventMsg struct {
	Res   uint64
	Event player.Event
}

// ClipFoundMsg announces a new recording discovered by the inbox watcher.
type ClipFoundMsg struct {
	Path string
}

// ExportDoneMsg reports the outcome of a clip download.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ReportWrittenMsg reports the outcome of analysis report generation.
type ReportWrittenMsg struct {
	Path string
	Err  error
}

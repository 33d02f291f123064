// Package ui provides the Bubbletea terminal interface: the session
// list, the waveform transport view, and the event plumbing that drives
// the playback controller's sync loop and seek timers.
package ui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/snanayakkara/dictascope/internal/analyzer"
	"github.com/snanayakkara/dictascope/internal/audio"
	"github.com/snanayakkara/dictascope/internal/export"
	"github.com/snanayakkara/dictascope/internal/player"
	"github.com/snanayakkara/dictascope/internal/report"
)

// tickInterval is the frame period of the position sync loop.
const tickInterval = 33 * time.Millisecond

// ClipStatus is the session-list state of one clip.
type ClipStatus int

const (
	StatusQueued ClipStatus = iota
	StatusAnalyzing
	StatusReady
	StatusFailed
)

// ClipEntry tracks one recording in the review session.
type ClipEntry struct {
	Path   string
	Status ClipStatus
	Clip   *audio.Clip
	Report *analyzer.Report
	Wave   analyzer.Waveform
	Err    error
}

// Options configures the UI model.
type Options struct {
	Config    analyzer.Config
	Logs      bool   // write a per-clip analysis report file
	ExportDir string // destination for downloaded clips
	WatchDir  string // inbox being watched, "" when disabled
	Logger    zerolog.Logger

	// NewResource builds the playback resource for a clip. Defaults to
	// the beep-backed resource; tests substitute a fake.
	NewResource func(data []byte) (player.Resource, error)
}

// Model is the Bubbletea model for the review session.
type Model struct {
	opts  Options
	clips []ClipEntry

	cursor int
	open   int // index of the clip in the player, -1 when none
	ctrl   *player.Controller
	events <-chan player.Event
	resGen uint64 // bumped per opened resource; async messages carrying an older value are stale

	detail bool // quality metrics expanded
	status string

	width  int
	height int
}

// NewModel builds a session over the given clip paths.
func NewModel(paths []string, opts Options) Model {
	if opts.NewResource == nil {
		opts.NewResource = func(data []byte) (player.Resource, error) {
			return player.NewBeepResource(data)
		}
	}

	clips := make([]ClipEntry, len(paths))
	for i, path := range paths {
		clips[i] = ClipEntry{Path: path, Status: StatusQueued}
	}

	return Model{
		opts:  opts,
		clips: clips,
		open:  -1,
	}
}

// Init queues analysis for every clip given on the command line.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.clips))
	for i := range m.clips {
		m.clips[i].Status = StatusAnalyzing
		cmds[i] = analyzeCmd(i, m.clips[i].Path, m.opts.Config)
	}
	return tea.Batch(cmds...)
}

// analyzeCmd loads, decodes and analyses one clip off the event loop.
func analyzeCmd(index int, path string, cfg analyzer.Config) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return AnalyzedMsg{Index: index, Err: err}
		}
		clip := &audio.Clip{Name: path, Data: data}

		buf, err := audio.Decode(data)
		if err != nil {
			return AnalyzedMsg{Index: index, Clip: clip, Err: err}
		}

		rep, wave, err := analyzer.Analyze(buf, clip.Size(), cfg)
		if err != nil {
			return AnalyzedMsg{Index: index, Clip: clip, Err: err}
		}

		return AnalyzedMsg{Index: index, Clip: clip, Report: rep, Wave: wave}
	}
}

// openCmd decodes the playback copy of a clip.
func openCmd(index int, clip *audio.Clip, build func([]byte) (player.Resource, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := build(clip.Data)
		return OpenedMsg{Index: index, Resource: res, Err: err}
	}
}

func tickCmd(res uint64, gen player.SyncGen) tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{Res: res, Gen: gen}
	})
}

// confirmSeekCmd delivers the resource confirmation as a message so the
// resolution always happens on the event loop, after the optimistic
// update has rendered.
func confirmSeekCmd(res uint64, tk player.SeekTicket) tea.Cmd {
	return func() tea.Msg {
		return SeekConfirmedMsg{Res: res, Ticket: tk}
	}
}

func seekFallbackCmd(res uint64, tk player.SeekTicket) tea.Cmd {
	return tea.Tick(player.SeekFallback, func(time.Time) tea.Msg {
		return SeekTimeoutMsg{Res: res, Ticket: tk}
	})
}

// waitForEventCmd blocks on the resource's event channel, mirroring the
// usual Bubbletea channel-pump pattern. The pump for a closed clip may
// still deliver one buffered event; the Res tag lets Update drop it.
func waitForEventCmd(res uint64, events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		return ResourceEventMsg{Res: res, Event: <-events}
	}
}

func exportCmd(dir string, clip *audio.Clip) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Clip(dir, clip, time.Now())
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func writeReportCmd(entry ClipEntry) tea.Cmd {
	return func() tea.Msg {
		path, err := report.Generate(report.Data{
			InputPath: entry.Path,
			Report:    entry.Report,
			When:      time.Now(),
		})
		return ReportWrittenMsg{Path: path, Err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case AnalyzedMsg:
		return m.handleAnalyzed(msg)

	case OpenedMsg:
		return m.handleOpened(msg)

	case TickMsg:
		if msg.Res == m.resGen && m.ctrl != nil && m.ctrl.Tick(msg.Gen) {
			return m, tickCmd(m.resGen, msg.Gen)
		}

	case SeekConfirmedMsg:
		if msg.Res == m.resGen && m.ctrl != nil {
			if gen, restart := m.ctrl.ConfirmSeek(msg.Ticket); restart {
				return m, tickCmd(m.resGen, gen)
			}
		}

	case SeekTimeoutMsg:
		if msg.Res == m.resGen && m.ctrl != nil {
			if gen, restart := m.ctrl.SeekTimeout(msg.Ticket); restart {
				return m, tickCmd(m.resGen, gen)
			}
		}

	case ResourceEventMsg:
		return m.handleResourceEvent(msg)

	case ClipFoundMsg:
		index := len(m.clips)
		m.clips = append(m.clips, ClipEntry{Path: msg.Path, Status: StatusAnalyzing})
		return m, analyzeCmd(index, msg.Path, m.opts.Config)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn().Err(msg.Err).Msg("export failed")
			m.status = "export failed: " + msg.Err.Error()
		} else {
			m.status = "saved " + msg.Path
		}

	case ReportWrittenMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn().Err(msg.Err).Msg("report generation failed")
		}
	}

	return m, nil
}

func (m Model) handleAnalyzed(msg AnalyzedMsg) (tea.Model, tea.Cmd) {
	if msg.Index >= len(m.clips) {
		return m, nil
	}

	entry := &m.clips[msg.Index]
	entry.Clip = msg.Clip
	entry.Report = msg.Report
	entry.Wave = msg.Wave
	entry.Err = msg.Err

	if msg.Err != nil {
		// Decode/empty-buffer failures are terminal for the clip and
		// surfaced in the session list; playback is unavailable too.
		entry.Status = StatusFailed
		m.opts.Logger.Error().Err(msg.Err).Str("clip", entry.Path).Msg("analysis failed")
		return m, nil
	}
	entry.Status = StatusReady

	var cmds []tea.Cmd
	if m.opts.Logs {
		cmds = append(cmds, writeReportCmd(*entry))
	}
	// Open the first playable clip automatically
	if m.open == -1 {
		cmds = append(cmds, openCmd(msg.Index, msg.Clip, m.opts.NewResource))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleOpened(msg OpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.opts.Logger.Error().Err(msg.Err).Msg("failed to open clip for playback")
		m.status = "playback unavailable: " + msg.Err.Error()
		return m, nil
	}

	// One controller per open clip: release the previous one first.
	// The generation bump retires every async message still in flight
	// for it (ticks, seek tickets, buffered resource events).
	if m.ctrl != nil {
		m.ctrl.Close()
	}
	m.resGen++
	m.ctrl = player.NewController(msg.Resource, m.opts.Logger)
	m.events = msg.Resource.Events()
	m.open = msg.Index
	m.status = ""

	return m, waitForEventCmd(m.resGen, m.events)
}

func (m Model) handleResourceEvent(msg ResourceEventMsg) (tea.Model, tea.Cmd) {
	if msg.Res != m.resGen || m.ctrl == nil || m.events == nil {
		// A closed clip's pump drained its last buffered event; do not
		// re-arm on the dead channel.
		return m, nil
	}

	switch msg.Event.Kind {
	case player.EventEnded:
		m.ctrl.HandleEnded()
	case player.EventError:
		// Absorbed: logged, never fatal to the session
		m.opts.Logger.Warn().Err(msg.Event.Err).Msg("media resource fault")
	}

	return m, waitForEventCmd(m.resGen, m.events)
}

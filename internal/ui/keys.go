package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snanayakkara/dictascope/internal/player"
)

// scrubStepPct is how far one arrow press moves the playhead during a
// drag-style scrub, versus the coarser jump of a direct seek.
const (
	scrubStepPct = 1.0
	seekStepPct  = 5.0
	volumeStep   = 0.1
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		if m.ctrl != nil {
			m.ctrl.Close()
			m.ctrl = nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.clips)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.openSelected()

	case "i":
		m.detail = !m.detail
		return m, nil
	}

	// Everything below is transport control
	if m.ctrl == nil {
		return m, nil
	}
	st := m.ctrl.State()

	switch key {
	case " ":
		if st.Playing {
			m.ctrl.Pause()
			return m, nil
		}
		if gen, ok := m.ctrl.Play(); ok {
			return m, tickCmd(m.resGen, gen)
		}
		m.status = "playback refused, try again"
		return m, nil

	case "left":
		if st.Scrubbing() {
			m.ctrl.Scrub(m.positionPct() - scrubStepPct)
			return m, nil
		}
		return m, m.seek(m.positionPct() - seekStepPct)

	case "right":
		if st.Scrubbing() {
			m.ctrl.Scrub(m.positionPct() + scrubStepPct)
			return m, nil
		}
		return m, m.seek(m.positionPct() + seekStepPct)

	case "s":
		if st.Scrubbing() {
			// Drag ends: commit the final position as a real seek
			tk, ok := m.ctrl.EndScrub(m.positionPct())
			if !ok {
				return m, m.resumeCmd()
			}
			return m, tea.Batch(confirmSeekCmd(m.resGen, tk), seekFallbackCmd(m.resGen, tk))
		}
		m.ctrl.BeginScrub()
		return m, nil

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m, m.seek(float64(key[0]-'0') * 10)

	case "[":
		m.ctrl.SetRate(prevRate(st.Rate))
		return m, nil

	case "]":
		m.ctrl.SetRate(nextRate(st.Rate))
		return m, nil

	case "-":
		m.ctrl.SetVolume(st.Volume - volumeStep)
		return m, nil

	case "+", "=":
		m.ctrl.SetVolume(st.Volume + volumeStep)
		return m, nil

	case "d":
		if m.open >= 0 && m.clips[m.open].Clip != nil {
			return m, exportCmd(m.opts.ExportDir, m.clips[m.open].Clip)
		}
	}

	return m, nil
}

// openSelected loads the clip under the cursor into the player.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.clips) {
		return m, nil
	}
	entry := m.clips[m.cursor]
	if entry.Status != StatusReady || m.cursor == m.open {
		return m, nil
	}
	return m, openCmd(m.cursor, entry.Clip, m.opts.NewResource)
}

// seek issues a percentage seek and arms the confirmation/fallback pair.
func (m Model) seek(pct float64) tea.Cmd {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	tk, ok := m.ctrl.SeekToPercent(pct)
	if !ok {
		return m.resumeCmd()
	}
	return tea.Batch(confirmSeekCmd(m.resGen, tk), seekFallbackCmd(m.resGen, tk))
}

// resumeCmd restarts the sync loop when a rejected seek left a playing
// transport without one; nil when the loop is not wanted.
func (m Model) resumeCmd() tea.Cmd {
	if gen, running := m.ctrl.ResumeSync(); running {
		return tickCmd(m.resGen, gen)
	}
	return nil
}

// positionPct is the playhead as a 0-100 fraction of the clip.
func (m Model) positionPct() float64 {
	st := m.ctrl.State()
	if st.Duration <= 0 {
		return 0
	}
	return st.CurrentTime / st.Duration * 100
}

func nextRate(rate float64) float64 {
	for i, r := range player.Rates {
		if r == rate && i < len(player.Rates)-1 {
			return player.Rates[i+1]
		}
	}
	return rate
}

func prevRate(rate float64) float64 {
	for i, r := range player.Rates {
		if r == rate && i > 0 {
			return player.Rates[i-1]
		}
	}
	return rate
}

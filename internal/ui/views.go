package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/snanayakkara/dictascope/internal/analyzer"
	"github.com/snanayakkara/dictascope/internal/player"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2B6CB0"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2B6CB0"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))

	goodStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00"))
	fairStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	poorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
)

func qualityStyle(q analyzer.Quality) lipgloss.Style {
	switch q {
	case analyzer.QualityGood:
		return goodStyle
	case analyzer.QualityFair:
		return fairStyle
	default:
		return poorStyle
	}
}

// View renders the session.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderSessionList())
	b.WriteString("\n")

	if m.open >= 0 && m.ctrl != nil {
		b.WriteString(m.renderPlayer())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Dictascope 🩺 Dictation Review")

	sub := fmt.Sprintf("%d clip(s)", len(m.clips))
	if m.opts.WatchDir != "" {
		sub += " · watching " + m.opts.WatchDir
	}
	return title + "\n" + subtitleStyle.Render(sub)
}

func (m Model) renderSessionList() string {
	var b strings.Builder
	for i, entry := range m.clips {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(m.renderClipLine(i, entry))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderClipLine(index int, entry ClipEntry) string {
	name := filepath.Base(entry.Path)
	open := ""
	if index == m.open {
		open = " ♪"
	}

	switch entry.Status {
	case StatusReady:
		tier := qualityStyle(entry.Report.Quality).Render(entry.Report.Quality.String())
		return fmt.Sprintf("%s  [%s] %s%s", name, tier, FormatTime(entry.Report.DurationSeconds), open)
	case StatusFailed:
		return fmt.Sprintf("%s  %s: %v", name, poorStyle.Render("unreadable"), entry.Err)
	case StatusAnalyzing:
		return name + "  analyzing..."
	default:
		return name + "  queued"
	}
}

func (m Model) renderPlayer() string {
	entry := m.clips[m.open]
	st := m.ctrl.State()

	width := m.width - 4
	if width < 10 {
		width = 10
	}
	if width > len(entry.Wave) {
		width = len(entry.Wave)
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(renderWaveform(ProjectWaveform(entry.Wave, st.CurrentTime, st.Duration, width)))
	b.WriteString("\n  ")
	b.WriteString(m.renderTransport(st))
	b.WriteString("\n")
	b.WriteString(m.renderQuality(entry.Report))
	return b.String()
}

func (m Model) renderTransport(st player.State) string {
	icon := "▶"
	if st.Playing {
		icon = "⏸"
	}

	line := fmt.Sprintf("%s  %s / %s  %g×  vol %d%%",
		icon, FormatTime(st.CurrentTime), FormatTime(st.Duration), st.Rate, int(st.Volume*100+0.5))

	switch st.Phase {
	case player.PhaseSeeking:
		line += subtitleStyle.Render("  seeking…")
	case player.PhaseScrubbing:
		line += subtitleStyle.Render("  scrub (←/→ move, s commits)")
	}
	return line
}

// renderQuality is the collapsible quality bar: the tier alone, or the
// full metric detail when expanded.
func (m Model) renderQuality(rep *analyzer.Report) string {
	var b strings.Builder
	b.WriteString("  Quality: ")
	b.WriteString(qualityStyle(rep.Quality).Render(rep.Quality.String()))
	if !m.detail {
		b.WriteString(subtitleStyle.Render("  (i for details)"))
		return b.String()
	}

	fmt.Fprintf(&b, "\n    duration      %s", FormatTime(rep.DurationSeconds))
	fmt.Fprintf(&b, "\n    size          %.1f KB", float64(rep.FileSizeBytes)/1024)
	fmt.Fprintf(&b, "\n    avg volume    %.4f", rep.AvgVolume)
	fmt.Fprintf(&b, "\n    silence       %.1fs", rep.SilenceDurationSeconds)
	fmt.Fprintf(&b, "\n    est. SNR      %.1f dB", rep.EstimatedSNRdB)
	fmt.Fprintf(&b, "\n    mains hum     %.1f dB above band (%s)", rep.HumLevelDB, rep.MainsHz)
	return b.String()
}

func (m Model) renderHelp() string {
	keys := "space play/pause · ←/→ seek · 0-9 jump · s scrub · [/] rate · -/+ vol · i details · d save · enter open · q quit"
	return helpStyle.Render(keys)
}

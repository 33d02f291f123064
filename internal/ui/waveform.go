package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/snanayakkara/dictascope/internal/analyzer"
)

// Bar is one renderable waveform column: a height normalised to [0,1]
// and whether its time slot has already been played.
type Bar struct {
	Height float64
	Played bool
}

// ProjectWaveform maps the amplitude envelope and current progress onto
// width renderable bars. Heights are normalised by the envelope
// maximum; a bar counts as played when its time fraction is at or
// before the playhead.
func ProjectWaveform(wave analyzer.Waveform, currentTime, duration float64, width int) []Bar {
	if width <= 0 || len(wave) == 0 {
		return nil
	}

	progress := 0.0
	if duration > 0 {
		progress = currentTime / duration
	}

	max := wave.Max()
	bars := make([]Bar, width)
	for i := range bars {
		v := wave[i*len(wave)/width]
		h := 0.0
		if max > 0 {
			h = v / max
		}
		bars[i] = Bar{
			Height: h,
			Played: float64(i)/float64(width) <= progress,
		}
	}
	return bars
}

// Eight block glyphs give eight height levels per character cell.
var waveformGlyphs = []rune("▁▂▃▄▅▆▇█")

var (
	playedBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2B6CB0"))
	unplayedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

func barGlyph(height float64) rune {
	level := int(height * float64(len(waveformGlyphs)-1))
	if level < 0 {
		level = 0
	}
	if level >= len(waveformGlyphs) {
		level = len(waveformGlyphs) - 1
	}
	return waveformGlyphs[level]
}

// renderWaveform draws the projected bars as one line of block glyphs.
// Played bars form a prefix, so the line splits into two styled runs.
func renderWaveform(bars []Bar) string {
	var played, unplayed strings.Builder
	for _, bar := range bars {
		if bar.Played {
			played.WriteRune(barGlyph(bar.Height))
		} else {
			unplayed.WriteRune(barGlyph(bar.Height))
		}
	}
	return playedBarStyle.Render(played.String()) + unplayedBarStyle.Render(unplayed.String())
}

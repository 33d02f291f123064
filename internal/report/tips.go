package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/snanayakkara/dictascope/internal/analyzer"
)

// RecordingTip is a single piece of actionable dictation advice derived
// from the clip measurements.
type RecordingTip struct {
	Priority int    // Higher = more important (1-10)
	Message  string // Human-readable advice (1-2 sentences)
	RuleID   string // Identifier for testing/logging (e.g., "level_too_quiet")
}

// MaxRecordingTips is the maximum number of tips to return.
const MaxRecordingTips = 5

// GenerateRecordingTips analyses the clip measurements and returns
// prioritised recording improvement suggestions.
func GenerateRecordingTips(rep *analyzer.Report, th analyzer.Thresholds) []RecordingTip {
	if rep == nil {
		return nil
	}

	var tips []RecordingTip
	fired := make(map[string]bool)

	rules := []func(*analyzer.Report, analyzer.Thresholds) *RecordingTip{
		tipLevelTooQuiet,
		tipLevelQuiet,
		tipExcessiveSilence,
		tipMostlySilence,
		tipPoorSNR,
		tipMainsHum,
		tipVeryShort,
	}

	for _, rule := range rules {
		if tip := rule(rep, th); tip != nil {
			tips = append(tips, *tip)
			fired[tip.RuleID] = true
		}
	}

	tips = applyExclusions(tips, fired)

	sort.Slice(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})

	if len(tips) > MaxRecordingTips {
		tips = tips[:MaxRecordingTips]
	}
	return tips
}

// applyExclusions removes tips that are redundant when a more specific
// tip has already fired. A clip that is almost entirely silence does
// not also need the moderate-silence or quiet-level warnings - the
// microphone probably never picked the speaker up at all.
func applyExclusions(tips []RecordingTip, fired map[string]bool) []RecordingTip {
	var result []RecordingTip
	for _, tip := range tips {
		switch tip.RuleID {
		case "excessive_silence", "level_quiet":
			if fired["mostly_silence"] {
				continue
			}
		case "poor_snr":
			if fired["level_too_quiet"] {
				continue
			}
		}
		result = append(result, tip)
	}
	return result
}

// wrapText wraps text at word boundaries to fit within maxWidth
// columns. Continuation lines are prefixed with indent.
func wrapText(text string, maxWidth int, indent string) string {
	words := strings.Fields(text)
	var lines []string
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent)
}

// tipLevelTooQuiet fires when the average level sits below the poor
// threshold - the dictation is likely unusable for transcription.
func tipLevelTooQuiet(rep *analyzer.Report, th analyzer.Thresholds) *RecordingTip {
	if rep.AvgVolume >= th.PoorVolume {
		return nil
	}
	return &RecordingTip{
		Priority: 10,
		RuleID:   "level_too_quiet",
		Message:  "Your dictations are barely audible - check that the correct microphone is selected and raise its input gain before recording again.",
	}
}

// tipLevelQuiet fires when the average level is between the poor and
// fair thresholds.
func tipLevelQuiet(rep *analyzer.Report, th analyzer.Thresholds) *RecordingTip {
	if rep.AvgVolume < th.PoorVolume || rep.AvgVolume >= th.FairVolume {
		return nil
	}
	return &RecordingTip{
		Priority: 8,
		RuleID:   "level_quiet",
		Message:  "Your dictation is a bit quiet - speaking closer to the microphone or raising its gain slightly would improve transcription accuracy.",
	}
}

// tipMostlySilence fires when the clip is dominated by silence.
func tipMostlySilence(rep *analyzer.Report, th analyzer.Thresholds) *RecordingTip {
	ratio := silenceRatio(rep)
	if ratio < th.PoorSilenceRatio {
		return nil
	}
	return &RecordingTip{
		Priority: 9,
		RuleID:   "mostly_silence",
		Message:  fmt.Sprintf("%.0f%% of this clip is silence - the microphone may not be picking you up, or recording started well before you began dictating.", ratio*100),
	}
}

// tipExcessiveSilence fires on a moderately silent clip.
func tipExcessiveSilence(rep *analyzer.Report, th analyzer.Thresholds) *RecordingTip {
	ratio := silenceRatio(rep)
	if ratio < th.FairSilenceRatio || ratio >= th.PoorSilenceRatio {
		return nil
	}
	return &RecordingTip{
		Priority: 6,
		RuleID:   "excessive_silence",
		Message:  "There are long pauses in this dictation. Pausing the recorder while you gather your thoughts keeps clips short and easier to review.",
	}
}

// tipPoorSNR fires when the voice-to-noise gap is critically small.
func tipPoorSNR(rep *analyzer.Report, th analyzer.Thresholds) *RecordingTip {
	if rep.EstimatedSNRdB >= th.PoorSNRdB {
		return nil
	}
	return &RecordingTip{
		Priority: 7,
		RuleID:   "poor_snr",
		Message:  "The gap between your voice and the background noise is very small. Move closer to the microphone and reduce background noise if possible.",
	}
}

// humAudibleDB is how far the mains probe must rise above the speech
// band before the hum tip fires.
const humAudibleDB = 20.0

// tipMainsHum fires when the mains-frequency probe stands well above
// the speech band average.
func tipMainsHum(rep *analyzer.Report, _ analyzer.Thresholds) *RecordingTip {
	if rep.HumLevelDB < humAudibleDB {
		return nil
	}
	return &RecordingTip{
		Priority: 5,
		RuleID:   "mains_hum",
		Message:  fmt.Sprintf("There's a constant %s hum in your recording - check for nearby power supplies, monitors, or chargers and move them further from your microphone.", rep.MainsHz),
	}
}

// minUsefulDuration is the shortest clip worth dictating; anything
// shorter was probably a misfire of the record button.
const minUsefulDuration = 1.0

func tipVeryShort(rep *analyzer.Report, _ analyzer.Thresholds) *RecordingTip {
	if rep.DurationSeconds >= minUsefulDuration {
		return nil
	}
	return &RecordingTip{
		Priority: 4,
		RuleID:   "very_short",
		Message:  "This clip is under a second long - it may have been recorded by accident.",
	}
}

func silenceRatio(rep *analyzer.Report) float64 {
	if rep.DurationSeconds <= 0 {
		return 0
	}
	return rep.SilenceDurationSeconds / rep.DurationSeconds
}

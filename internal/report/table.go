// Package report generates plain-text analysis reports for dictation
// clips, including a metric table and prioritised recording tips.

package report

import (
	"fmt"
	"math"
	"strings"
)

// MetricRow is a single row in the metric table. The value is a
// pre-formatted string so rows can mix precisions and notations.
type MetricRow struct {
	Label          string
	Value          string
	Unit           string
	Interpretation string
}

// MetricTable formats aligned label/value/unit rows with an optional
// interpretation column.
type MetricTable struct {
	Rows []MetricRow
}

// AddRow appends a pre-formatted row.
func (t *MetricTable) AddRow(label, value, unit, interpretation string) {
	t.Rows = append(t.Rows, MetricRow{
		Label:          label,
		Value:          value,
		Unit:           unit,
		Interpretation: interpretation,
	})
}

// AddMetricRow appends a numeric row, formatting the value. Pass
// math.NaN() for a missing measurement - it displays as "-".
func (t *MetricTable) AddMetricRow(label string, value float64, decimals int, unit, interpretation string) {
	t.AddRow(label, formatMetric(value, decimals), unit, interpretation)
}

// String renders the table: labels left-aligned, values right-aligned,
// units and interpretations trailing.
func (t *MetricTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	labelWidth, valueWidth, unitWidth := 0, 0, 0
	hasInterpretation := false
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
		if len(row.Unit) > unitWidth {
			unitWidth = len(row.Unit)
		}
		if row.Interpretation != "" {
			hasInterpretation = true
		}
	}

	var sb strings.Builder
	for _, row := range t.Rows {
		line := fmt.Sprintf("%-*s  %*s", labelWidth, row.Label, valueWidth, row.Value)
		if unitWidth > 0 {
			line += fmt.Sprintf("  %-*s", unitWidth, row.Unit)
		}
		if hasInterpretation && row.Interpretation != "" {
			line += "  " + row.Interpretation
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// MissingValue is the placeholder for unavailable measurements.
const MissingValue = "-"

// formatMetric formats a value to the given decimal places, switching
// to scientific notation for very small non-zero magnitudes and
// returning MissingValue for NaN/Inf.
func formatMetric(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	if value != 0 && math.Abs(value) < 0.0001 {
		return fmt.Sprintf("%.2e", value)
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

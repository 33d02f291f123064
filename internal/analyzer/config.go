package analyzer

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/snanayakkara/dictascope/internal/mains"
)

// Thresholds holds the quality classification cut-offs. The defaults are
// carried over from the original review tool for behavioural
// compatibility; none of them has a cited clinical or acoustic basis, so
// they are exposed here as tunables rather than baked in.
type Thresholds struct {
	// SilenceFloor is the |sample| level below which a sample counts as
	// near-silence, on the [-1,1] scale.
	SilenceFloor float64 `toml:"silence_floor"`

	// Volume tier cut-offs (mean absolute amplitude).
	PoorVolume float64 `toml:"poor_volume"`
	FairVolume float64 `toml:"fair_volume"`

	// SNR tier cut-offs in dB.
	PoorSNRdB float64 `toml:"poor_snr_db"`
	FairSNRdB float64 `toml:"fair_snr_db"`

	// Silence-duration tier cut-offs as a fraction of clip duration.
	PoorSilenceRatio float64 `toml:"poor_silence_ratio"`
	FairSilenceRatio float64 `toml:"fair_silence_ratio"`
}

// DefaultThresholds returns the upstream-compatible cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SilenceFloor:     0.01,
		PoorVolume:       0.005,
		FairVolume:       0.02,
		PoorSNRdB:        10,
		FairSNRdB:        20,
		PoorSilenceRatio: 0.8,
		FairSilenceRatio: 0.5,
	}
}

// DefaultWaveformPoints is the visual waveform resolution.
const DefaultWaveformPoints = 200

// Config configures a single analysis run.
type Config struct {
	WaveformPoints int        `toml:"waveform_points"`
	Thresholds     Thresholds `toml:"thresholds"`

	// MainsHz selects the hum probe frequency. Zero means "detect from
	// the local timezone" at analysis time.
	MainsHz mains.Hz `toml:"mains_hz"`
}

// DefaultConfig returns the standard analysis configuration.
func DefaultConfig() Config {
	return Config{
		WaveformPoints: DefaultWaveformPoints,
		Thresholds:     DefaultThresholds(),
	}
}

// LoadConfig reads threshold overrides from a TOML file on top of the
// defaults. Missing keys keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if cfg.WaveformPoints <= 0 {
		cfg.WaveformPoints = DefaultWaveformPoints
	}
	return cfg, nil
}

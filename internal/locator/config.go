package locator

import "time"

type Config struct {
	// PulseDuration is how long the glow stays on a located element.
	PulseDuration time.Duration `yaml:"pulse_duration"`
	// HugeHeight and HugeWidthRatio decide when a match is large enough
	// to search its descendants for a tighter one.
	HugeHeight     float64 `yaml:"huge_height"`
	HugeWidthRatio float64 `yaml:"huge_width_ratio"`
}

func DefaultConfig() Config {
	return Config{
		PulseDuration:  DefaultPulse,
		HugeHeight:     400,
		HugeWidthRatio: 0.7,
	}
}

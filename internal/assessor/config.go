package assessor

// Config holds runtime settings for the assessor. Keep small initially.
type Config struct {
	// ScoringVersion is stamped on every report so results can be traced
	// back to the rule set that produced them.
	ScoringVersion string `json:"scoring_version" yaml:"scoring_version"`
}

// DefaultConfig returns the current rule set version.
func DefaultConfig() Config {
	return Config{ScoringVersion: "v1.0.0"}
}

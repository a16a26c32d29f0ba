package analyzer

import "time"

const (
	DefaultBaseURL     = "https://api.x.ai/v1/"
	DefaultModel       = "grok-3"
	DefaultTemperature = 0.2
	// DefaultExcerptLen is how many characters of page text the model sees.
	DefaultExcerptLen = 2600
)

type Config struct {
	// APIKey is usually supplied through XAI_API_KEY rather than the file.
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	ExcerptLen  int           `yaml:"excerpt_len"`
	Timeout     time.Duration `yaml:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		ExcerptLen:  DefaultExcerptLen,
		Timeout:     60 * time.Second,
	}
}

// Configured reports whether an API key is set.
func (c Config) Configured() bool { return c.APIKey != "" }

package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config selects and tunes a WebClient backend.
// It is filled from app.Config without creating an import cycle.
type Config struct {
	Client    Client        `yaml:"client"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// chromedp only
	IdleAfter time.Duration `yaml:"idle_after"`
	Headless  bool          `yaml:"headless"`
}

// DefaultConfig returns a nethttp config with a 30s timeout.
func DefaultConfig() Config {
	return Config{
		Client:    ClientNetHTTP,
		Timeout:   30 * time.Second,
		UserAgent: "VeriCura/1.0 (+health credibility checker)",
		IdleAfter: 2 * time.Second,
		Headless:  true,
	}
}

package bridge

import "time"

type Config struct {
	// Timeout bounds one request, dial included.
	Timeout time.Duration `yaml:"timeout"`
}

func DefaultConfig() Config {
	return Config{Timeout: 10 * time.Second}
}

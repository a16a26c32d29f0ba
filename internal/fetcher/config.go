package fetcher

type Config struct {
	// MaxConcurrency bounds SnapshotAll. Values below 1 mean 4.
	MaxConcurrency int `yaml:"max_concurrency"`
}

func DefaultConfig() Config {
	return Config{MaxConcurrency: 4}
}

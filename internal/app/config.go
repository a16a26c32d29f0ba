package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/bridge"
	"github.com/karandeol-26/VeriCura/internal/enumerator"
	"github.com/karandeol-26/VeriCura/internal/fetcher"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// AppName names the config directory under the XDG config home.
const AppName = "vericura"

// ConfigFileName is the yaml file looked up in the config directory.
const ConfigFileName = "config.yaml"

// ErrConfigNotFound is returned by LoadConfigFile for a missing file.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config composes the per-package configs. Package configs are copied in
// by value so no package needs to import app.
type Config struct {
	// ServerAddr is the listen address of the HTTP API.
	ServerAddr string `yaml:"server_addr"`

	// SessionRetention is how long an idle session is kept before it is
	// dropped by the orchestrator. Zero keeps sessions until closed.
	SessionRetention time.Duration `yaml:"session_retention"`

	WebClient webclient.Config `yaml:"webclient"`
	Fetcher   fetcher.Config   `yaml:"fetcher"`
	Assessor  assessor.Config  `yaml:"assessor"`
	Analyzer  analyzer.Config  `yaml:"analyzer"`
	Locator   locator.Config   `yaml:"locator"`
	Bridge    bridge.Config    `yaml:"bridge"`

	// Crawl bounds the same-site link discovery of crawl scans.
	Crawl enumerator.Config `yaml:"crawl"`
}

// DefaultConfig returns a Config populated with development defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerAddr:       "localhost:8080",
		SessionRetention: 30 * time.Minute,
		WebClient:        webclient.DefaultConfig(),
		Fetcher:          fetcher.DefaultConfig(),
		Assessor:         assessor.DefaultConfig(),
		Analyzer:         analyzer.DefaultConfig(),
		Locator:          locator.DefaultConfig(),
		Bridge:           bridge.DefaultConfig(),
		Crawl:            enumerator.DefaultConfig(),
	}
}

// ConfigDir returns the XDG config directory for the application.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigPath is ConfigDir()/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LoadConfigFile overlays the yaml file at path onto cfg. Keys missing
// from the file keep the values already in cfg.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the runtime config: defaults, then the yaml file, then
// environment variables. A .env file in the working directory is read
// first when present. An empty path means DefaultConfigPath, which may be
// absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := LoadConfigFile(path, cfg); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, err
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg from XAI_API_KEY and VERICURA_* variables.
func ApplyEnv(cfg *Config) {
	cfg.Analyzer.APIKey = getEnv("XAI_API_KEY", cfg.Analyzer.APIKey)
	cfg.Analyzer.BaseURL = getEnv("VERICURA_AI_BASE_URL", cfg.Analyzer.BaseURL)
	cfg.Analyzer.Model = getEnv("VERICURA_AI_MODEL", cfg.Analyzer.Model)
	cfg.ServerAddr = getEnv("VERICURA_ADDR", cfg.ServerAddr)
	cfg.WebClient.Client = webclient.Client(getEnv("VERICURA_CLIENT", string(cfg.WebClient.Client)))
	cfg.Fetcher.MaxConcurrency = getEnvInt("VERICURA_CONCURRENCY", cfg.Fetcher.MaxConcurrency)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

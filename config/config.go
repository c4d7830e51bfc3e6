package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type ServiceConfig struct {
	BaseURL        string `toml:"base_url"`
	ReasoningPath  string `toml:"reasoning_path"`
	OCRPath        string `toml:"ocr_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type BackendConfig struct {
	Type      string `toml:"type"`
	Model     string `toml:"model,omitempty"`
	BaseURL   string `toml:"base_url,omitempty"`
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

type CaptureConfig struct {
	VoiceCommand string `toml:"voice_command"`
	MinOCRChars  int    `toml:"min_ocr_chars"`
}

type UserConfig struct {
	DataDirectory  string        `toml:"data_directory"`
	ProductContext string        `toml:"product_context,omitempty"`
	Service        ServiceConfig `toml:"service"`
	Backend        BackendConfig `toml:"backend"`
	Capture        CaptureConfig `toml:"capture"`
}

// Config is the resolved, read-only configuration for one process
type Config struct {
	DataDirectory  string
	ServiceURL     string
	ReasoningPath  string
	OCRPath        string
	RequestTimeout time.Duration
	Backend        string
	BackendModel   string
	BackendURL     string
	APIKeyEnv      string
	VoiceCommand   string
	MinOCRChars    int
	ProductContext string
	Debug          bool
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// APIKey resolves the model provider API key from the environment
func (c *Config) APIKey() string {
	env := c.APIKeyEnv
	if env == "" {
		switch strings.ToLower(c.Backend) {
		case "openai", "openrouter":
			env = "OPENAI_API_KEY"
		case "anthropic", "claude":
			env = "ANTHROPIC_API_KEY"
		default:
			return ""
		}
	}
	return os.Getenv(env)
}

// BackendBaseURL is the URL the configured backend talks to. The reasoning
// service uses the service URL; model providers use their own (or their default).
func (c *Config) BackendBaseURL() string {
	if c.Backend == "" || strings.EqualFold(c.Backend, "service") {
		return c.ServiceURL
	}
	return c.BackendURL
}

func (c *Config) applyEnvOverrides() {
	// VITE_API_BASE_URL keeps parity with the web front-end's environment
	if url := os.Getenv("VITE_API_BASE_URL"); url != "" {
		c.ServiceURL = url
	}
	if url := os.Getenv("INGREDI_API_BASE_URL"); url != "" {
		c.ServiceURL = url
	}
	if backend := os.Getenv("INGREDI_BACKEND"); backend != "" {
		c.Backend = backend
	}
	if model := os.Getenv("INGREDI_MODEL"); model != "" {
		c.BackendModel = model
	}
	if cmd := os.Getenv("INGREDI_VOICE_COMMAND"); cmd != "" {
		c.VoiceCommand = cmd
	}
	if dataDir := os.Getenv("INGREDI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	c.Debug = CheckDebug()
}

func CheckDebug() bool {
	debug := os.Getenv("INGREDI_DEBUG")
	return debug == "true" || debug == "1"
}

// Load reads the user config at path (default location when empty), creating
// it from the template on first run, then applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	userCfg, err := LoadUserConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := fromUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir()
	if err := EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func fromUserConfig(u *UserConfig) *Config {
	d := DefaultUserConfig()

	cfg := &Config{
		DataDirectory:  firstNonEmpty(u.DataDirectory, d.DataDirectory),
		ServiceURL:     strings.TrimSpace(u.Service.BaseURL),
		ReasoningPath:  firstNonEmpty(u.Service.ReasoningPath, d.Service.ReasoningPath),
		OCRPath:        firstNonEmpty(u.Service.OCRPath, d.Service.OCRPath),
		Backend:        firstNonEmpty(u.Backend.Type, d.Backend.Type),
		BackendModel:   u.Backend.Model,
		BackendURL:     u.Backend.BaseURL,
		APIKeyEnv:      u.Backend.APIKeyEnv,
		VoiceCommand:   u.Capture.VoiceCommand,
		MinOCRChars:    u.Capture.MinOCRChars,
		ProductContext: u.ProductContext,
	}

	timeout := u.Service.TimeoutSeconds
	if timeout <= 0 {
		timeout = d.Service.TimeoutSeconds
	}
	cfg.RequestTimeout = time.Duration(timeout) * time.Second

	if cfg.MinOCRChars <= 0 {
		cfg.MinOCRChars = d.Capture.MinOCRChars
	}
	return cfg
}

// Validate rejects configurations that cannot describe any backend
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "service", "ollama", "openai", "openrouter", "anthropic", "claude":
	default:
		return fmt.Errorf("unknown backend %q (want service, ollama, openai or anthropic)", c.Backend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/akshatworkmail12-bit/jarvis/internal/ratelimit"
)

type Config struct {
	Server     ServerConfig                    `yaml:"server"`
	LLM        LLMConfig                       `yaml:"llm"`
	Voice      VoiceConfig                     `yaml:"voice"`
	Files      FilesConfig                     `yaml:"files"`
	Database   DatabaseConfig                  `yaml:"database"`
	RateLimits map[string]ratelimit.ClassLimit `yaml:"rate_limits"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxBodySize int64  `yaml:"max_body_size"`
}

type LLMConfig struct {
	Provider        string `yaml:"provider"`
	APIKey          string `yaml:"api_key"`
	APIBase         string `yaml:"api_base"`
	Model           string `yaml:"model"`
	VisionModel     string `yaml:"vision_model"`
	EnableReasoning bool   `yaml:"enable_reasoning"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// Timeout bounds one LLM round trip.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type VoiceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"`
}

type FilesConfig struct {
	SearchLocations []string `yaml:"search_locations"`
	MaxResults      int      `yaml:"max_results"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Load reads the YAML config at path, applies .env / environment overrides
// for secrets, and fills defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_BASE"); v != "" {
		cfg.LLM.APIBase = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_VISION_MODEL"); v != "" {
		cfg.LLM.VisionModel = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 1 << 20
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openrouter"
	}
	if cfg.LLM.APIBase == "" {
		cfg.LLM.APIBase = "https://openrouter.ai/api/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "openai/gpt-oss-20b:free"
	}
	if cfg.LLM.VisionModel == "" {
		cfg.LLM.VisionModel = "gpt-4o"
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 30
	}
	if cfg.Voice.Command == "" {
		cfg.Voice.Command = defaultSpeechCommand()
	}
	if len(cfg.Files.SearchLocations) == 0 {
		cfg.Files.SearchLocations = defaultSearchLocations()
	}
	if cfg.Files.MaxResults == 0 {
		cfg.Files.MaxResults = 50
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/jarvis.db"
	}
	if len(cfg.RateLimits) == 0 {
		cfg.RateLimits = ratelimit.DefaultClasses()
	}
}

func defaultSearchLocations() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	names := []string{"Downloads", "Documents", "Desktop", "Pictures", "Music", "Videos"}
	locations := make([]string, 0, len(names))
	for _, n := range names {
		locations = append(locations, filepath.Join(home, n))
	}
	return locations
}

func defaultSpeechCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak"
}

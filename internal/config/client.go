package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const DefaultAPIURL = "http://localhost:4000"

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL   string `toml:"api_url"`
	Language string `toml:"language"`
	LogFile  string `toml:"log_file"`
}

// LoadClientConfig reads TASKS_API_URL, TASKS_LANG and TASKS_LOG_FILE from
// .env and the environment. Values found in the TOML file at path, when
// path is not empty, take precedence.
func LoadClientConfig(path string) (*ClientConfig, error) {
	_ = godotenv.Load(".env")

	cfg := &ClientConfig{
		APIURL:   getEnv("TASKS_API_URL", DefaultAPIURL),
		Language: getEnv("TASKS_LANG", "en"),
		LogFile:  os.Getenv("TASKS_LOG_FILE"),
	}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read client config: %w", err)
		}
		var fileCfg ClientConfig
		if err := toml.Unmarshal(content, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse client config: %w", err)
		}
		if fileCfg.APIURL != "" {
			cfg.APIURL = fileCfg.APIURL
		}
		if fileCfg.Language != "" {
			cfg.Language = fileCfg.Language
		}
		if fileCfg.LogFile != "" {
			cfg.LogFile = fileCfg.LogFile
		}
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

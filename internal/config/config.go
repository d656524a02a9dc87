package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds client configuration aggregated from env vars and an
// optional config file.
type Config struct {
	Server struct {
		URL     string
		Timeout time.Duration
	}
	Storage struct {
		Backend string // "bolt" or "sqlite"
		Path    string
	}
}

// Load reads configuration from environment variables (prefix TRACKR)
// and an optional config file in the working directory.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("TRACKR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.url", "http://localhost:8000/api")
	v.SetDefault("server.timeout", "10s")
	v.SetDefault("storage.backend", "bolt")
	v.SetDefault("storage.path", defaultStoragePath())

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.Storage.Backend {
	case "bolt", "sqlite":
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q (expected bolt or sqlite)", cfg.Storage.Backend)
	}

	return cfg, nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "trackr.db"
	}
	return home + "/.trackr.db"
}

// loadDotEnv populates the environment from a .env file without
// overriding variables that are already set.
func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:eq])
		value := strings.Trim(strings.TrimSpace(line[eq+1:]), `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}

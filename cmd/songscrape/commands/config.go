package commands

import (
	"carddraw-backend/internal/components/telemetry"
	"carddraw-backend/internal/scrapers/skillattack"
	"carddraw-backend/internal/scrapers/ziv"
	"carddraw-backend/pkg/configutil"
	"errors"
	"log/slog"
	"os"
	"time"
)

const config_name = "songscrape.json5"

type Config struct {
	SkillAttackUrl string `json:"skillattack_url"`
	ZivUrl         string `json:"ziv_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// applies to every request made to zenius-i-vanisher.com, 0 means unlimited
	RequestsPerSecond float64 `json:"requests_per_second"`
	// the most song page and remywiki requests that can be in flight at once
	Concurrency      int    `json:"concurrency"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	UserAgent        string `json:"user_agent"`

	Otlp telemetry.OtlpConfig `json:"otlp"`
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var defaultConfig = Config{
	SkillAttackUrl:    skillattack.DEFAULT_URL,
	ZivUrl:            ziv.DEFAULT_URL,
	TimeoutSeconds:    30,
	RequestsPerSecond: 4,
	Concurrency:       ziv.DEFAULT_CONCURRENCY,
	UserAgent:         ziv.DEFAULT_USER_AGENT,
}

// loadConfig reads the file at `path`, or looks for songscrape.json5 from the cwd
// upwards when path is empty. A missing file only means defaults.
func loadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		cfg, err = configutil.ReadConfig(path, defaultConfig)
	} else {
		cfg, err = configutil.ReadRecursively(config_name, defaultConfig)
	}
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		return defaultConfig, nil
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

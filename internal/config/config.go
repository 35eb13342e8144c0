package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RelPath is where the config file is searched for under the XDG config
// directories when no explicit path is given.
const RelPath = "clickchess/config.yaml"

type Config struct {
	Addr                string   `yaml:"addr"`
	AllowOrigins        []string `yaml:"allow-origins"`
	LogLevel            string   `yaml:"log-level"`
	MatchmakingInterval string   `yaml:"matchmaking-interval"`
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        []string{"http://localhost:5173"},
		LogLevel:            "info",
		MatchmakingInterval: "1s",
	}
}

// Load reads the config at path, or the XDG config file when path is empty.
// A missing XDG file is not an error; the defaults are used. Keys absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		found, err := xdg.SearchConfigFile(RelPath)
		if err != nil {
			logrus.Debug("no config file found, using defaults")
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("config loaded")
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	return nil
}

func (c Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

func (c Config) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.MatchmakingInterval)
	if err != nil {
		return 0, fmt.Errorf("matchmaking-interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("matchmaking-interval must be positive, got %s", d)
	}
	return d, nil
}

package config

import (
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"gopkg.in/yaml.v3"
)

// LoadClockmakerConfig reads a YAML session file over the defaults and validates the result.
func LoadClockmakerConfig(path string) (ClockmakerConfig, error) {
	cfg, err := NewClockmakerConfig()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithStackTraceAndPrefix(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WithStackTraceAndPrefix(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.WithStackTrace(err)
	}

	return cfg, nil
}

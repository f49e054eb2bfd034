package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel string `envconfig:"DECK_TEST_LOG_LEVEL" default:"debug"`
	// Reduced value log size keeps the scenario from reserving gigabytes.
	ValueLogFileSizeMB int64    `envconfig:"DECK_TEST_VLOG_MB" default:"16"`
	CensoredWords      []string `envconfig:"DECK_TEST_CENSORED_WORDS" default:"classified"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

// Package config loads the process configuration from configs/config.yml.
// A best-effort .env file is loaded into the process environment first, but
// its values are not copied into Config fields; keys missing from the YAML
// keep their Go zero values.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver        string `yaml:"driver"`
		URL           string `yaml:"url"`
		EncryptAtRest bool   `yaml:"encrypt_at_rest"`
	} `yaml:"database"`
	ModelsDirectory string `yaml:"models_directory"`
	DatasetPath     string `yaml:"dataset_path"`
	Thresholds      struct {
		Allow float64 `yaml:"allow"`
		Block float64 `yaml:"block"`
	} `yaml:"thresholds"`
	Retrain struct {
		GoldThreshold     int    `yaml:"gold_threshold"`
		AutoEnabled       bool   `yaml:"auto_enabled"`
		DefaultTemplate   string `yaml:"default_template"`
		SerializationMode string `yaml:"serialization_mode"`
		RedisURL          string `yaml:"redis_url"`
		CheckIntervalMs   int    `yaml:"check_interval_ms"`
		ErrorBackoffMs    int    `yaml:"error_backoff_ms"`
	} `yaml:"retrain"`
	Scoring struct {
		Workers         int `yaml:"workers"`
		NotReadyDelayMs int `yaml:"not_ready_delay_ms"`
		IdleDelayMs     int `yaml:"idle_delay_ms"`
		BusyDelayMs     int `yaml:"busy_delay_ms"`
		ErrorDelayMs    int `yaml:"error_delay_ms"`
	} `yaml:"scoring"`
	Simulator struct {
		Enabled    bool `yaml:"enabled"`
		IntervalMs int  `yaml:"interval_ms"`
		BatchSize  int  `yaml:"batch_size"`
	} `yaml:"simulator"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret             string `yaml:"jwt_secret"`
		TokenTTLMinutes       int    `yaml:"token_ttl_minutes"`
		ModeratorUsername     string `yaml:"moderator_username"`
		ModeratorPasswordHash string `yaml:"moderator_password_hash"`
	} `yaml:"auth"`
	Telemetry struct {
		OTLPEndpoint string `yaml:"otlp_endpoint"`
	} `yaml:"telemetry"`
}

// Load reads path as YAML. A missing .env alongside it is not an error;
// present .env values are exported into the process environment before
// the caller consults os.Getenv for anything not covered by the YAML tree.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return cfg, nil
}

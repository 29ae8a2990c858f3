package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Server   ServerConfig   `yaml:"server"`
	Sources  SourcesConfig  `yaml:"sources"`
	AI       AIConfig       `yaml:"ai"`
	Civic    CivicConfig    `yaml:"civic"`
	Sync     SyncConfig     `yaml:"sync"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	SyncToken string `yaml:"sync_token"`
}

type SourcesConfig struct {
	Congress   CongressConfig   `yaml:"congress"`
	GovTrack   GovTrackConfig   `yaml:"govtrack"`
	OpenStates OpenStatesConfig `yaml:"openstates"`
	Timeout    time.Duration    `yaml:"timeout"`
	Retry      RetryConfig      `yaml:"retry"`
}

type CongressConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Congress int    `yaml:"congress"`
	PageSize int    `yaml:"page_size"`
}

type GovTrackConfig struct {
	BaseURL      string `yaml:"base_url"`
	PageSize     int    `yaml:"page_size"`
	LookbackDays int    `yaml:"lookback_days"`
}

type OpenStatesConfig struct {
	BaseURL       string   `yaml:"base_url"`
	APIKey        string   `yaml:"api_key"`
	Jurisdictions []string `yaml:"jurisdictions"`
	PerPage       int      `yaml:"per_page"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type AIConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type CivicConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	// Interval between scheduled orchestrator runs; 0 disables scheduling
	// and leaves syncing to the manual /sync endpoint.
	Interval time.Duration `yaml:"interval"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Sources.Congress.BaseURL == "" {
		c.Sources.Congress.BaseURL = "https://api.congress.gov/v3"
	}
	if c.Sources.Congress.Congress == 0 {
		c.Sources.Congress.Congress = 119
	}
	if c.Sources.Congress.PageSize == 0 {
		c.Sources.Congress.PageSize = 250
	}
	if c.Sources.GovTrack.BaseURL == "" {
		c.Sources.GovTrack.BaseURL = "https://www.govtrack.us/api/v2"
	}
	if c.Sources.GovTrack.PageSize == 0 {
		c.Sources.GovTrack.PageSize = 250
	}
	if c.Sources.GovTrack.LookbackDays == 0 {
		c.Sources.GovTrack.LookbackDays = 30
	}
	if c.Sources.OpenStates.BaseURL == "" {
		c.Sources.OpenStates.BaseURL = "https://v3.openstates.org"
	}
	if len(c.Sources.OpenStates.Jurisdictions) == 0 {
		c.Sources.OpenStates.Jurisdictions = []string{"ca", "ny", "tx", "fl"}
	}
	if c.Sources.OpenStates.PerPage == 0 {
		c.Sources.OpenStates.PerPage = 50
	}
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 30 * time.Second
	}
	if c.Sources.Retry.MaxAttempts == 0 {
		c.Sources.Retry.MaxAttempts = 3
	}
	if c.Sources.Retry.InitialBackoff == 0 {
		c.Sources.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Sources.Retry.MaxBackoff == 0 {
		c.Sources.Retry.MaxBackoff = 30 * time.Second
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://ai.gateway.lovable.dev/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "google/gemini-2.5-flash"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 60 * time.Second
	}
	if c.Civic.BaseURL == "" {
		c.Civic.BaseURL = "https://civicinfo.googleapis.com/civicinfo/v2"
	}
	if c.Civic.Timeout == 0 {
		c.Civic.Timeout = 15 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

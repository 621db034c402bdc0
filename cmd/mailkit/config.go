package main

import (
	"github.com/mailkit/mailkit/config"
	"github.com/mailkit/mailkit/logger"
	"github.com/mailkit/mailkit/validation"
)

// AppConfig is the full configuration for the mailkit CLI.
type AppConfig struct {
	Base          config.BaseConfig   `yaml:"base" mapstructure:"base"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Sender        SenderConfig        `yaml:"sender" mapstructure:"sender"`
	Pipelines     PipelinesConfig     `yaml:"pipelines" mapstructure:"pipelines"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// SenderConfig configures the default signature identity.
type SenderConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// PipelinesConfig locates named pipeline definition files.
type PipelinesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ObservabilityConfig configures the OTLP exporters.
type ObservabilityConfig struct {
	Tracing ExporterConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics ExporterConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ExporterConfig is a single exporter toggle with its endpoint.
type ExporterConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
}

// ApplyDefaults applies default values to all sections.
func (c *AppConfig) ApplyDefaults() {
	if c.Base.Name == "" {
		c.Base.Name = serviceName
	}
	c.Base.ApplyDefaults()
	c.Logging.ApplyDefaults()
	if c.Pipelines.Dir == "" {
		c.Pipelines.Dir = "pipelines"
	}
	if c.Observability.Tracing.Endpoint == "" {
		c.Observability.Tracing.Endpoint = "localhost:4318"
	}
	if c.Observability.Metrics.Endpoint == "" {
		c.Observability.Metrics.Endpoint = "localhost:4318"
	}
}

// Validate validates the configuration after defaults are applied.
func (c *AppConfig) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// loadConfig loads the CLI configuration, layering file, env file and
// environment overrides the usual way. An explicit path wins over the
// default search locations.
func loadConfig(path string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	cfg := &AppConfig{}
	if err := config.Load(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

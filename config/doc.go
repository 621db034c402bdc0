// Package config loads mailkit configuration from YAML files and the
// environment.
//
// Load searches standard locations for a config.yml and a .env file,
// applies MAILKIT_-prefixed environment overrides, and unmarshals the
// result into the caller's struct:
//
//	var cfg AppConfig
//	err := config.Load("mailkit", &cfg)
//
// Explicit file paths and a test filesystem can be injected through
// functional options.
package config

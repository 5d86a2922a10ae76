// Package handlers implements the CLI commands. Commands in the commands
// package only parse flags and call into here.
package handlers

import (
	"github.com/30Piraten/cicd/config"
)

// loadConfig loads the env file, then the configuration, then checks that
// every required setting is present.
func loadConfig(configPath, envFile string) (*config.Config, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

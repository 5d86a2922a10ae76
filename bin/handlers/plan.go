package handlers

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan writes the records a provisioning run would submit, as YAML, without
// calling AWS. The GitHub token is masked.
func Plan(w io.Writer, configPath, envFile string) error {
	cfg, err := loadConfig(configPath, envFile)
	if err != nil {
		return err
	}

	// a token stored in Secrets Manager is not read here; the mask stands in for it
	token := cfg.GitHub.Token
	if token == "" {
		token = cfg.GitHub.TokenSecret
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Plan(token).Redacted()); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}

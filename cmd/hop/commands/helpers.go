// Package commands implements the hop CLI subcommands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hopinc/hop-go/internal/constants"
	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/hopinc/hop-go/pkg/hopclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated       = errors.New("not authenticated, run 'hop auth login' or pass --token")
	ErrDeploymentIDRequired   = errors.New("deployment id is required")
	ErrSecretNameRequired     = errors.New("secret name is required")
	ErrChannelIDRequired      = errors.New("channel id is required")
	ErrEventNameRequired      = errors.New("event name is required (--event)")
	ErrWebhookURLRequired     = errors.New("webhook URL is required (--url)")
	ErrDomainRequired         = errors.New("domain is required (--domain)")
	ErrGatewayTargetPort      = errors.New("target port is required (--port)")
	ErrImageNameRequired      = errors.New("image name is required")
	ErrRoomNameRequired       = errors.New("room name is required")
	ErrDeploymentNameRequired = errors.New("deployment name is required (--name)")
	ErrImageRequired          = errors.New("image is required (--image)")
)

// cliConfig is the persisted CLI state written by 'hop auth login'.
type cliConfig struct {
	Token   string `yaml:"token,omitempty"`
	Project string `yaml:"project,omitempty"`
	API     string `yaml:"api,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".hop", "config.yml"), nil
}

func loadCLIConfig() (*cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cliConfig{}, nil
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	var config cliConfig

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &config, nil
}

func saveCLIConfig(config *cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// createClient builds an API client from flags, environment, and the saved
// config, in that order of precedence.
func createClient() (hop.Client, error) {
	token := viper.GetString("token")
	project := viper.GetString("project")
	api := viper.GetString("api")

	if token == "" || project == "" || api == "" {
		saved, err := loadCLIConfig()
		if err != nil {
			return nil, err
		}

		if token == "" {
			token = saved.Token
		}

		if project == "" {
			project = saved.Project
		}

		if api == "" {
			api = saved.API
		}
	}

	if token == "" {
		return nil, ErrNotAuthenticated
	}

	return hopclient.New(&hop.Config{
		Token:       token,
		ProjectID:   project,
		BaseURL:     api,
		HTTPTimeout: constants.DefaultHTTPTimeout,
	})
}

// renderOutput writes value as JSON or YAML when the --output flag asks for
// it and reports whether it handled the rendering. Table output stays with
// the caller.
func renderOutput(value any) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(value)
		if err != nil {
			return true, fmt.Errorf("encoding json: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		err := yaml.NewEncoder(os.Stdout).Encode(value)
		if err != nil {
			return true, fmt.Errorf("encoding yaml: %w", err)
		}

		return true, nil
	}

	return false, nil
}

// formatTime renders timestamps consistently in table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	return t.Format(time.RFC3339)
}

// truncate shortens s for table cells.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit-3] + "..."
}

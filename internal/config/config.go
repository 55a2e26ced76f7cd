// Package config handles agent identity configuration. The agent name
// identifies work in the task registry and in branch names; it lives in
// a per-user config file, not in the repository.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrNotInitialized indicates no agent identity has been configured.
var ErrNotInitialized = errors.New("agent not initialized: run 'gaffer init <name>' first")

// Agent is the process-local agent identity.
type Agent struct {
	Name string `mapstructure:"name"`
}

// Dir returns the gaffer config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gaffer")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "gaffer")
	}
	return filepath.Join(home, ".config", "gaffer")
}

// Path returns the path to the agent config file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the agent identity from disk. Returns ErrNotInitialized
// when no config file exists.
func Load() (*Agent, error) {
	v := viper.New()
	v.SetConfigFile(Path())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("reading agent config: %w", err)
	}

	agent := &Agent{}
	if err := v.Unmarshal(agent); err != nil {
		return nil, fmt.Errorf("unmarshaling agent config: %w", err)
	}
	if agent.Name == "" {
		return nil, ErrNotInitialized
	}
	return agent, nil
}

// Save writes the agent identity to the user config file, creating the
// config directory if needed.
func (a *Agent) Save() error {
	if err := os.MkdirAll(Dir(), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(Path())
	v.Set("name", a.Name)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing agent config: %w", err)
	}
	return nil
}

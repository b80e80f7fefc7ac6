package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// ExtraEnv returns the environment to add to toolchain processes: the
// env_file entries overlaid with the env map.
func (c *Config) ExtraEnv() (map[string]string, error) {
	env := make(map[string]string)

	if c.EnvFile != "" {
		fileEnv, err := godotenv.Read(c.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", c.EnvFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}

	for k, v := range c.Env {
		env[k] = v
	}
	return env, nil
}

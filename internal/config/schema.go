// Package config provides configuration loading and validation for rustcfg.yaml.
package config

// Config represents the complete rustcfg.yaml configuration.
type Config struct {
	Sysroot      string            `yaml:"sysroot,omitempty"`
	ManifestPath string            `yaml:"manifest_path,omitempty"`
	Strategy     string            `yaml:"strategy,omitempty"`
	Targets      []string          `yaml:"targets,omitempty"`
	Env          map[string]string `yaml:"env,omitempty"`
	EnvFile      string            `yaml:"env_file,omitempty"`

	// Dir is the directory of the loaded file; relative paths resolve against it.
	Dir string `yaml:"-"`
}

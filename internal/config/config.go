// Package config loads the optional jsv configuration file.
package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

const DefaultConfigFile = "jsv.yml"

// Config holds the tool-level settings. Everything is optional; zero values
// fall back to library defaults.
type Config struct {
	// Formats maps additional format names to regular expressions. Each
	// entry is registered with the engine alongside the built-in formats.
	Formats map[string]string `yaml:"formats"`

	// MaxReferenceDepth overrides the engine's $ref expansion ceiling.
	MaxReferenceDepth int `yaml:"maxReferenceDepth"`

	// LogFile overrides where the structured debug log is written.
	LogFile string `yaml:"logFile"`
}

// Load reads and validates a configuration file. A missing file at the
// default path is not an error; an explicitly named file must exist.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, &NotFoundError{Path: path}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &InvalidConfigError{Path: path, Wrapped: err}
	}

	for name, pattern := range cfg.Formats {
		if _, reErr := regexp.Compile(pattern); reErr != nil {
			return nil, &InvalidFormatPatternError{Name: name, Pattern: pattern}
		}
	}

	if cfg.MaxReferenceDepth < 0 {
		return nil, &InvalidDepthError{Depth: cfg.MaxReferenceDepth}
	}

	return &cfg, nil
}

// SchemaOptions converts the configuration into engine options.
func (c *Config) SchemaOptions() []jsonschema.Option {
	var opts []jsonschema.Option

	for name, pattern := range c.Formats {
		// Patterns were checked during Load.
		re := regexp.MustCompile(pattern)
		opts = append(opts, jsonschema.WithFormat(name, func(v any) bool {
			str, ok := v.(string)
			if !ok {
				return true
			}
			return re.MatchString(str)
		}))
	}

	if c.MaxReferenceDepth > 0 {
		opts = append(opts, jsonschema.WithMaxReferenceDepth(c.MaxReferenceDepth))
	}

	return opts
}

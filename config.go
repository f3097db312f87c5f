package courseops

import (
	"context"
	"fmt"

	"github.com/courseops/courseops/service/cleaner"
	"github.com/courseops/courseops/service/meta"
)

// DefaultTexInputs is the search path handed to every invoked LaTeX tool via
// the TEXINPUTS environment variable. The trailing colon keeps the default
// search path appended.
const DefaultTexInputs = "/usr/local/share/courseops/texmf//:"

// Config is a serialisable representation of the toolkit configuration. It
// can be populated from JSON or YAML; zero-value fields inherit their
// package defaults.
type Config struct {
	// SettingsURL locates the editor settings document declaring recipes
	// and tool definitions.
	SettingsURL string `json:"settings" yaml:"settings"`
	// Recipe selects a recipe by name; empty selects the first declared.
	Recipe string `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	// OutDir is the value substituted for the output directory placeholder.
	OutDir string `json:"outDir,omitempty" yaml:"outDir,omitempty"`
	// TexInputs is exported to every tool process; ${env.KEY} expressions
	// are expanded at service construction.
	TexInputs string `json:"texInputs,omitempty" yaml:"texInputs,omitempty"`
	// KeepSuffixes lists the file suffixes cleanup passes preserve.
	KeepSuffixes []string `json:"keepSuffixes,omitempty" yaml:"keepSuffixes,omitempty"`
	// TimeoutMs bounds a single tool invocation; zero means unbounded.
	TimeoutMs int `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	// ProjectURL is the site project root the notebook filters operate on.
	ProjectURL string `json:"project,omitempty" yaml:"project,omitempty"`

	Processor ProcessorConfig `json:"processor" yaml:"processor"`
}

// ProcessorConfig controls the document worker pool.
type ProcessorConfig struct {
	WorkerCount int `json:"workers" yaml:"workers"`
}

// DefaultConfig returns a Config populated with package defaults. Callers
// may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		SettingsURL:  ".vscode/settings.json",
		OutDir:       ".",
		TexInputs:    DefaultTexInputs,
		KeepSuffixes: cleaner.DefaultKeepSuffixes,
		ProjectURL:   ".",
		Processor:    ProcessorConfig{WorkerCount: 4},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.SettingsURL == "" {
		return fmt.Errorf("settings URL is required")
	}
	if c.Processor.WorkerCount <= 0 {
		return fmt.Errorf("processor.workers must be > 0")
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("timeoutMs must be >= 0")
	}
	return nil
}

// Init fills zero-value fields with defaults and expands environment
// expressions.
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.SettingsURL == "" {
		c.SettingsURL = defaults.SettingsURL
	}
	if c.OutDir == "" {
		c.OutDir = defaults.OutDir
	}
	if c.TexInputs == "" {
		c.TexInputs = defaults.TexInputs
	}
	if len(c.KeepSuffixes) == 0 {
		c.KeepSuffixes = defaults.KeepSuffixes
	}
	if c.ProjectURL == "" {
		c.ProjectURL = defaults.ProjectURL
	}
	if c.Processor.WorkerCount == 0 {
		c.Processor.WorkerCount = defaults.Processor.WorkerCount
	}
	c.TexInputs = meta.ExpandEnv(c.TexInputs)
}

// LoadConfig reads a configuration document (JSON or YAML by extension).
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	config := &Config{}
	if err := meta.New(nil, "").Load(ctx, URL, config); err != nil {
		return nil, err
	}
	config.Init()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration at %s: %w", URL, err)
	}
	return config, nil
}

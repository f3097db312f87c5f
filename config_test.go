package courseops

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestConfig_InitAndValidate(t *testing.T) {
	config := &Config{}
	config.Init()
	require.NoError(t, config.Validate())
	assert.Equal(t, DefaultTexInputs, config.TexInputs)
	assert.Equal(t, ".", config.OutDir)
	assert.Equal(t, []string{".tex", ".svg"}, config.KeepSuffixes)
	assert.Equal(t, 4, config.Processor.WorkerCount)
}

func TestConfig_InitExpandsEnv(t *testing.T) {
	t.Setenv("COURSEOPS_TEXMF", "/opt/texmf")
	config := &Config{TexInputs: "${env.COURSEOPS_TEXMF}//:"}
	config.Init()
	assert.Equal(t, "/opt/texmf//:", config.TexInputs)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing settings", mutate: func(c *Config) { c.SettingsURL = "" }},
		{name: "zero workers", mutate: func(c *Config) { c.Processor.WorkerCount = 0 }},
		{name: "negative timeout", mutate: func(c *Config) { c.TimeoutMs = -1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/config/courseops.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0644, strings.NewReader(
		"settings: conf/settings.json\nrecipe: tikz\nprocessor:\n  workers: 2\n")))

	config, err := LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "conf/settings.json", config.SettingsURL)
	assert.Equal(t, "tikz", config.Recipe)
	assert.Equal(t, 2, config.Processor.WorkerCount)
	// defaults fill the gaps
	assert.Equal(t, DefaultTexInputs, config.TexInputs)

	_, err = LoadConfig(ctx, "mem://localhost/config/missing.yaml")
	assert.Error(t, err)
}

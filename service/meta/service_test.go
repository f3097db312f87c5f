package meta

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()

	type doc struct {
		Name  string   `json:"name" yaml:"name"`
		Tools []string `json:"tools" yaml:"tools"`
	}

	err := fs.Upload(ctx, "mem://localhost/meta/settings.json", 0644,
		strings.NewReader(`{"name":"default","tools":["latex"],"other":"ignored"}`))
	require.NoError(t, err)
	err = fs.Upload(ctx, "mem://localhost/meta/settings.yaml", 0644,
		strings.NewReader("name: default\ntools:\n  - latex\n"))
	require.NoError(t, err)

	service := New(fs, "mem://localhost/meta")

	var fromJSON doc
	require.NoError(t, service.Load(ctx, "settings.json", &fromJSON))
	assert.Equal(t, doc{Name: "default", Tools: []string{"latex"}}, fromJSON)

	var fromYAML doc
	require.NoError(t, service.Load(ctx, "settings.yaml", &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)

	var target doc
	assert.Error(t, service.Load(ctx, "missing.json", &target))

	// shape mismatch is a parse error
	err = fs.Upload(ctx, "mem://localhost/meta/broken.json", 0644,
		strings.NewReader(`{"name":"default","tools":"latex"}`))
	require.NoError(t, err)
	assert.Error(t, service.Load(ctx, "broken.json", &target))
}

func TestService_Resolve(t *testing.T) {
	service := New(nil, "mem://localhost/meta")
	assert.Equal(t, "mem://localhost/meta/settings.json", service.Resolve("settings.json"))
	assert.Equal(t, "/etc/settings.json", service.Resolve("/etc/settings.json"))
	assert.Equal(t, "file:///tmp/x.json", service.Resolve("file:///tmp/x.json"))
}

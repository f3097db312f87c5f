package cleaner

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestService_Clean(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/cleaner/figures"
	for _, name := range []string{"a.tex", "b.svg", "c.pdf", "d.log", "e.aux"} {
		require.NoError(t, fs.Upload(ctx, baseURL+"/"+name, 0644, strings.NewReader(name)))
	}
	// nested files are out of scope for the non-recursive walk
	require.NoError(t, fs.Upload(ctx, baseURL+"/nested/f.pdf", 0644, strings.NewReader("f")))

	service := New(fs)
	removed, err := service.Clean(ctx, baseURL)
	require.NoError(t, err)
	sort.Strings(removed)
	assert.Equal(t, []string{"c.pdf", "d.log", "e.aux"}, removed)

	for name, expected := range map[string]bool{
		"a.tex":        true,
		"b.svg":        true,
		"c.pdf":        false,
		"d.log":        false,
		"nested/f.pdf": true,
	} {
		ok, err := fs.Exists(ctx, baseURL+"/"+name)
		require.NoError(t, err)
		assert.Equal(t, expected, ok, name)
	}

	// a second pass is a no-op
	removed, err = service.Clean(ctx, baseURL)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestService_CleanMissingDir(t *testing.T) {
	service := New(afs.New())
	_, err := service.Clean(context.Background(), "mem://localhost/cleaner/missing")
	assert.Error(t, err)
}

func TestService_Keeps(t *testing.T) {
	service := New(nil, WithKeepSuffixes(".qmd"))
	assert.True(t, service.Keeps("doc.qmd"))
	assert.False(t, service.Keeps("doc.tex"))
}

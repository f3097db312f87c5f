package model

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpansion_Apply(t *testing.T) {
	doc := NewDocument("/work/figures/arch.tex")
	expansion := NewExpansion(".", doc)

	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "doc placeholder",
			value:    "%DOC%",
			expected: "/work/figures/arch.tex",
		},
		{
			name:     "docfile placeholder",
			value:    "%DOCFILE%",
			expected: "arch",
		},
		{
			name:     "outdir placeholder",
			value:    "-output-directory=%OUTDIR%",
			expected: "-output-directory=.",
		},
		{
			name:     "multiple placeholders in one token",
			value:    "%OUTDIR%/%DOCFILE%.pdf",
			expected: "./arch.pdf",
		},
		{
			name:     "no placeholder passes through",
			value:    "-interaction=nonstopmode",
			expected: "-interaction=nonstopmode",
		},
		{
			name:     "repeated occurrences all replaced",
			value:    "%DOCFILE%-%DOCFILE%",
			expected: "arch-arch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := expansion.Apply(tc.value)
			assert.Equal(t, tc.expected, actual)
			assert.NotContains(t, actual, "%DOC%")
		})
	}
}

func TestExpansion_Expand(t *testing.T) {
	doc := NewDocument("fig/flow.tex")
	expansion := NewExpansion(".", doc)
	template := []string{"pdflatex", "-interaction=nonstopmode", "%DOC%"}
	expanded := expansion.Expand(template)
	assert.Equal(t, []string{"pdflatex", "-interaction=nonstopmode", "fig/flow.tex"}, expanded)
	// the template itself stays untouched
	assert.Equal(t, "%DOC%", template[2])
}

// Re-appending the original extension reconstructs the file name.
func TestDocument_StemRoundTrip(t *testing.T) {
	for _, name := range []string{"arch.tex", "flow.diagram.tex", "plain"} {
		doc := NewDocument("/figures/" + name)
		assert.Equal(t, name, doc.Stem()+path.Ext(name))
	}
}

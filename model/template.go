package model

import "strings"

// Placeholder tokens recognised in tool argument templates.
const (
	PlaceholderOutDir  = "%OUTDIR%"
	PlaceholderDoc     = "%DOC%"
	PlaceholderDocFile = "%DOCFILE%"
)

// Expansion carries the per-document values substituted into an argument
// template. Substitution is purely textual and cannot fail.
type Expansion struct {
	OutDir  string
	Doc     string
	DocFile string
}

// NewExpansion builds the expansion for one document.
func NewExpansion(outDir string, doc *Document) *Expansion {
	return &Expansion{OutDir: outDir, Doc: doc.URL, DocFile: doc.Stem()}
}

// Apply replaces every placeholder occurrence in value. Passes run in a fixed
// order (OUTDIR, DOC, DOCFILE); each pass operates on the output of the
// previous one. A value without placeholders passes through unchanged.
func (e *Expansion) Apply(value string) string {
	value = strings.ReplaceAll(value, PlaceholderOutDir, e.OutDir)
	value = strings.ReplaceAll(value, PlaceholderDoc, e.Doc)
	value = strings.ReplaceAll(value, PlaceholderDocFile, e.DocFile)
	return value
}

// Expand applies the expansion to every token of a template, returning a new
// slice.
func (e *Expansion) Expand(template []string) []string {
	expanded := make([]string, len(template))
	for i, token := range template {
		expanded[i] = e.Apply(token)
	}
	return expanded
}

package model

import (
	"path"
	"strings"
)

// Document represents one source file scheduled for processing.
type Document struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// NewDocument creates a document from its URL/path.
func NewDocument(URL string) *Document {
	return &Document{URL: URL, Name: path.Base(URL)}
}

// Stem returns the file name with its final extension removed.
func (d *Document) Stem() string {
	return strings.TrimSuffix(d.Name, path.Ext(d.Name))
}

// Package meta loads configuration documents through the afs storage
// abstraction so that settings can live on any supported scheme (file, mem,
// s3, …). Decoding is selected by extension: .json documents are decoded
// strictly with encoding/json, .yaml/.yml with yaml.v3.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads and decodes documents relative to an optional base URL.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// Resolve joins a relative location with the base URL. Absolute paths and
// locations that already carry a scheme are returned unchanged.
func (s *Service) Resolve(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || path.IsAbs(location) {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Load downloads the document at URL and decodes it into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	URL = s.Resolve(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", URL, err)
	}
	if err := Decode(URL, data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}

// Decode unmarshals data into target based on the location extension. A type
// mismatch against the target shape is an error, not a default; unknown
// sibling keys are tolerated so that shared documents (e.g. editor settings)
// can carry unrelated sections.
func Decode(location string, data []byte, target interface{}) error {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, target)
	default:
		return json.Unmarshal(data, target)
	}
}

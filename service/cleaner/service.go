// Package cleaner removes intermediate build artifacts from a working
// directory, keeping only source documents and previously generated images.
package cleaner

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// DefaultKeepSuffixes lists the file suffixes a cleanup pass preserves.
var DefaultKeepSuffixes = []string{".tex", ".svg"}

// Service deletes every immediate file in a directory whose name does not
// carry one of the keep suffixes. The walk is non-recursive and there is no
// locking against concurrent writers.
type Service struct {
	fs   afs.Service
	keep []string
}

// Option customises the service.
type Option func(*Service)

// WithKeepSuffixes overrides the preserved suffix set.
func WithKeepSuffixes(suffixes ...string) Option {
	return func(s *Service) {
		s.keep = suffixes
	}
}

// New creates a cleaner service.
func New(fs afs.Service, options ...Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	ret := &Service{fs: fs, keep: DefaultKeepSuffixes}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Keeps reports whether a file name survives cleanup.
func (s *Service) Keeps(name string) bool {
	for _, suffix := range s.keep {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Clean deletes non-kept immediate files in dirURL and returns the deleted
// names. A missing directory or a failed delete surfaces as an error.
func (s *Service) Clean(ctx context.Context, dirURL string) ([]string, error) {
	objects, err := s.fs.List(ctx, dirURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dirURL, err)
	}
	var removed []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		name := object.Name()
		if s.Keeps(name) {
			continue
		}
		if err := s.fs.Delete(ctx, object.URL()); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", url.Path(object.URL()), err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

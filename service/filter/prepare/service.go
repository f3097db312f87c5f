// Package prepare implements the pre-render filter that publishes solution
// documents as student-facing application sheets: generated artifacts from
// the previous render are removed and every input inside a Solutions
// directory is copied to the sibling applications directory, with the -sol
// suffix stripped from <name>-sol.qmd files.
package prepare

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/courseops/courseops/report"
)

const (
	Name = "prepare"

	solutionsDir   = "Solutions"
	solutionSuffix = "-sol.qmd"
	qmdSuffix      = ".qmd"
)

// Service is the prepare filter.
type Service struct {
	fs      afs.Service
	baseURL string
	appsDir string
	listing string
}

// Option customises the service.
type Option func(*Service)

// WithApplicationsDir sets the directory (relative to the project base) that
// receives the published sheets.
func WithApplicationsDir(dir string) Option {
	return func(s *Service) {
		s.appsDir = dir
	}
}

// WithListing sets the generated listing file removed before a render.
func WithListing(name string) Option {
	return func(s *Service) {
		s.listing = name
	}
}

// New creates a prepare filter rooted at baseURL.
func New(fs afs.Service, baseURL string, options ...Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	ret := &Service{
		fs:      fs,
		baseURL: baseURL,
		appsDir: "Courses/Applications",
		listing: "applications.yml",
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Name returns the filter name.
func (s *Service) Name() string {
	return Name
}

// Apply removes stale generated documents and republishes solution inputs.
// Filesystem errors during the cleanup phase are fatal; a single file that
// cannot be copied is recorded and the filter continues.
func (s *Service) Apply(ctx context.Context, files []string) (*report.FilterReport, error) {
	rep := report.NewFilterReport(Name)
	if err := s.removeStale(ctx); err != nil {
		return rep, err
	}
	for _, file := range files {
		target, ok := s.solutionTarget(file)
		if !ok {
			rep.Skip(file)
			continue
		}
		if err := s.publish(ctx, file, target); err != nil {
			rep.Fail(file)
			continue
		}
		rep.Process(file)
	}
	return rep, nil
}

// removeStale deletes the generated listing and every generated sheet from
// the applications directory.
func (s *Service) removeStale(ctx context.Context) error {
	listingURL := url.Join(s.baseURL, s.listing)
	if ok, _ := s.fs.Exists(ctx, listingURL); ok {
		if err := s.fs.Delete(ctx, listingURL); err != nil {
			return fmt.Errorf("failed to delete %s: %w", s.listing, err)
		}
	}
	appsURL := url.Join(s.baseURL, s.appsDir)
	objects, err := s.fs.List(ctx, appsURL)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", s.appsDir, err)
	}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), qmdSuffix) {
			continue
		}
		if err := s.fs.Delete(ctx, object.URL()); err != nil {
			return fmt.Errorf("failed to delete %s: %w", object.Name(), err)
		}
	}
	return nil
}

// solutionTarget maps a solution input onto its published location: the
// Solutions path component is replaced with the applications directory name
// in the same parent, and a -sol.qmd name loses its suffix. Files outside a
// Solutions directory yield false; other names publish unchanged.
func (s *Service) solutionTarget(file string) (string, bool) {
	dir, name := path.Split(file)
	dir = path.Clean(dir)
	if path.Base(dir) != solutionsDir {
		return "", false
	}
	if strings.HasSuffix(name, solutionSuffix) {
		name = strings.TrimSuffix(name, solutionSuffix) + qmdSuffix
	}
	target := path.Join(path.Dir(dir), path.Base(s.appsDir), name)
	if !strings.Contains(file, "://") && !path.IsAbs(file) {
		return url.Join(s.baseURL, target), true
	}
	return target, true
}

// publish copies a solution over its published counterpart.
func (s *Service) publish(ctx context.Context, file, target string) error {
	source := file
	if !strings.Contains(source, "://") && !path.IsAbs(source) {
		source = url.Join(s.baseURL, source)
	}
	if ok, _ := s.fs.Exists(ctx, target); ok {
		if err := s.fs.Delete(ctx, target); err != nil {
			return err
		}
	}
	return s.fs.Copy(ctx, source, target)
}

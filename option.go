package courseops

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/courseops/courseops/service/cleaner"
	"github.com/courseops/courseops/service/executor"
	"github.com/courseops/courseops/service/filter"
	"github.com/courseops/courseops/service/meta"
)

// Option customises the Service.
type Option func(s *Service)

// WithConfig sets the configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFs sets the storage service shared by all components.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithMetaService sets the configuration document loader.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the base URL configuration documents resolve against.
func WithMetaBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.metaBaseURL = baseURL
	}
}

// WithMetaFsOptions sets storage options for configuration loading (for
// example an embedded file system).
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithExecutor sets the tool executor.
func WithExecutor(service *executor.Service) Option {
	return func(s *Service) {
		s.executor = service
	}
}

// WithCleaner sets the workspace cleaner.
func WithCleaner(service *cleaner.Service) Option {
	return func(s *Service) {
		s.cleaner = service
	}
}

// WithFilters sets the document filter registry.
func WithFilters(registry *filter.Registry) Option {
	return func(s *Service) {
		s.filters = registry
	}
}

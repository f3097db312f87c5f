// Package settings loads the editor settings document that declares LaTeX
// recipes and tool definitions, and narrows it to the tool table the selected
// recipe references.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/service/meta"
)

// Service is the settings DAO. Loaded documents are cached per URL.
type Service struct {
	metaService *meta.Service
	cache       map[string]*model.Settings
	mux         sync.RWMutex
}

// Option customises the service.
type Option func(*Service)

// WithMetaService sets the loader used to fetch settings documents.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// New creates a settings service.
func New(options ...Option) *Service {
	ret := &Service{cache: make(map[string]*model.Settings)}
	for _, option := range options {
		option(ret)
	}
	if ret.metaService == nil {
		ret.metaService = meta.New(nil, "")
	}
	return ret
}

// Load fetches, decodes and validates the settings document at URL. A parse
// or shape failure is fatal to the caller; nothing is defaulted.
func (s *Service) Load(ctx context.Context, URL string) (*model.Settings, error) {
	s.mux.RLock()
	cached, ok := s.cache[URL]
	s.mux.RUnlock()
	if ok {
		return cached, nil
	}

	settings := &model.Settings{}
	if err := s.metaService.Load(ctx, URL, settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings at %s: %w", URL, err)
	}

	s.mux.Lock()
	s.cache[URL] = settings
	s.mux.Unlock()
	return settings, nil
}

// Refresh discards the cached copy for URL so the next Load re-reads it.
func (s *Service) Refresh(URL string) {
	s.mux.Lock()
	delete(s.cache, URL)
	s.mux.Unlock()
}

// Decode parses raw settings bytes using the decoder matching the location
// extension and validates the result.
func (s *Service) Decode(location string, data []byte) (*model.Settings, error) {
	settings := &model.Settings{}
	if err := meta.Decode(location, data, settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Select loads the settings at URL and resolves the named recipe (first when
// empty) together with its restricted tool table.
func (s *Service) Select(ctx context.Context, URL, recipeName string) (*model.Recipe, *model.ToolTable, error) {
	settings, err := s.Load(ctx, URL)
	if err != nil {
		return nil, nil, err
	}
	return settings.ToolTable(recipeName)
}

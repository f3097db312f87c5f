package courseops

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/courseops/courseops/service/calendar"
	"github.com/courseops/courseops/service/cleaner"
	"github.com/courseops/courseops/service/dao/settings"
	"github.com/courseops/courseops/service/executor"
	"github.com/courseops/courseops/service/filter"
	"github.com/courseops/courseops/service/filter/convert"
	"github.com/courseops/courseops/service/filter/prepare"
	"github.com/courseops/courseops/service/meta"
	"github.com/courseops/courseops/service/processor"
)

// Service wires the toolkit components together and exposes the Runtime
// façade.
type Service struct {
	config        *Config
	fs            afs.Service
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	settingsDAO   *settings.Service
	executor      *executor.Service
	cleaner       *cleaner.Service
	processor     *processor.Service
	calendar      *calendar.Service
	filters       *filter.Registry
	runtime       *Runtime
}

// New creates a service from options, applying defaults for anything not
// supplied.
func New(options ...Option) (*Service, error) {
	ret := &Service{runtime: &Runtime{}}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.config.Init()
	if err := s.config.Validate(); err != nil {
		return err
	}
	s.ensureBaseSetup()

	var err error
	s.processor, err = processor.New(
		processor.WithExecutor(s.executor),
		processor.WithWorkers(s.config.Processor.WorkerCount))
	if err != nil {
		return err
	}

	s.filters.Register(prepare.New(s.fs, s.config.ProjectURL))
	s.filters.Register(convert.New(s.executor))

	s.runtime.config = s.config
	s.runtime.fs = s.fs
	s.runtime.settingsDAO = s.settingsDAO
	s.runtime.cleaner = s.cleaner
	s.runtime.processor = s.processor
	s.runtime.filters = s.filters
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.metaService == nil {
		s.metaService = meta.New(s.fs, s.metaBaseURL, s.metaFsOptions...)
	}
	if s.settingsDAO == nil {
		s.settingsDAO = settings.New(settings.WithMetaService(s.metaService))
	}
	if s.executor == nil {
		s.executor = executor.New(
			executor.WithTexInputs(s.config.TexInputs),
			executor.WithTimeoutMs(s.config.TimeoutMs))
	}
	if s.cleaner == nil {
		s.cleaner = cleaner.New(s.fs, cleaner.WithKeepSuffixes(s.config.KeepSuffixes...))
	}
	if s.calendar == nil {
		s.calendar = calendar.New(s.fs)
	}
	if s.filters == nil {
		s.filters = filter.NewRegistry()
	}
}

// Runtime returns the run façade.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Calendar returns the ICS listing service.
func (s *Service) Calendar() *calendar.Service {
	return s.calendar
}

// Filters returns the document filter registry.
func (s *Service) Filters() *filter.Registry {
	return s.filters
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

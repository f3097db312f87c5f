// Package convert implements the post-render filter that pairs rendered
// notebooks with percent-format scripts by driving the external jupytext
// converter. Solution notebooks are left alone.
package convert

import (
	"context"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/report"
	"github.com/courseops/courseops/service/executor"
	"strings"
)

const (
	Name = "convert"

	notebookSuffix = ".ipynb"
	solutionSuffix = "-sol.ipynb"
)

// Service is the convert filter.
type Service struct {
	executor *executor.Service
	format   string
}

// Option customises the service.
type Option func(*Service)

// WithFormat overrides the jupytext target format.
func WithFormat(format string) Option {
	return func(s *Service) {
		s.format = format
	}
}

// New creates a convert filter backed by the tool executor.
func New(exec *executor.Service, options ...Option) *Service {
	if exec == nil {
		exec = executor.New()
	}
	ret := &Service{executor: exec, format: "py:percent"}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Name returns the filter name.
func (s *Service) Name() string {
	return Name
}

// Wants reports whether the filter converts the given file.
func (s *Service) Wants(file string) bool {
	return strings.HasSuffix(file, notebookSuffix) && !strings.HasSuffix(file, solutionSuffix)
}

// Apply converts every rendered notebook in files. A failed conversion is
// recorded per file; the filter never aborts the pass.
func (s *Service) Apply(ctx context.Context, files []string) (*report.FilterReport, error) {
	rep := report.NewFilterReport(Name)
	session, err := s.executor.Open(ctx, "")
	if err != nil {
		return rep, err
	}
	defer session.Close()

	for _, file := range files {
		if !s.Wants(file) {
			rep.Skip(file)
			continue
		}
		document := model.NewDocument(file)
		invocation := &model.Invocation{
			Tool: "jupytext",
			Argv: []string{"jupytext", "--to", s.format, model.PlaceholderDoc},
		}
		record := session.Invoke(ctx, invocation, document, model.NewExpansion(".", document))
		switch {
		case record.Skipped:
			rep.Skip(file)
		case record.Succeeded():
			rep.Process(file)
		default:
			rep.Fail(file)
		}
	}
	return rep, nil
}

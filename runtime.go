package courseops

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/courseops/courseops/model"
	"github.com/courseops/courseops/report"
	"github.com/courseops/courseops/service/cleaner"
	"github.com/courseops/courseops/service/dao/settings"
	"github.com/courseops/courseops/service/filter"
	"github.com/courseops/courseops/service/processor"
	"github.com/courseops/courseops/tracing"
)

// SourceSuffix marks the documents the figure driver enumerates.
const SourceSuffix = ".tex"

// Runtime is the run façade: it drives figure regeneration and filter
// passes against the configured services.
type Runtime struct {
	config      *Config
	fs          afs.Service
	settingsDAO *settings.Service
	cleaner     *cleaner.Service
	processor   *processor.Service
	filters     *filter.Registry
}

// Regenerate runs the configured recipe against every source document of
// dir: clean, enumerate, process all documents through the worker pool, and
// clean again once every tool invocation has completed. Configuration and
// filesystem failures abort the run; individual tool failures are only
// recorded.
func (r *Runtime) Regenerate(ctx context.Context, dir string) (*report.Report, error) {
	ctx, span := tracing.StartSpan(ctx, "regenerate")
	span.WithAttributes(map[string]string{"dir": dir})

	recipe, table, err := r.settingsDAO.Select(ctx, r.config.SettingsURL, r.config.Recipe)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	rep := report.New(dir, recipe.Name)
	defer func() {
		rep.Done()
		tracing.EndSpan(span, err)
	}()

	removed, err := r.cleaner.Clean(ctx, dir)
	if err != nil {
		return rep, err
	}
	rep.Clean(removed)

	documents, err := r.enumerate(ctx, dir)
	if err != nil {
		return rep, err
	}
	rep.Documents = len(documents)

	if err = r.processor.Process(ctx, dir, documents, table, r.config.OutDir, rep); err != nil {
		return rep, err
	}

	// the pool has joined; sweep the intermediates the tools left behind
	removed, err = r.cleaner.Clean(ctx, dir)
	if err != nil {
		return rep, err
	}
	rep.Clean(removed)
	return rep, nil
}

// enumerate lists the immediate source documents of dir.
func (r *Runtime) enumerate(ctx context.Context, dir string) ([]*model.Document, error) {
	objects, err := r.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var documents []*model.Document
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), SourceSuffix) {
			continue
		}
		documents = append(documents, model.NewDocument(url.Path(object.URL())))
	}
	return documents, nil
}

// RunFilter applies the named document filter to files; when files is nil
// the filter's environment file list is used.
func (r *Runtime) RunFilter(ctx context.Context, name string, files []string) (*report.FilterReport, error) {
	f, ok := r.filters.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("filter %q not found (have %v)", name, r.filters.Names())
	}
	ctx, span := tracing.StartSpan(ctx, "filter."+name)
	rep, err := f.Apply(ctx, files)
	tracing.EndSpan(span, err)
	return rep, err
}

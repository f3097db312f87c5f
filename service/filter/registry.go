// Package filter defines the document filters that post-process site builds
// and the registry the CLI dispatches on. Filters receive the file list the
// site generator exposes through its environment and report per-file
// outcomes.
package filter

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/courseops/courseops/report"
)

// Environment variables the site generator populates with newline-separated
// file lists.
const (
	InputFilesKey  = "QUARTO_PROJECT_INPUT_FILES"
	OutputFilesKey = "QUARTO_PROJECT_OUTPUT_FILES"
)

// Filter processes a list of project files.
type Filter interface {
	Name() string
	Apply(ctx context.Context, files []string) (*report.FilterReport, error)
}

// Registry holds named filters.
type Registry struct {
	filters map[string]Filter
	order   []string
	mux     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]Filter)}
}

// Register adds a filter; a duplicate name replaces the previous entry.
func (r *Registry) Register(f Filter) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.filters[f.Name()]; !ok {
		r.order = append(r.order, f.Name())
	}
	r.filters[f.Name()] = f
}

// Lookup returns a filter by name.
func (r *Registry) Lookup(name string) (Filter, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	f, ok := r.filters[name]
	return f, ok
}

// Names returns registered filter names in registration order.
func (r *Registry) Names() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return append([]string(nil), r.order...)
}

// FilesFromEnv splits the newline-separated list carried by the named
// environment variable, dropping empty entries.
func FilesFromEnv(key string) []string {
	var files []string
	for _, line := range strings.Split(os.Getenv(key), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/courseops/courseops/internal/clock"
	"github.com/courseops/courseops/internal/idgen"
)

// Invocation is the explicit result of a single external tool run.
type Invocation struct {
	Tool     string        `json:"tool"`
	Document string        `json:"document"`
	Command  string        `json:"command"`
	Status   int           `json:"status"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
	Skipped  bool          `json:"skipped,omitempty"`
	Err      string        `json:"error,omitempty"`
}

// Succeeded reports whether the invocation ran and exited zero.
func (i *Invocation) Succeeded() bool {
	return !i.Skipped && i.Status == 0 && i.Err == ""
}

// Report aggregates one driver run. Counters are modified via Record/Clean
// and are safe to update from multiple workers.
type Report struct {
	ID        string    `json:"id"`
	Directory string    `json:"directory"`
	Recipe    string    `json:"recipe"`
	StartedAt time.Time `json:"startedAt"`

	Documents   int           `json:"documents"`
	Total       int           `json:"total"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	SkippedRuns int           `json:"skipped,omitempty"`
	Removed     []string      `json:"removed,omitempty"`
	Invocations []*Invocation `json:"invocations,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`

	mux sync.Mutex
}

// New creates an empty report for a run over the given directory.
func New(directory, recipe string) *Report {
	return &Report{
		ID:        idgen.New(),
		Directory: directory,
		Recipe:    recipe,
		StartedAt: clock.Now(),
	}
}

// Record appends an invocation result and updates the counters.
func (r *Report) Record(inv *Invocation) {
	if r == nil || inv == nil {
		return
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.Invocations = append(r.Invocations, inv)
	r.Total++
	switch {
	case inv.Skipped:
		r.SkippedRuns++
	case inv.Succeeded():
		r.Succeeded++
	default:
		r.Failed++
	}
}

// Clean records the names removed by a cleanup pass.
func (r *Report) Clean(removed []string) {
	if r == nil {
		return
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.Removed = append(r.Removed, removed...)
}

// Done stamps the total elapsed time.
func (r *Report) Done() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.Elapsed = clock.Now().Sub(r.StartedAt)
}

// HasFailures reports whether any invocation failed.
func (r *Report) HasFailures() bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.Failed > 0
}

// Print writes a human-readable summary followed by per-invocation lines.
func (r *Report) Print(w io.Writer) {
	r.mux.Lock()
	defer r.mux.Unlock()
	fmt.Fprintf(w, "run %s dir=%s recipe=%s documents=%d invocations=%d ok=%d failed=%d elapsed=%s\n",
		r.ID, r.Directory, r.Recipe, r.Documents, r.Total, r.Succeeded, r.Failed, r.Elapsed)
	for _, inv := range r.Invocations {
		state := "ok"
		switch {
		case inv.Skipped:
			state = "skipped"
		case !inv.Succeeded():
			state = fmt.Sprintf("failed status=%d", inv.Status)
		}
		fmt.Fprintf(w, "  [%s] %s %s: %s\n", state, inv.Tool, inv.Document, inv.Command)
		if inv.Err != "" {
			fmt.Fprintf(w, "    error: %s\n", inv.Err)
		}
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(w, "  removed: %v\n", r.Removed)
	}
}

// FilterReport aggregates one document-filter pass.
type FilterReport struct {
	Filter    string   `json:"filter"`
	Processed []string `json:"processed,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
	Failed    []string `json:"failed,omitempty"`

	mux sync.Mutex
}

// NewFilterReport creates an empty report for the named filter.
func NewFilterReport(filter string) *FilterReport {
	return &FilterReport{Filter: filter}
}

// Processed records a successfully handled file.
func (f *FilterReport) Process(name string) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.Processed = append(f.Processed, name)
}

// Skip records a deliberately ignored file.
func (f *FilterReport) Skip(name string) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.Skipped = append(f.Skipped, name)
}

// Fail records a file the filter could not handle.
func (f *FilterReport) Fail(name string) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.Failed = append(f.Failed, name)
}

// Print writes a one-line summary.
func (f *FilterReport) Print(w io.Writer) {
	f.mux.Lock()
	defer f.mux.Unlock()
	fmt.Fprintf(w, "filter %s processed=%d skipped=%d failed=%d\n",
		f.Filter, len(f.Processed), len(f.Skipped), len(f.Failed))
	for _, name := range f.Failed {
		fmt.Fprintf(w, "  failed: %s\n", name)
	}
}

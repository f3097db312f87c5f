// Package report collects the outcome of a courseops run.  Every external
// tool invocation produces an explicit record (command line, exit status,
// captured output) which is aggregated together with run-level counters
// instead of being printed ad hoc.  The collector is safe for concurrent use
// by the document workers.
package report

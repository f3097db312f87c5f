// Package executor expands tool argument templates for one document and runs
// the resulting command synchronously through a shell session bound to a
// working directory. Every invocation yields an explicit report record; a
// failing or missing executable is recorded, never escalated, so the driver
// always proceeds to the next tool or document.
package executor

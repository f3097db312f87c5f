// Package idgen is the identifier seam for run reports. Callers treat the
// returned values as opaque strings; the internal placement keeps the
// generator swappable without committing to an API.
package idgen

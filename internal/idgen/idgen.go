package idgen

import "github.com/google/uuid"

// NewFunc produces run and record identifiers. Tests replace it to get
// stable IDs in report assertions.
var NewFunc = func() string {
	return uuid.New().String()
}

// New returns a fresh opaque identifier.
func New() string {
	return NewFunc()
}

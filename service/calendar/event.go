package calendar

import (
	"fmt"
	"time"
)

// Event is one calendar entry extracted from an ICS document.
type Event struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to,omitempty"`
	AllDay   bool      `json:"allDay,omitempty"`
}

// Validate reports a malformed event or nil.
func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title cannot be empty")
	}
	if e.From.IsZero() {
		return fmt.Errorf("event %q start cannot be zero", e.Title)
	}
	if !e.To.IsZero() && e.To.Before(e.From) {
		return fmt.Errorf("event %q cannot end before it starts", e.Title)
	}
	return nil
}

// In reports whether the event starts inside the [from, to) window.
func (e *Event) In(from, to time.Time) bool {
	return !e.From.Before(from) && e.From.Before(to)
}

// Package calendar extracts event listings from ICS documents for the course
// site. Documents are fetched through afs so feeds can live on disk or be
// mirrored into memory during tests.
package calendar

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/viant/afs"
)

// Service parses ICS documents into event listings.
type Service struct {
	fs afs.Service
}

// New creates a calendar service.
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

// List downloads and parses the ICS document at URL. Events are sorted by
// start time; entries without a usable start time are skipped.
func (s *Service) List(ctx context.Context, URL string) ([]*Event, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar %s: %w", URL, err)
	}
	return Parse(data)
}

// Upcoming lists the events starting within days from the supplied instant.
func (s *Service) Upcoming(ctx context.Context, URL string, from time.Time, days int) ([]*Event, error) {
	events, err := s.List(ctx, URL)
	if err != nil {
		return nil, err
	}
	to := from.AddDate(0, 0, days)
	var upcoming []*Event
	for _, event := range events {
		if event.In(from, to) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming, nil
}

// Parse decodes raw ICS bytes. A malformed document is a fatal parse error.
func Parse(data []byte) ([]*Event, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}
	var events []*Event
	for _, component := range cal.Events() {
		event, ok := convert(component)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].From.Before(events[j].From)
	})
	return events, nil
}

// convert maps one VEVENT onto the Event model; events without a start time
// are dropped.
func convert(component *ics.VEvent) (*Event, bool) {
	event := &Event{}
	if prop := component.GetProperty(ics.ComponentPropertySummary); prop != nil {
		event.Title = prop.Value
	}
	if prop := component.GetProperty(ics.ComponentPropertyLocation); prop != nil {
		event.Location = prop.Value
	}
	start, err := component.GetStartAt()
	if err != nil {
		if start, err = component.GetAllDayStartAt(); err != nil {
			return nil, false
		}
		event.AllDay = true
	}
	event.From = start
	if end, err := component.GetEndAt(); err == nil {
		event.To = end
	} else if event.AllDay {
		if end, err := component.GetAllDayEndAt(); err == nil {
			event.To = end
		}
	}
	return event, true
}

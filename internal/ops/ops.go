package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/fact"
	"github.com/hpungsan/leitner/internal/schedule"
	"github.com/hpungsan/leitner/internal/store"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// FactItem is the output shape of a single fact.
type FactItem struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	Level      int        `json:"level"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

func toItem(f fact.Fact) FactItem {
	return FactItem{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		Level:      f.Level(),
		CreatedAt:  f.CreatedAt,
		ReviewedAt: f.ReviewedAt,
	}
}

// ScheduleFor returns the canonical schedule anchored at the repository's start date.
func ScheduleFor(repo *store.Repository) *schedule.Schedule {
	return schedule.New(repo.CreatedAt())
}

// resolveDate defaults a zero date to now.
func resolveDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// requireText trims s and rejects it if empty.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.NewInvalidRequest(field + " is required")
	}
	return s, nil
}

// DateLayout is the date-only form accepted by ParseDate.
const DateLayout = "2006-01-02"

// ParseDate parses an RFC 3339 timestamp or a YYYY-MM-DD date.
// A date-only value takes anchor's UTC time of day, so the Nth calendar day
// after the start date falls on cycle day N. An empty string yields the zero time.
func ParseDate(s string, anchor time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest(fmt.Sprintf("invalid date %q: want YYYY-MM-DD or RFC 3339", s))
	}
	a := anchor.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), a.Hour(), a.Minute(), a.Second(), a.Nanosecond(), time.UTC), nil
}

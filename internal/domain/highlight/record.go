package highlight

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSnoozeWeeks is used when a snooze duration is not positive.
const DefaultSnoozeWeeks = 4

// Status is the persisted review state of a highlight.
type Status string

const (
	// StatusNew is a highlight that still waits for review.
	StatusNew Status = "NEW"
	// StatusIntegrated is a highlight that was copied into notes.
	StatusIntegrated Status = "INTEGRATED"
	// StatusArchived is a highlight that was dismissed.
	StatusArchived Status = "ARCHIVED"
)

// ParseStatus converts a stored status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusNew, StatusIntegrated, StatusArchived:
		return st, nil
	default:
		return "", fmt.Errorf("unknown highlight status: %q", s)
	}
}

// Record tracks the lifecycle of one highlight.
type Record struct {
	ID            string
	Status        Status
	SnoozeHistory []time.Time
	NextShowDate  *time.Time
	FirstSeen     time.Time
	LastUpdated   time.Time
}

// NewRecord returns a fresh record first seen at now.
func NewRecord(id string, now time.Time) Record {
	return Record{
		ID:          id,
		Status:      StatusNew,
		FirstSeen:   now,
		LastUpdated: now,
	}
}

// SetStatus moves the record to status.
func (r Record) SetStatus(status Status, now time.Time) Record {
	r.Status = status
	r.LastUpdated = now
	return r
}

// Snooze hides the record for the given number of weeks and appends now
// to its snooze history.
func (r Record) Snooze(weeks int, now time.Time) Record {
	if weeks <= 0 {
		weeks = DefaultSnoozeWeeks
	}
	history := make([]time.Time, 0, len(r.SnoozeHistory)+1)
	history = append(history, r.SnoozeHistory...)
	history = append(history, now)

	next := now.AddDate(0, 0, weeks*7)
	r.SnoozeHistory = history
	r.NextShowDate = &next
	r.LastUpdated = now
	return r
}

// SnoozeCount is the number of times the record was snoozed.
func (r Record) SnoozeCount() int {
	return len(r.SnoozeHistory)
}

// Visible reports whether the highlight should be offered for review at now.
func (r Record) Visible(now time.Time) bool {
	if r.Status != StatusNew {
		return false
	}
	return r.NextShowDate == nil || !r.NextShowDate.After(now)
}

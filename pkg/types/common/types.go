// Package common defines the shared primitive types used across every layer
// of the LitIntel platform: identifiers, timestamps, and the confidence and
// severity scales that all analysis output is expressed in.
package common

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.New().String())
}

// GenerateID returns id unchanged when non-empty, otherwise a fresh ID.
// Useful for upsert-style constructors that accept caller-supplied IDs.
func GenerateID(id string) ID {
	if id != "" {
		return ID(id)
	}
	return NewID()
}

// Validate checks that the ID is a well-formed UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid ID format: %w", err)
	}
	return nil
}

// Metadata is an open-ended key-value bag for upstream extraction payloads.
type Metadata map[string]interface{}

// Timestamp is a time.Time alias with RFC 3339 JSON serialization.
type Timestamp time.Time

// UTC returns the underlying time in UTC.
func (t Timestamp) UTC() time.Time { return time.Time(t).UTC() }

// IsZero reports whether the timestamp is the zero time.
func (t Timestamp) IsZero() bool { return time.Time(t).IsZero() }

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Severity and confidence scales
// ─────────────────────────────────────────────────────────────────────────────

// Severity grades how much tactical weight an insight carries. The scale is
// closed; detectors must not invent intermediate grades.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank maps a severity to an integer for ordering (critical highest).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the four defined grades.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// Confidence expresses how much supporting signal backs a conclusion.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ─────────────────────────────────────────────────────────────────────────────
// Day-granularity date helpers
// ─────────────────────────────────────────────────────────────────────────────

// DaysBetween returns the whole-day count from a to b, comparing calendar
// days in UTC. Negative when b precedes a. All threshold comparisons in the
// analysis engine go through this so that clock time never shifts a verdict.
func DaysBetween(a, b time.Time) int {
	au := a.UTC()
	bu := b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// DaysSince returns the whole-day count from t to now (UTC).
func DaysSince(t time.Time, now time.Time) int {
	return DaysBetween(t, now)
}

package models

import (
	"time"
)

// MomentLayout is the wire format of order and payment timestamps.
const MomentLayout = "2006-01-02T15:04:05Z"

func formatMoment(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(MomentLayout)
	return &s
}

func parseMoment(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(MomentLayout, *s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

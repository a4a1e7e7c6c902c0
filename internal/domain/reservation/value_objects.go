package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StayPeriod is the half-open interval [start, end) a reservation occupies.
type StayPeriod struct {
	start time.Time
	end   time.Time
}

func NewStayPeriod(start, end time.Time) (StayPeriod, error) {
	if !start.Before(end) {
		return StayPeriod{}, errors.New("start time must be before end time")
	}

	return StayPeriod{
		start: start,
		end:   end,
	}, nil
}

func (p StayPeriod) Start() time.Time {
	return p.start
}

func (p StayPeriod) End() time.Time {
	return p.end
}

func (p StayPeriod) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Overlaps implements the half-open predicate: s1 < e2 AND s2 < e1. Two
// stays touching at a boundary instant do not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p StayPeriod) Contains(t time.Time) bool {
	return !t.Before(p.start) && t.Before(p.end)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

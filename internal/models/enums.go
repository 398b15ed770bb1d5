package models

import (
	"fmt"
	"strings"
)

// Status is the completion state of a task
type Status string

const (
	StatusTodo      Status = "TODO"
	StatusCompleted Status = "COMPLETED"
)

// ParseStatus converts user or wire input to a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TODO":
		return StatusTodo, nil
	case "COMPLETED", "DONE":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusCompleted
}

// Toggle flips TODO and COMPLETED
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusTodo
	}
	return StatusCompleted
}

// Label is the lower-case form shown on cards
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "completed"
	default:
		return "todo"
	}
}

// Type is the time-horizon bucket a task belongs to
type Type string

const (
	TypeMonthly Type = "MONTHLY"
	TypeWeekly  Type = "WEEKLY"
	TypeDaily   Type = "DAILY"
)

var allTypes = []Type{TypeMonthly, TypeWeekly, TypeDaily}

// Types returns the buckets in display order
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType converts user or wire input to a Type. Single-letter shorthands m/w/d are accepted.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MONTHLY", "MONTH", "M":
		return TypeMonthly, nil
	case "WEEKLY", "WEEK", "W":
		return TypeWeekly, nil
	case "DAILY", "DAY", "D":
		return TypeDaily, nil
	default:
		return "", fmt.Errorf("unknown type %q (use monthly, weekly or daily)", s)
	}
}

// Valid reports whether t is one of the known buckets
func (t Type) Valid() bool {
	return t.Index() >= 0
}

// Index is the display position of the bucket, or -1
func (t Type) Index() int {
	for i, v := range allTypes {
		if v == t {
			return i
		}
	}
	return -1
}

// Label returns the column title
func (t Type) Label() string {
	switch t {
	case TypeMonthly:
		return "Monthly Goals"
	case TypeWeekly:
		return "Weekly Objectives"
	case TypeDaily:
		return "Daily Tasks"
	default:
		return string(t)
	}
}

// Short returns the capitalised bucket name, e.g. "Weekly"
func (t Type) Short() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// Next returns the bucket to the right, wrapping around
func (t Type) Next() Type {
	i := t.Index()
	return allTypes[(i+1)%len(allTypes)]
}

// Prev returns the bucket to the left, wrapping around
func (t Type) Prev() Type {
	i := t.Index()
	if i <= 0 {
		return allTypes[len(allTypes)-1]
	}
	return allTypes[i-1]
}

package models

import (
	"fmt"
	"sort"
	"strings"
)

// Status is a residency status: "ID" for domestic, a country code otherwise,
// or "N1" for rows excluded from standard classification.
type Status string

// Well-known statuses
const (
	StatusUnknown  Status = ""
	StatusDomestic Status = "ID"
	StatusNetting  Status = "N1"
)

// ParseStatus normalizes a raw status. Statuses are two upper-case
// alphanumeric characters.
func ParseStatus(raw string) (Status, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 2 {
		return StatusUnknown, fmt.Errorf("invalid status code %q: must be 2 characters", raw)
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return StatusUnknown, fmt.Errorf("invalid status code %q: must be alphanumeric", raw)
		}
	}
	return Status(s), nil
}

// NormalizeStatus upper-cases and trims a recorded status without validating it.
// Recorded values are compared as-is, so malformed cells simply never match.
func NormalizeStatus(raw string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}

// String returns the code.
func (s Status) String() string {
	return string(s)
}

// StatusSet is an unordered set of statuses.
type StatusSet map[Status]struct{}

// NewStatusSet builds a set from the given statuses.
func NewStatusSet(statuses ...Status) StatusSet {
	set := make(StatusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// Add inserts s into the set.
func (ss StatusSet) Add(s Status) {
	ss[s] = struct{}{}
}

// Contains reports whether s is in the set.
func (ss StatusSet) Contains(s Status) bool {
	_, ok := ss[s]
	return ok
}

// Sorted returns the members in ascending order.
func (ss StatusSet) Sorted() []Status {
	out := make([]Status, 0, len(ss))
	for s := range ss {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as "A/B/C" in sorted order.
func (ss StatusSet) String() string {
	sorted := ss.Sorted()
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = string(s)
	}
	return strings.Join(parts, "/")
}

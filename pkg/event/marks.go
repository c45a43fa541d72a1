package event

import (
	"fmt"
	"sort"
)

type Mark string

const (
	MarkUnavailable Mark = "unavailable"
	MarkGreat       Mark = "great"
	MarkIfNeeded    Mark = "ifNeeded"
)

func ParseMark(s string) (Mark, error) {
	switch Mark(s) {
	case MarkUnavailable, MarkGreat, MarkIfNeeded:
		return Mark(s), nil
	}
	return "", fmt.Errorf("%w: unknown mark %q", ErrInvalidInput, s)
}

// Selection is one participant's marks over the grid. A slot is held by at most one mark.
type Selection struct {
	great    map[string]struct{}
	ifNeeded map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{
		great:    make(map[string]struct{}),
		ifNeeded: make(map[string]struct{}),
	}
}

// SelectionOf builds a selection from stored sets. Slots present in both sets keep "great".
func SelectionOf(great []string, ifNeeded []string) *Selection {
	s := NewSelection()
	for _, id := range ifNeeded {
		s.Set(id, MarkIfNeeded)
	}
	for _, id := range great {
		s.Set(id, MarkGreat)
	}
	return s
}

// Set marks the slot, clearing it from the other set first.
func (s *Selection) Set(id string, mark Mark) {
	delete(s.great, id)
	delete(s.ifNeeded, id)
	switch mark {
	case MarkGreat:
		s.great[id] = struct{}{}
	case MarkIfNeeded:
		s.ifNeeded[id] = struct{}{}
	}
}

// Paint applies a single click: painting a slot with the mark it already has clears it.
func (s *Selection) Paint(id string, mark Mark) {
	if s.MarkOf(id) == mark {
		s.Set(id, MarkUnavailable)
		return
	}
	s.Set(id, mark)
}

func (s *Selection) MarkOf(id string) Mark {
	if _, ok := s.great[id]; ok {
		return MarkGreat
	}
	if _, ok := s.ifNeeded[id]; ok {
		return MarkIfNeeded
	}
	return MarkUnavailable
}

// Great returns the slots marked great, sorted.
func (s *Selection) Great() []string {
	return sortedKeys(s.great)
}

// IfNeeded returns the slots marked if needed, sorted.
func (s *Selection) IfNeeded() []string {
	return sortedKeys(s.ifNeeded)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package services

import (
	"sync"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// SelectionSet tracks the selected rows by document id, in insertion order.
// Selections are not pruned when the filter changes, so rows hidden by the
// current filter may stay selected.
type SelectionSet struct {
	mu      sync.RWMutex
	order   []string
	members map[string]struct{}
}

// NewSelectionSet creates an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{members: make(map[string]struct{})}
}

// IsAllSelected reports whether every visible row is selected.
// An empty visible set counts as all selected.
func (s *SelectionSet) IsAllSelected(visible []domain.Document) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allSelected(visible)
}

func (s *SelectionSet) allSelected(visible []domain.Document) bool {
	for i := range visible {
		if _, ok := s.members[visible[i].ID]; !ok {
			return false
		}
	}
	return true
}

// ToggleAll clears the whole selection when every visible row is selected,
// including rows outside the visible set. Otherwise it adds every visible
// row to the selection and keeps the existing members.
func (s *SelectionSet) ToggleAll(visible []domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.allSelected(visible) {
		s.clear()
		return
	}
	for i := range visible {
		s.add(visible[i].ID)
	}
}

// Toggle flips the membership of one row and returns the new state.
func (s *SelectionSet) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; ok {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

// Select adds rows, keeping the position of rows already selected.
func (s *SelectionSet) Select(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.add(id)
	}
}

// Deselect removes a row.
func (s *SelectionSet) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

// Contains reports whether a row is selected.
func (s *SelectionSet) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// IDs returns the selected ids in insertion order.
func (s *SelectionSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected rows.
func (s *SelectionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *SelectionSet) add(id string) {
	if _, ok := s.members[id]; ok {
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *SelectionSet) remove(id string) {
	if _, ok := s.members[id]; !ok {
		return
	}
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SelectionSet) clear() {
	s.order = nil
	s.members = make(map[string]struct{})
}

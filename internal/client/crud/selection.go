package crud

import (
	"errors"
	"fmt"
	"slices"
)

// ErrSelectionFull is returned by Selection.Add under the Reject policy.
var ErrSelectionFull = errors.New("selection is full")

// Policy decides what Add does when the selection is already at Max.
type Policy int

const (
	// Truncate drops the new pick and keeps the earlier ones.
	Truncate Policy = iota
	// Reject refuses the new pick with ErrSelectionFull.
	Reject
	// Replace evicts the oldest pick to make room.
	Replace
)

func (p Policy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Reject:
		return "reject"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Selection is a bounded, ordered set of related ids. Max of zero means
// unbounded. The id slice is never modified in place, so copying a Selection
// by value yields an independent selection.
type Selection struct {
	Label  string // singular noun used in messages, e.g. "category"
	Plural string // defaults to Label+"s"
	Min    int
	Max    int
	Policy Policy

	ids []int64
}

// NewSelection returns a selection seeded with ids. Seeds beyond Max are
// dropped so the bound holds from the start.
func NewSelection(label string, min, max int, policy Policy, ids ...int64) Selection {
	s := Selection{Label: label, Min: min, Max: max, Policy: policy}
	for _, id := range ids {
		if s.Has(id) {
			continue
		}
		if s.Max > 0 && len(s.ids) >= s.Max {
			break
		}
		s.ids = append(s.ids, id)
	}
	return s
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s Selection) Len() int { return len(s.ids) }

func (s Selection) Has(id int64) bool {
	return slices.Contains(s.ids, id)
}

// Add selects id, applying Policy when the selection is full. Adding an id
// that is already selected is a no-op.
func (s *Selection) Add(id int64) error {
	if s.Has(id) {
		return nil
	}
	if s.Max > 0 && len(s.ids) >= s.Max {
		switch s.Policy {
		case Truncate:
			return nil
		case Reject:
			return fmt.Errorf("%w: at most %d %s", ErrSelectionFull, s.Max, s.noun(s.Max))
		case Replace:
			next := append(slices.Clone(s.ids[1:]), id)
			s.ids = next
			return nil
		}
	}
	next := make([]int64, len(s.ids), len(s.ids)+1)
	copy(next, s.ids)
	s.ids = append(next, id)
	return nil
}

// Remove deselects id.
func (s *Selection) Remove(id int64) {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return
	}
	s.ids = slices.Delete(slices.Clone(s.ids), i, i+1)
}

// Toggle deselects id when selected and selects it otherwise.
func (s *Selection) Toggle(id int64) error {
	if s.Has(id) {
		s.Remove(id)
		return nil
	}
	return s.Add(id)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Check reports the bound violation, if any, as an operator-facing message.
func (s Selection) Check() (string, bool) {
	if len(s.ids) < s.Min {
		return fmt.Sprintf("select at least %d %s", s.Min, s.noun(s.Min)), false
	}
	if s.Max > 0 && len(s.ids) > s.Max {
		return fmt.Sprintf("select at most %d %s", s.Max, s.noun(s.Max)), false
	}
	return "", true
}

func (s Selection) noun(n int) string {
	if n == 1 {
		return s.Label
	}
	if s.Plural != "" {
		return s.Plural
	}
	return s.Label + "s"
}

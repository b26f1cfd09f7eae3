// Package review implements the per-field review state machine over a
// ParsedOutput. Fields move from NeedsReview to Confirmed through human edits
// or explicit confirmation and never move back.
package review

import (
	"fmt"

	"docmap/internal/domain"
)

// Scope selects the part of a ParsedOutput a FieldRef points into.
type Scope string

const (
	ScopeHeader Scope = "header"
	ScopeItem   Scope = "item"
)

// FieldRef addresses one field. Header fields are keyed by field id; item
// fields by the (row, target field path) pair.
type FieldRef struct {
	Scope Scope
	Row   int
	Key   string

	unresolved bool
}

// HeaderRef addresses a header field by id.
func HeaderRef(fieldID string) FieldRef {
	return FieldRef{Scope: ScopeHeader, Key: fieldID}
}

// ItemRef addresses an item field by row index and target field path.
func ItemRef(row int, targetField string) FieldRef {
	return FieldRef{Scope: ScopeItem, Row: row, Key: targetField}
}

// UnresolvedItemRef addresses an item field id that did not resolve. It never
// matches a field, even when fieldID happens to equal a target path.
func UnresolvedItemRef(row int, fieldID string) FieldRef {
	return FieldRef{Scope: ScopeItem, Row: row, Key: fieldID, unresolved: true}
}

// ItemRefByID resolves an item field id within a row to its composite key.
// Field ids are only unique per row, so the row is always required.
func ItemRefByID(out domain.ParsedOutput, row int, fieldID string) (FieldRef, bool) {
	if row < 0 || row >= len(out.Items) {
		return FieldRef{}, false
	}
	for key, f := range out.Items[row] {
		if f.ID == fieldID {
			return ItemRef(row, key), true
		}
	}
	return FieldRef{}, false
}

func (r FieldRef) String() string {
	if r.Scope == ScopeItem {
		return fmt.Sprintf("items[%d].%s", r.Row, r.Key)
	}
	return "header." + r.Key
}

// Machine applies review transitions. With Strict set, transitions on a
// field that does not exist return domain.ErrFieldNotFound; otherwise they
// are silent no-ops returning the unchanged output.
type Machine struct {
	Strict bool
}

// NewMachine creates a Machine.
func NewMachine(strict bool) *Machine {
	return &Machine{Strict: strict}
}

// Result describes the outcome of a transition.
type Result struct {
	Output  domain.ParsedOutput
	Before  domain.ParsedDataField
	After   domain.ParsedDataField
	Changed bool
}

// Edit replaces a field's value. A different value is a trusted human
// correction and confirms the field; the same value changes nothing.
func (m *Machine) Edit(out domain.ParsedOutput, ref FieldRef, value string) (Result, error) {
	return m.apply(out, ref, func(f domain.ParsedDataField) domain.ParsedDataField {
		if f.Value == value {
			return f
		}
		f.Value = value
		f.Status = domain.ReviewStatusConfirmed
		return f
	})
}

// Confirm marks a field Confirmed without touching its value.
func (m *Machine) Confirm(out domain.ParsedOutput, ref FieldRef) (Result, error) {
	return m.apply(out, ref, func(f domain.ParsedDataField) domain.ParsedDataField {
		f.Status = domain.ReviewStatusConfirmed
		return f
	})
}

// apply looks up the field, runs fn on it and writes the result into a copy
// of out. The input output is never modified.
func (m *Machine) apply(out domain.ParsedOutput, ref FieldRef, fn func(domain.ParsedDataField) domain.ParsedDataField) (Result, error) {
	before, ok := lookup(out, ref)
	if !ok {
		if m.Strict {
			return Result{Output: out}, fmt.Errorf("%s: %w", ref, domain.ErrFieldNotFound)
		}
		return Result{Output: out}, nil
	}

	after := fn(before)
	if after == before {
		return Result{Output: out, Before: before, After: after}, nil
	}

	next := out.Clone()
	switch ref.Scope {
	case ScopeItem:
		next.Items[ref.Row][ref.Key] = after
	default:
		for i := range next.HeaderData {
			if next.HeaderData[i].ID == ref.Key {
				next.HeaderData[i] = after
				break
			}
		}
	}
	return Result{Output: next, Before: before, After: after, Changed: true}, nil
}

func lookup(out domain.ParsedOutput, ref FieldRef) (domain.ParsedDataField, bool) {
	if ref.unresolved {
		return domain.ParsedDataField{}, false
	}
	switch ref.Scope {
	case ScopeItem:
		if ref.Row < 0 || ref.Row >= len(out.Items) {
			return domain.ParsedDataField{}, false
		}
		f, ok := out.Items[ref.Row][ref.Key]
		return f, ok
	case ScopeHeader:
		for _, f := range out.HeaderData {
			if f.ID == ref.Key {
				return f, true
			}
		}
	}
	return domain.ParsedDataField{}, false
}

package timeseries

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey      = errors.New("key already exists in panel")
	ErrColumnMismatch    = errors.New("group columns differ from the rest of the panel")
	ErrInconsistentIndex = errors.New("all panel groups must share the same time index")
	ErrEmptyPanel        = errors.New("panel has no groups")
)

// Panel represents multiple related series grouped by an entity key. Groups
// are kept in insertion order and are expected to share one time index, an
// invariant checked by SameIndex rather than at insertion so partially built
// panels can be assembled incrementally.
type Panel struct {
	keys   []string
	groups map[string]*Dataset
}

func (p *Panel) table() {}

// NewPanel returns an empty panel.
func NewPanel() *Panel {
	return &Panel{groups: make(map[string]*Dataset)}
}

// Add inserts a keyed group into the panel. Every group must carry the same
// column names as the first group added.
func (p *Panel) Add(key string, d *Dataset) error {
	if _, exists := p.groups[key]; exists {
		return fmt.Errorf("group %q, %w", key, ErrDuplicateKey)
	}
	if len(p.keys) > 0 {
		first := p.groups[p.keys[0]]
		if len(first.Columns) != len(d.Columns) {
			return fmt.Errorf("group %q, %w", key, ErrColumnMismatch)
		}
		for i, col := range first.Columns {
			if d.Columns[i] != col {
				return fmt.Errorf("group %q, %w", key, ErrColumnMismatch)
			}
		}
	}
	p.keys = append(p.keys, key)
	p.groups[key] = d
	return nil
}

// Keys returns the group keys in insertion order.
func (p *Panel) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Group returns the dataset stored under key, or nil if absent.
func (p *Panel) Group(key string) *Dataset {
	return p.groups[key]
}

// NumGroups returns the number of groups in the panel.
func (p *Panel) NumGroups() int {
	return len(p.keys)
}

// SameIndex verifies that every group shares one identical time index. The
// panel does not attempt to align mismatched per-group indices; it rejects
// them.
func (p *Panel) SameIndex() error {
	if len(p.keys) == 0 {
		return ErrEmptyPanel
	}
	ref := p.groups[p.keys[0]]
	for _, key := range p.keys[1:] {
		d := p.groups[key]
		if len(d.T) != len(ref.T) {
			return fmt.Errorf(
				"group %q has %d points but group %q has %d, %w",
				key, len(d.T), p.keys[0], len(ref.T), ErrInconsistentIndex,
			)
		}
		for i := range d.T {
			if !d.T[i].Equal(ref.T[i]) {
				return fmt.Errorf(
					"group %q diverges from group %q at %d, %w",
					key, p.keys[0], i, ErrInconsistentIndex,
				)
			}
		}
	}
	return nil
}

// Package symbols manages the known label table of the disassembler.
package symbols

import (
	"errors"
	"fmt"
	"sort"

	"github.com/retroenv/retrogolib/set"
)

// maxNameSuffix bounds the search for a unique label name.
const maxNameSuffix = 999

// ErrNamespaceExhausted is returned when no unique name variant can be found
// for a colliding label name.
var ErrNamespaceExhausted = errors.New("label namespace exhausted")

// Table maps addresses to unique label names. Names are deduplicated on
// insertion by appending a numeric suffix to colliding names.
type Table struct {
	labels map[uint16]string
	names  set.Set[string]
}

// NewTable creates a new empty label table.
func NewTable() *Table {
	return &Table{
		labels: map[uint16]string{},
		names:  set.New[string](),
	}
}

// Add adds a label for an address and returns the name that was assigned.
// The first label added for an address wins, later additions return the
// existing name. A colliding name gets the lowest free numeric suffix
// appended, starting at 2.
func (t *Table) Add(address uint16, name string) (string, error) {
	if existing, ok := t.labels[address]; ok {
		return existing, nil
	}

	unique, err := t.uniqueName(name)
	if err != nil {
		return "", err
	}

	t.labels[address] = unique
	t.names.Add(unique)
	return unique, nil
}

func (t *Table) uniqueName(name string) (string, error) {
	if !t.names.Contains(name) {
		return name, nil
	}

	for i := 2; i <= maxNameSuffix; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !t.names.Contains(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNamespaceExhausted, name)
}

// Get returns the label name assigned to an address.
func (t *Table) Get(address uint16) (string, bool) {
	name, ok := t.labels[address]
	return name, ok
}

// HaveLabel returns whether a label with the given name exists.
func (t *Table) HaveLabel(name string) bool {
	return t.names.Contains(name)
}

// Len returns the number of labels in the table.
func (t *Table) Len() int {
	return len(t.labels)
}

// SortedAddresses returns all labeled addresses in ascending order.
func (t *Table) SortedAddresses() []uint16 {
	addresses := make([]uint16, 0, len(t.labels))
	for address := range t.labels {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i] < addresses[j]
	})
	return addresses
}

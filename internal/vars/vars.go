// Package vars tracks addresses that instructions reference as data.
package vars

import (
	"sort"

	"github.com/retroenv/retrogolib/set"
)

// Vars tracks all addresses that appeared as a 16 bit immediate outside of a
// call or jump target. Such an address likely marks the start of meaningful
// data, the data classifier treats it as a hard run boundary so that it does
// not get absorbed into a preceding text or byte run.
type Vars struct {
	referenced set.Set[uint16]
	usageAt    map[uint16][]uint16 // referenced address -> instruction addresses
}

// New creates a new variable reference tracker.
func New() *Vars {
	return &Vars{
		referenced: set.New[uint16](),
		usageAt:    map[uint16][]uint16{},
	}
}

// AddReference records that an instruction at the usage address references
// the given address as a 16 bit immediate.
func (v *Vars) AddReference(address, usageAddress uint16) {
	v.referenced.Add(address)
	v.usageAt[address] = append(v.usageAt[address], usageAddress)
}

// IsReferenced returns whether the address was seen as a 16 bit immediate.
func (v *Vars) IsReferenced(address uint16) bool {
	return v.referenced.Contains(address)
}

// Usages returns the instruction addresses referencing the given address,
// in ascending order.
func (v *Vars) Usages(address uint16) []uint16 {
	usages := make([]uint16, len(v.usageAt[address]))
	copy(usages, v.usageAt[address])
	sort.Slice(usages, func(i, j int) bool {
		return usages[i] < usages[j]
	})
	return usages
}

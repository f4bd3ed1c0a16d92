// Package program represents the disassembled program listing.
package program

import (
	"github.com/retroenv/z80godisasm/internal/instruction"
)

// Listing is the address ordered disassembly result that gets handed to the
// assembler file writer.
type Listing struct {
	Name        string   // name of the input file
	Checksum    uint32   // CRC32 checksum of the input
	EntryPoints []uint16 // entry points the code tracing started from

	Instructions []*instruction.Instruction
}

// New creates a new program listing.
func New(name string, instructions []*instruction.Instruction) *Listing {
	return &Listing{
		Name:         name,
		Instructions: instructions,
	}
}

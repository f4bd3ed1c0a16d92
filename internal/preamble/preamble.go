// Package preamble detects self-relocating bootstrap code.
//
// Relocated binaries often start with a short stub that copies the payload
// to its final address with ldir and jumps into the copy:
//
//	ld de, destination
//	ld hl, source
//	ld bc, length
//	ldir
//	jp entry
//
// The three register loads may appear in any order.
package preamble

import "github.com/retroenv/z80godisasm/internal/memory"

// Preamble describes a detected copy-and-jump bootstrap sequence.
type Preamble struct {
	Source      uint16 // start of the copied region
	Length      uint16 // number of copied bytes
	Destination uint16 // address the region is copied to
	Jump        uint16 // address the stub jumps to after copying
}

const (
	opcodeLdBc = 0x01
	opcodeLdDe = 0x11
	opcodeLdHl = 0x21
	opcodeEd   = 0xed
	opcodeLdir = 0xb0
	opcodeJp   = 0xc3
)

// Detect matches the copy-and-jump pattern at the given entry address.
// It returns nil if the bytes at the entry do not form a preamble.
func Detect(img *memory.Image, entry uint16) *Preamble {
	pre := &Preamble{}
	address := entry

	var haveBc, haveDe, haveHl bool
	for i := 0; i < 3; i++ {
		if !hasContent(img, address, 3) {
			return nil
		}

		word := readWord(img, address+1)
		switch img.Read(address) {
		case opcodeLdBc:
			pre.Length = word
			haveBc = true
		case opcodeLdDe:
			pre.Destination = word
			haveDe = true
		case opcodeLdHl:
			pre.Source = word
			haveHl = true
		default:
			return nil
		}
		address += 3
	}
	if !haveBc || !haveDe || !haveHl {
		return nil // a register was loaded twice
	}

	if !hasContent(img, address, 2) ||
		img.Read(address) != opcodeEd || img.Read(address+1) != opcodeLdir {
		return nil
	}
	address += 2

	if !hasContent(img, address, 3) || img.Read(address) != opcodeJp {
		return nil
	}
	pre.Jump = readWord(img, address+1)

	return pre
}

func hasContent(img *memory.Image, address uint16, length int) bool {
	for i := 0; i < length; i++ {
		if !img.HasContent(address + uint16(i)) {
			return false
		}
	}
	return true
}

func readWord(img *memory.Image, address uint16) uint16 {
	low := uint16(img.Read(address))
	high := uint16(img.Read(address + 1))
	return high<<8 | low
}

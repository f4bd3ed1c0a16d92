// Package z80 provides the Z80 opcode tables that drive the disassembler.
package z80

import "strconv"

// Operand encoding placeholders used in instruction params. A param token
// either equals a placeholder or embeds it, as in "(nn)" or "(ix+dd)".
const (
	WordParam         = "nn" // 16-bit immediate or address, low byte first
	ByteParam         = "n"  // 8-bit immediate
	DisplacementParam = "dd" // 8-bit index register displacement
	RelativeParam     = "o"  // 8-bit signed branch offset
)

// Opcode describes a terminal opcode table entry.
type Opcode struct {
	Name   string
	Params []string
}

// Entry is a node of the opcode table. Either Next is set and the next byte
// of the instruction selects an entry of the nested table, or Op terminates
// the table walk with an instruction definition.
type Entry struct {
	Next Table
	Op   *Opcode
}

// Table maps an opcode byte to its table entry.
type Table map[byte]Entry

func op(name string, params ...string) Entry {
	return Entry{Op: &Opcode{Name: name, Params: params}}
}

// registers8 indexes the 8 bit register encoding of the lower opcode bits.
var registers8 = []string{"b", "c", "d", "e", "h", "l", "(hl)", "a"}

// Opcodes is the top level opcode table. The 0xcb, 0xdd, 0xed and 0xfd
// prefix entries descend into nested tables and are set up by init.
//
// The 0xdd 0xcb and 0xfd 0xcb sequences encode their displacement byte
// between the prefix and the final opcode byte, which does not fit the
// strictly prefix based table structure. They are left out of the tables
// and decode as .byte data.
var Opcodes = Table{
	0x00: op("nop"),
	0x01: op("ld", "bc", "nn"),
	0x02: op("ld", "(bc)", "a"),
	0x03: op("inc", "bc"),
	0x04: op("inc", "b"),
	0x05: op("dec", "b"),
	0x06: op("ld", "b", "n"),
	0x07: op("rlca"),
	0x08: op("ex", "af", "af'"),
	0x09: op("add", "hl", "bc"),
	0x0a: op("ld", "a", "(bc)"),
	0x0b: op("dec", "bc"),
	0x0c: op("inc", "c"),
	0x0d: op("dec", "c"),
	0x0e: op("ld", "c", "n"),
	0x0f: op("rrca"),
	0x10: op("djnz", "o"),
	0x11: op("ld", "de", "nn"),
	0x12: op("ld", "(de)", "a"),
	0x13: op("inc", "de"),
	0x14: op("inc", "d"),
	0x15: op("dec", "d"),
	0x16: op("ld", "d", "n"),
	0x17: op("rla"),
	0x18: op("jr", "o"),
	0x19: op("add", "hl", "de"),
	0x1a: op("ld", "a", "(de)"),
	0x1b: op("dec", "de"),
	0x1c: op("inc", "e"),
	0x1d: op("dec", "e"),
	0x1e: op("ld", "e", "n"),
	0x1f: op("rra"),
	0x20: op("jr", "nz", "o"),
	0x21: op("ld", "hl", "nn"),
	0x22: op("ld", "(nn)", "hl"),
	0x23: op("inc", "hl"),
	0x24: op("inc", "h"),
	0x25: op("dec", "h"),
	0x26: op("ld", "h", "n"),
	0x27: op("daa"),
	0x28: op("jr", "z", "o"),
	0x29: op("add", "hl", "hl"),
	0x2a: op("ld", "hl", "(nn)"),
	0x2b: op("dec", "hl"),
	0x2c: op("inc", "l"),
	0x2d: op("dec", "l"),
	0x2e: op("ld", "l", "n"),
	0x2f: op("cpl"),
	0x30: op("jr", "nc", "o"),
	0x31: op("ld", "sp", "nn"),
	0x32: op("ld", "(nn)", "a"),
	0x33: op("inc", "sp"),
	0x34: op("inc", "(hl)"),
	0x35: op("dec", "(hl)"),
	0x36: op("ld", "(hl)", "n"),
	0x37: op("scf"),
	0x38: op("jr", "c", "o"),
	0x39: op("add", "hl", "sp"),
	0x3a: op("ld", "a", "(nn)"),
	0x3b: op("dec", "sp"),
	0x3c: op("inc", "a"),
	0x3d: op("dec", "a"),
	0x3e: op("ld", "a", "n"),
	0x3f: op("ccf"),
	0x76: op("halt"),
	0xc0: op("ret", "nz"),
	0xc1: op("pop", "bc"),
	0xc2: op("jp", "nz", "nn"),
	0xc3: op("jp", "nn"),
	0xc4: op("call", "nz", "nn"),
	0xc5: op("push", "bc"),
	0xc6: op("add", "a", "n"),
	0xc7: op("rst", "0x00"),
	0xc8: op("ret", "z"),
	0xc9: op("ret"),
	0xca: op("jp", "z", "nn"),
	0xcc: op("call", "z", "nn"),
	0xcd: op("call", "nn"),
	0xce: op("adc", "a", "n"),
	0xcf: op("rst", "0x08"),
	0xd0: op("ret", "nc"),
	0xd1: op("pop", "de"),
	0xd2: op("jp", "nc", "nn"),
	0xd3: op("out", "(n)", "a"),
	0xd4: op("call", "nc", "nn"),
	0xd5: op("push", "de"),
	0xd6: op("sub", "n"),
	0xd7: op("rst", "0x10"),
	0xd8: op("ret", "c"),
	0xd9: op("exx"),
	0xda: op("jp", "c", "nn"),
	0xdb: op("in", "a", "(n)"),
	0xdc: op("call", "c", "nn"),
	0xde: op("sbc", "a", "n"),
	0xdf: op("rst", "0x18"),
	0xe0: op("ret", "po"),
	0xe1: op("pop", "hl"),
	0xe2: op("jp", "po", "nn"),
	0xe3: op("ex", "(sp)", "hl"),
	0xe4: op("call", "po", "nn"),
	0xe5: op("push", "hl"),
	0xe6: op("and", "n"),
	0xe7: op("rst", "0x20"),
	0xe8: op("ret", "pe"),
	0xe9: op("jp", "(hl)"),
	0xea: op("jp", "pe", "nn"),
	0xeb: op("ex", "de", "hl"),
	0xec: op("call", "pe", "nn"),
	0xee: op("xor", "n"),
	0xef: op("rst", "0x28"),
	0xf0: op("ret", "p"),
	0xf1: op("pop", "af"),
	0xf2: op("jp", "p", "nn"),
	0xf3: op("di"),
	0xf4: op("call", "p", "nn"),
	0xf5: op("push", "af"),
	0xf6: op("or", "n"),
	0xf7: op("rst", "0x30"),
	0xf8: op("ret", "m"),
	0xf9: op("ld", "sp", "hl"),
	0xfa: op("jp", "m", "nn"),
	0xfb: op("ei"),
	0xfc: op("call", "m", "nn"),
	0xfe: op("cp", "n"),
	0xff: op("rst", "0x38"),
}

func init() {
	fillRegisterGrids()

	Opcodes[0xcb] = Entry{Next: bitOpsTable()}
	Opcodes[0xed] = Entry{Next: extendedTable}
	Opcodes[0xdd] = Entry{Next: indexRegisterTable("ix")}
	Opcodes[0xfd] = Entry{Next: indexRegisterTable("iy")}
}

// fillRegisterGrids adds the regular register to register load grid
// (0x40..0x7f, except halt) and the ALU grid (0x80..0xbf).
func fillRegisterGrids() {
	for i := 0x40; i < 0x80; i++ {
		if i == 0x76 { // halt replaces ld (hl),(hl)
			continue
		}
		Opcodes[byte(i)] = op("ld", registers8[(i>>3)&7], registers8[i&7])
	}

	alu := []struct {
		name        string
		accumulator bool
	}{
		{"add", true},
		{"adc", true},
		{"sub", false},
		{"sbc", true},
		{"and", false},
		{"xor", false},
		{"or", false},
		{"cp", false},
	}
	for i := 0x80; i < 0xc0; i++ {
		operation := alu[(i>>3)&7]
		reg := registers8[i&7]
		if operation.accumulator {
			Opcodes[byte(i)] = op(operation.name, "a", reg)
		} else {
			Opcodes[byte(i)] = op(operation.name, reg)
		}
	}
}

// bitOpsTable builds the 0xcb prefix table for the rotate, shift and
// bit test/reset/set instructions.
func bitOpsTable() Table {
	table := Table{}
	rotations := []string{"rlc", "rrc", "rl", "rr", "sla", "sra", "sll", "srl"}

	for i := 0; i < 0x40; i++ {
		table[byte(i)] = op(rotations[(i>>3)&7], registers8[i&7])
	}
	for i := 0x40; i < 0x100; i++ {
		bit := strconv.Itoa((i >> 3) & 7)
		reg := registers8[i&7]

		switch {
		case i < 0x80:
			table[byte(i)] = op("bit", bit, reg)
		case i < 0xc0:
			table[byte(i)] = op("res", bit, reg)
		default:
			table[byte(i)] = op("set", bit, reg)
		}
	}
	return table
}

// extendedTable is the 0xed prefix table.
var extendedTable = Table{
	0x40: op("in", "b", "(c)"),
	0x41: op("out", "(c)", "b"),
	0x42: op("sbc", "hl", "bc"),
	0x43: op("ld", "(nn)", "bc"),
	0x44: op("neg"),
	0x45: op("retn"),
	0x46: op("im", "0"),
	0x47: op("ld", "i", "a"),
	0x48: op("in", "c", "(c)"),
	0x49: op("out", "(c)", "c"),
	0x4a: op("adc", "hl", "bc"),
	0x4b: op("ld", "bc", "(nn)"),
	0x4d: op("reti"),
	0x4f: op("ld", "r", "a"),
	0x50: op("in", "d", "(c)"),
	0x51: op("out", "(c)", "d"),
	0x52: op("sbc", "hl", "de"),
	0x53: op("ld", "(nn)", "de"),
	0x56: op("im", "1"),
	0x57: op("ld", "a", "i"),
	0x58: op("in", "e", "(c)"),
	0x59: op("out", "(c)", "e"),
	0x5a: op("adc", "hl", "de"),
	0x5b: op("ld", "de", "(nn)"),
	0x5e: op("im", "2"),
	0x5f: op("ld", "a", "r"),
	0x60: op("in", "h", "(c)"),
	0x61: op("out", "(c)", "h"),
	0x62: op("sbc", "hl", "hl"),
	0x63: op("ld", "(nn)", "hl"),
	0x67: op("rrd"),
	0x68: op("in", "l", "(c)"),
	0x69: op("out", "(c)", "l"),
	0x6a: op("adc", "hl", "hl"),
	0x6b: op("ld", "hl", "(nn)"),
	0x6f: op("rld"),
	0x72: op("sbc", "hl", "sp"),
	0x73: op("ld", "(nn)", "sp"),
	0x78: op("in", "a", "(c)"),
	0x79: op("out", "(c)", "a"),
	0x7a: op("adc", "hl", "sp"),
	0x7b: op("ld", "sp", "(nn)"),
	0xa0: op("ldi"),
	0xa1: op("cpi"),
	0xa2: op("ini"),
	0xa3: op("outi"),
	0xa8: op("ldd"),
	0xa9: op("cpd"),
	0xaa: op("ind"),
	0xab: op("outd"),
	0xb0: op("ldir"),
	0xb1: op("cpir"),
	0xb2: op("inir"),
	0xb3: op("otir"),
	0xb8: op("lddr"),
	0xb9: op("cpdr"),
	0xba: op("indr"),
	0xbb: op("otdr"),
}

// indexRegisterTable derives the 0xdd/0xfd prefix table from the base table.
// The prefix redirects every hl access of the base instruction to the given
// index register, memory accesses gain a displacement byte.
func indexRegisterTable(reg string) Table {
	table := Table{}

	for b, entry := range Opcodes {
		if entry.Op == nil {
			continue
		}
		if b == 0xeb { // ex de,hl is not affected by the prefix
			continue
		}

		params, changed := substituteIndexRegister(entry.Op.Params, reg, b == 0xe9)
		if !changed {
			continue
		}
		table[b] = op(entry.Op.Name, params...)
	}
	return table
}

func substituteIndexRegister(params []string, reg string, jumpIndirect bool) ([]string, bool) {
	changed := false
	result := make([]string, len(params))

	for i, param := range params {
		switch param {
		case "hl":
			result[i] = reg
			changed = true
		case "(hl)":
			if jumpIndirect { // jp (ix) carries no displacement byte
				result[i] = "(" + reg + ")"
			} else {
				result[i] = "(" + reg + "+" + DisplacementParam + ")"
			}
			changed = true
		default:
			result[i] = param
		}
	}
	return result, changed
}

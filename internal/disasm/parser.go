package disasm

import (
	"fmt"

	"github.com/retroenv/z80godisasm/internal/instruction"
	"github.com/retroenv/z80godisasm/internal/vars"
	"github.com/retroenv/z80godisasm/internal/z80"
)

// followExecutionFlow drains the parse queue and follows the execution flow
// to decode all reachable code.
func (dis *Disasm) followExecutionFlow() {
	dec := &decoder{
		readByte: dis.mem.Read,
		vars:     dis.vars,
	}

	for addr, ok := dis.addressToDisassemble(); ok; addr, ok = dis.addressToDisassemble() {
		if dis.mem.IsDecoded(addr) {
			continue
		}

		ins := dec.decode(addr)
		dis.instructions[addr] = ins
		dis.mem.SetDecoded(addr, len(ins.Data))

		if target, hasTarget := ins.JumpTarget(); hasTarget {
			dis.addAddressToParse(target)
		}
		if ins.Continues() {
			dis.addAddressToParse(addr + uint16(len(ins.Data)))
		}
	}
}

// addressToDisassemble returns the next address to disassemble, the second
// return value is false once the queue is drained.
func (dis *Disasm) addressToDisassemble() (uint16, bool) {
	if len(dis.addressesToParse) == 0 {
		return 0, false
	}
	addr := dis.addressesToParse[0]
	dis.addressesToParse = dis.addressesToParse[1:]
	return addr, true
}

// addAddressToParse adds an address to the parse queue if it has content and
// has not been decoded or queued yet.
func (dis *Disasm) addAddressToParse(address uint16) {
	if !dis.mem.HasContent(address) || dis.mem.IsDecoded(address) {
		return
	}
	if _, ok := dis.addressesToParseAdded[address]; ok {
		return
	}
	dis.addressesToParseAdded[address] = struct{}{}
	dis.addressesToParse = append(dis.addressesToParse, address)
}

// decoder decodes single instructions from a byte reader. The variable
// tracker is nil when decoding against live memory in trace mode.
type decoder struct {
	readByte func(uint16) byte
	vars     *vars.Vars
}

// decode reads one instruction starting at the given address by walking the
// opcode table through its prefix levels. Byte sequences without a table
// entry decode to a .byte pseudo-instruction covering the consumed bytes.
func (d *decoder) decode(address uint16) *instruction.Instruction {
	table := z80.Opcodes
	var data []byte
	pc := address

	for {
		b := d.readByte(pc)
		pc++
		data = append(data, b)

		entry, ok := table[b]
		if !ok {
			return d.unknownBytes(address, data)
		}
		if entry.Next != nil {
			table = entry.Next
			continue
		}

		ins := instruction.New(address, entry.Op.Name)
		ins.Data = data
		for _, token := range entry.Op.Params {
			pc = d.resolveParam(ins, entry.Op, token, pc)
		}
		ins.SetContinues(z80.Continues(entry.Op.Name, entry.Op.Params))
		return ins
	}
}

// unknownBytes turns an unrecognized byte sequence into a .byte
// pseudo-instruction, decoding continues at the following address.
func (d *decoder) unknownBytes(address uint16, data []byte) *instruction.Instruction {
	ins := instruction.New(address, ".byte")
	ins.Data = data
	for _, b := range data {
		text := fmt.Sprintf("0x%02x", b)
		ins.AddParam(text, text, false)
	}
	return ins
}

// resolveParam renders one operand token, consuming the operand bytes it
// encodes. The token is rescanned until no placeholder remains. Operands
// that reference a jump target stay unresolved, their text is bound during
// label resolution.
func (d *decoder) resolveParam(ins *instruction.Instruction, op *z80.Opcode,
	token string, pc uint16) uint16 {

	text := token
	isTarget := false

	for !isTarget {
		switch {
		case containsPlaceholder(text, z80.WordParam):
			low := d.readByte(pc)
			high := d.readByte(pc + 1)
			pc += 2
			ins.Data = append(ins.Data, low, high)

			value := uint16(high)<<8 | uint16(low)
			if z80.IsBranching(op.Name) {
				ins.SetJumpTarget(value)
				isTarget = true
				continue
			}
			text = replacePlaceholder(text, z80.WordParam, fmt.Sprintf("0x%04x", value))
			if d.vars != nil {
				d.vars.AddReference(value, ins.Address)
			}

		case containsPlaceholder(text, z80.DisplacementParam):
			b := d.readByte(pc)
			pc++
			ins.Data = append(ins.Data, b)
			text = replacePlaceholder(text, z80.DisplacementParam, fmt.Sprintf("0x%02x", b))

		case containsPlaceholder(text, z80.ByteParam):
			b := d.readByte(pc)
			pc++
			ins.Data = append(ins.Data, b)
			text = replacePlaceholder(text, z80.ByteParam, fmt.Sprintf("0x%02x", b))

		case containsPlaceholder(text, z80.RelativeParam):
			b := d.readByte(pc)
			pc++
			ins.Data = append(ins.Data, b)

			offset := uint16(b)
			target := pc + offset
			if offset >= 0x80 {
				target = pc + offset - 0x100
			}
			ins.SetJumpTarget(target)
			isTarget = true

		default:
			ins.AddParam(token, text, false)
			return pc
		}
	}

	ins.AddParam(token, "", true)
	return pc
}

// findPlaceholder returns the index of the placeholder inside the token, or
// -1 if it does not occur. Placeholders only match where they are not part
// of a longer register or condition name, as in "(nn)" or "(ix+dd)".
func findPlaceholder(token, placeholder string) int {
	for i := 0; i+len(placeholder) <= len(token); i++ {
		if token[i:i+len(placeholder)] != placeholder {
			continue
		}
		if i > 0 && isNameChar(token[i-1]) {
			continue
		}
		if next := i + len(placeholder); next < len(token) && isNameChar(token[next]) {
			continue
		}
		return i
	}
	return -1
}

func containsPlaceholder(token, placeholder string) bool {
	return findPlaceholder(token, placeholder) >= 0
}

func replacePlaceholder(token, placeholder, value string) string {
	i := findPlaceholder(token, placeholder)
	if i < 0 {
		return token
	}
	return token[:i] + value + token[i+len(placeholder):]
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

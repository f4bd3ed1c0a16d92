package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/z80godisasm/internal/instruction"
	"github.com/retroenv/z80godisasm/internal/memory"
)

const (
	maxTextRun = 50 // longest .text run, longer text gets split
	maxByteRun = 8  // bytes per .byte pseudo-instruction

	terminatorNul = 0x00
	terminatorEtx = 0x03
)

// classifyData produces a best effort data pseudo-instruction for an address
// that has content but was not reached by the code tracing. Printable text
// runs become .text, everything else becomes .byte runs.
func (dis *Disasm) classifyData(address uint16) *instruction.Instruction {
	if isTextByte(dis.mem.Read(address)) {
		if ins := dis.classifyText(address); ins != nil {
			return ins
		}
	}
	return dis.classifyBytes(address)
}

// classifyText greedily extends a text run. Runs shorter than 2 bytes are
// abandoned and classified as bytes instead. A referenced address inside the
// run acts as a hard boundary, it likely starts its own data item.
func (dis *Disasm) classifyText(address uint16) *instruction.Instruction {
	var run []byte
	for i := 0; i < maxTextRun && int(address)+i < memory.Size; i++ {
		addr := address + uint16(i)
		if !dis.mem.HasContent(addr) || dis.mem.IsDecoded(addr) {
			break
		}
		if i > 0 && dis.vars.IsReferenced(addr) {
			break
		}
		b := dis.mem.Read(addr)
		if !isTextByte(b) {
			break
		}
		run = append(run, b)
	}
	if len(run) < 2 {
		return nil
	}

	ins := instruction.New(address, ".text")
	ins.Data = run

	// consecutive printable bytes merge into one quoted token, line feed and
	// carriage return break the token and are emitted as hex values
	quoted := &strings.Builder{}
	for _, b := range run {
		if !isPrintable(b) {
			flushQuoted(ins, quoted)
			text := fmt.Sprintf("0x%02x", b)
			ins.AddParam(text, text, false)
			continue
		}
		if quoted.Len() == 0 {
			quoted.WriteByte('"')
		}
		if b == '"' {
			quoted.WriteByte('\\')
		}
		quoted.WriteByte(b)
	}
	flushQuoted(ins, quoted)

	dis.consumeTerminator(ins, address+uint16(len(run)))
	return ins
}

// consumeTerminator appends a single trailing string terminator byte to the
// text run if one follows it.
func (dis *Disasm) consumeTerminator(ins *instruction.Instruction, address uint16) {
	if !dis.mem.HasContent(address) || dis.mem.IsDecoded(address) ||
		dis.vars.IsReferenced(address) {
		return
	}

	b := dis.mem.Read(address)
	if b != terminatorNul && b != terminatorEtx {
		return
	}

	ins.Data = append(ins.Data, b)
	text := fmt.Sprintf("0x%02x", b)
	ins.AddParam(text, text, false)
}

// classifyBytes consumes a run of up to maxByteRun raw data bytes.
func (dis *Disasm) classifyBytes(address uint16) *instruction.Instruction {
	ins := instruction.New(address, ".byte")

	for i := 0; i < maxByteRun && int(address)+i < memory.Size; i++ {
		addr := address + uint16(i)
		if !dis.mem.HasContent(addr) || dis.mem.IsDecoded(addr) {
			break
		}
		if i > 0 && dis.vars.IsReferenced(addr) {
			break
		}

		b := dis.mem.Read(addr)
		ins.Data = append(ins.Data, b)
		text := fmt.Sprintf("0x%02x", b)
		ins.AddParam(text, text, false)
	}
	return ins
}

func flushQuoted(ins *instruction.Instruction, quoted *strings.Builder) {
	if quoted.Len() == 0 {
		return
	}
	quoted.WriteByte('"')
	text := quoted.String()
	ins.AddParam(text, text, false)
	quoted.Reset()
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

func isTextByte(b byte) bool {
	return isPrintable(b) || b == '\n' || b == '\r'
}

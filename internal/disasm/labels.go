package disasm

import (
	"fmt"

	"github.com/retroenv/z80godisasm/internal/instruction"
)

const autoLabelNaming = "label%d"

// resolveLabels assigns labels to all jump destinations of the listing and
// binds the pending jump target operand texts. Known label names take
// priority, all other destinations get an auto generated name numbered in
// address order.
func (dis *Disasm) resolveLabels(listing []*instruction.Instruction) {
	sources := jumpTargetIndex(listing)

	counter := 1
	for _, ins := range listing {
		name, known := dis.labels.Get(ins.Address)
		if !known {
			if len(sources[ins.Address]) == 0 {
				continue
			}
			name = fmt.Sprintf(autoLabelNaming, counter)
			counter++
		}

		ins.Label = name
		for _, source := range sources[ins.Address] {
			source.ResolveTarget(name)
		}
	}

	// targets outside the listed address space resolve to a known label or
	// a literal address
	for _, ins := range listing {
		dis.resolveTraceTarget(ins)
	}
}

// jumpTargetIndex maps each jump target address to the instructions that
// branch to it.
func jumpTargetIndex(listing []*instruction.Instruction) map[uint16][]*instruction.Instruction {
	sources := map[uint16][]*instruction.Instruction{}
	for _, ins := range listing {
		if target, ok := ins.JumpTarget(); ok {
			sources[target] = append(sources[target], ins)
		}
	}
	return sources
}

// resolveTraceTarget binds the jump target operand of a single instruction
// to the known label of the target, or its literal address.
func (dis *Disasm) resolveTraceTarget(ins *instruction.Instruction) {
	target, ok := ins.JumpTarget()
	if !ok || ins.TargetResolved() {
		return
	}

	if name, known := dis.labels.Get(target); known {
		ins.ResolveTarget(name)
		return
	}
	ins.ResolveTarget(fmt.Sprintf("0x%04x", target))
}

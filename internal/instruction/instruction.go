// Package instruction contains the representation of a decoded instruction.
package instruction

import "strings"

// Param is a single rendered operand of an instruction. For operands that
// reference a jump target the final text is bound late, after all jump
// destinations are known and have their labels assigned.
type Param struct {
	Encoding string // operand encoding token from the opcode table
	Text     string // rendered operand text
	IsTarget bool   // text gets set during label resolution
}

// Instruction represents a single decoded instruction or a data
// pseudo-instruction (.byte, .text). It is immutable after decoding except
// for the label and the late bound jump target operand text.
type Instruction struct {
	Address uint16
	Data    []byte // the raw bytes the instruction consists of
	Name    string
	Params  []Param
	Label   string // set during label resolution if the address is a jump target

	jumpTarget     uint16
	hasTarget      bool
	continues      bool
	targetResolved bool
}

// New creates a new instruction starting at the given address.
func New(address uint16, name string) *Instruction {
	return &Instruction{
		Address:   address,
		Name:      name,
		continues: true,
	}
}

// AddParam appends a rendered operand.
func (ins *Instruction) AddParam(encoding, text string, isTarget bool) {
	ins.Params = append(ins.Params, Param{
		Encoding: encoding,
		Text:     text,
		IsTarget: isTarget,
	})
}

// SetJumpTarget records the statically resolved control flow target.
func (ins *Instruction) SetJumpTarget(address uint16) {
	ins.jumpTarget = address
	ins.hasTarget = true
}

// JumpTarget returns the statically resolved control flow target of the
// instruction, the second return value is false if it has none.
func (ins *Instruction) JumpTarget() (uint16, bool) {
	return ins.jumpTarget, ins.hasTarget
}

// SetContinues sets whether execution falls through to the next address.
func (ins *Instruction) SetContinues(continues bool) {
	ins.continues = continues
}

// Continues returns whether execution falls through to the next address.
func (ins *Instruction) Continues() bool {
	return ins.continues
}

// ResolveTarget sets the final text of the pending jump target operands,
// either a label name or a literal address.
func (ins *Instruction) ResolveTarget(text string) {
	for i := range ins.Params {
		if ins.Params[i].IsTarget {
			ins.Params[i].Text = text
		}
	}
	ins.targetResolved = true
}

// TargetResolved returns whether the jump target operand text has been set.
func (ins *Instruction) TargetResolved() bool {
	return ins.targetResolved
}

// String renders the instruction as assembler source text.
func (ins *Instruction) String() string {
	if len(ins.Params) == 0 {
		return ins.Name
	}

	sb := strings.Builder{}
	sb.WriteString(ins.Name)
	sb.WriteString(" ")
	for i, param := range ins.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(param.Text)
	}
	return sb.String()
}

package z80

// BranchingInstructions contains all instructions that transfer control to a
// statically encoded target address.
var BranchingInstructions = map[string]struct{}{
	"call": {},
	"djnz": {},
	"jp":   {},
	"jr":   {},
}

// NotExecutingFollowingOpcodeInstructions contains the instructions that do
// not fall through to the following address in their unconditional form.
var NotExecutingFollowingOpcodeInstructions = map[string]struct{}{
	"jp":   {},
	"jr":   {},
	"ret":  {},
	"reti": {},
	"retn": {},
}

// Conditions contains the condition operand tokens of conditional jumps,
// calls and returns.
var Conditions = map[string]struct{}{
	"c":  {},
	"m":  {},
	"nc": {},
	"nz": {},
	"p":  {},
	"pe": {},
	"po": {},
	"z":  {},
}

// IsBranching returns whether the instruction transfers control to a
// statically encoded address.
func IsBranching(name string) bool {
	_, ok := BranchingInstructions[name]
	return ok
}

// Continues returns whether execution continues at the following address
// after the instruction. Conditional jumps and returns fall through, their
// unconditional forms do not.
func Continues(name string, params []string) bool {
	if _, ok := NotExecutingFollowingOpcodeInstructions[name]; !ok {
		return true
	}
	if len(params) == 0 {
		return false // ret, reti, retn
	}
	_, conditional := Conditions[params[0]]
	return conditional
}

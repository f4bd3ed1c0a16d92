package z80

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBaseTable(t *testing.T) {
	tests := []struct {
		opcode byte
		name   string
		params []string
	}{
		{0x00, "nop", nil},
		{0x18, "jr", []string{"o"}},
		{0x21, "ld", []string{"hl", "nn"}},
		{0x36, "ld", []string{"(hl)", "n"}},
		{0x76, "halt", nil},
		{0x78, "ld", []string{"a", "b"}},
		{0x96, "sub", []string{"(hl)"}},
		{0x9e, "sbc", []string{"a", "(hl)"}},
		{0xc3, "jp", []string{"nn"}},
		{0xc7, "rst", []string{"0x00"}},
		{0xda, "jp", []string{"c", "nn"}},
		{0xe9, "jp", []string{"(hl)"}},
		{0xfe, "cp", []string{"n"}},
	}

	for _, test := range tests {
		entry := Opcodes[test.opcode]
		assert.NotNil(t, entry.Op, test.name)
		assert.Equal(t, test.name, entry.Op.Name)
		assert.Equal(t, len(test.params), len(entry.Op.Params))
		for i, param := range test.params {
			assert.Equal(t, param, entry.Op.Params[i])
		}
	}
}

func TestPrefixTables(t *testing.T) {
	cb := Opcodes[0xcb].Next
	assert.NotNil(t, cb)
	assert.Equal(t, "rlc", cb[0x00].Op.Name)
	assert.Equal(t, "bit", cb[0x47].Op.Name)
	assert.Equal(t, "res", cb[0x86].Op.Name)
	assert.Equal(t, "set", cb[0xff].Op.Name)
	assert.Equal(t, "srl", cb[0x3f].Op.Name)

	ed := Opcodes[0xed].Next
	assert.NotNil(t, ed)
	assert.Equal(t, "ldir", ed[0xb0].Op.Name)
	assert.Equal(t, "reti", ed[0x4d].Op.Name)
	assert.Equal(t, "im", ed[0x56].Op.Name)

	// sequences without table entry decode as data
	_, ok := ed[0x00]
	assert.False(t, ok)
}

func TestIndexRegisterTables(t *testing.T) {
	ix := Opcodes[0xdd].Next
	assert.NotNil(t, ix)

	entry := ix[0x21]
	assert.Equal(t, "ld", entry.Op.Name)
	assert.Equal(t, "ix", entry.Op.Params[0])
	assert.Equal(t, "nn", entry.Op.Params[1])

	entry = ix[0x34]
	assert.Equal(t, "inc", entry.Op.Name)
	assert.Equal(t, "(ix+dd)", entry.Op.Params[0])

	// jp (ix) carries no displacement byte
	entry = ix[0xe9]
	assert.Equal(t, "jp", entry.Op.Name)
	assert.Equal(t, "(ix)", entry.Op.Params[0])

	// ex de,hl is not affected by the prefix
	_, ok := ix[0xeb]
	assert.False(t, ok)

	iy := Opcodes[0xfd].Next
	entry = iy[0x36]
	assert.Equal(t, "ld", entry.Op.Name)
	assert.Equal(t, "(iy+dd)", entry.Op.Params[0])
	assert.Equal(t, "n", entry.Op.Params[1])
}

func TestBaseTableComplete(t *testing.T) {
	// every byte value has a base table entry, unknown sequences can only
	// start below a prefix
	for i := 0; i < 0x100; i++ {
		entry, ok := Opcodes[byte(i)]
		assert.True(t, ok)
		assert.True(t, entry.Op != nil || entry.Next != nil)
	}
}

func TestContinues(t *testing.T) {
	tests := []struct {
		name     string
		params   []string
		expected bool
	}{
		{"nop", nil, true},
		{"ld", []string{"hl", "nn"}, true},
		{"call", []string{"nn"}, true},
		{"djnz", []string{"o"}, true},
		{"jp", []string{"nn"}, false},
		{"jp", []string{"(hl)"}, false},
		{"jp", []string{"nz", "nn"}, true},
		{"jr", []string{"o"}, false},
		{"jr", []string{"c", "o"}, true},
		{"ret", nil, false},
		{"ret", []string{"z"}, true},
		{"reti", nil, false},
		{"retn", nil, false},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Continues(test.name, test.params), test.name)
	}
}

func TestIsBranching(t *testing.T) {
	assert.True(t, IsBranching("jp"))
	assert.True(t, IsBranching("jr"))
	assert.True(t, IsBranching("call"))
	assert.True(t, IsBranching("djnz"))
	assert.False(t, IsBranching("ld"))
	assert.False(t, IsBranching("ret"))
}

package instruction

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestString(t *testing.T) {
	ins := New(0x8000, "ret")
	assert.Equal(t, "ret", ins.String())

	ins = New(0x8000, "ld")
	ins.AddParam("hl", "hl", false)
	ins.AddParam("nn", "0x1234", false)
	assert.Equal(t, "ld hl, 0x1234", ins.String())
}

func TestContinuesDefault(t *testing.T) {
	ins := New(0x8000, "nop")
	assert.True(t, ins.Continues())

	ins.SetContinues(false)
	assert.False(t, ins.Continues())
}

func TestJumpTarget(t *testing.T) {
	ins := New(0x8000, "jp")

	_, ok := ins.JumpTarget()
	assert.False(t, ok)

	ins.SetJumpTarget(0x1234)
	target, ok := ins.JumpTarget()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), target)
}

func TestResolveTarget(t *testing.T) {
	ins := New(0x8000, "jp")
	ins.AddParam("nz", "nz", false)
	ins.AddParam("nn", "", true)

	assert.False(t, ins.TargetResolved())

	ins.ResolveTarget("label1")
	assert.True(t, ins.TargetResolved())
	assert.Equal(t, "jp nz, label1", ins.String())
}

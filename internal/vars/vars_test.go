package vars

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddReference(t *testing.T) {
	v := New()

	assert.False(t, v.IsReferenced(0x9000))

	v.AddReference(0x9000, 0x8003)
	v.AddReference(0x9000, 0x8000)

	assert.True(t, v.IsReferenced(0x9000))
	assert.False(t, v.IsReferenced(0x9001))
	assert.Equal(t, []uint16{0x8000, 0x8003}, v.Usages(0x9000))
}

func TestUsagesUnknownAddress(t *testing.T) {
	v := New()
	assert.Len(t, v.Usages(0x1234), 0)
}

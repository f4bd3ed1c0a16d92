package symbols

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAdd(t *testing.T) {
	table := NewTable()

	name, err := table.Add(0x8000, "start")
	assert.NoError(t, err)
	assert.Equal(t, "start", name)

	name, ok := table.Get(0x8000)
	assert.True(t, ok)
	assert.Equal(t, "start", name)

	_, ok = table.Get(0x8001)
	assert.False(t, ok)

	assert.True(t, table.HaveLabel("start"))
	assert.Equal(t, 1, table.Len())
}

func TestAddFirstLabelWins(t *testing.T) {
	table := NewTable()

	_, err := table.Add(0x8000, "start")
	assert.NoError(t, err)

	name, err := table.Add(0x8000, "other")
	assert.NoError(t, err)
	assert.Equal(t, "start", name)
	assert.False(t, table.HaveLabel("other"))
}

func TestAddCollidingNames(t *testing.T) {
	table := NewTable()

	name, err := table.Add(0x1000, "loop")
	assert.NoError(t, err)
	assert.Equal(t, "loop", name)

	name, err = table.Add(0x2000, "loop")
	assert.NoError(t, err)
	assert.Equal(t, "loop2", name)

	name, err = table.Add(0x3000, "loop")
	assert.NoError(t, err)
	assert.Equal(t, "loop3", name)
}

func TestAddNamespaceExhausted(t *testing.T) {
	table := NewTable()

	_, err := table.Add(0, "loop")
	assert.NoError(t, err)

	for i := 2; i <= maxNameSuffix; i++ {
		_, err = table.Add(uint16(i), fmt.Sprintf("loop%d", i))
		assert.NoError(t, err)
	}

	_, err = table.Add(0x8000, "loop")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNamespaceExhausted))
}

func TestSortedAddresses(t *testing.T) {
	table := NewTable()

	_, err := table.Add(0x2000, "b")
	assert.NoError(t, err)
	_, err = table.Add(0x1000, "a")
	assert.NoError(t, err)
	_, err = table.Add(0x3000, "c")
	assert.NoError(t, err)

	assert.Equal(t, []uint16{0x1000, 0x2000, 0x3000}, table.SortedAddresses())
}

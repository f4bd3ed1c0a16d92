package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddChunk(t *testing.T) {
	img := New()
	img.AddChunk(0x8000, []byte{0x01, 0x02})

	assert.Equal(t, byte(0x01), img.Read(0x8000))
	assert.Equal(t, byte(0x02), img.Read(0x8001))
	assert.True(t, img.HasContent(0x8000))
	assert.True(t, img.HasContent(0x8001))
	assert.False(t, img.HasContent(0x8002))
	assert.False(t, img.HasContent(0x7fff))
}

func TestAddChunkTruncatesAtTopOfMemory(t *testing.T) {
	img := New()
	img.AddChunk(0xffff, []byte{0x01, 0x02})

	assert.Equal(t, byte(0x01), img.Read(0xffff))
	assert.False(t, img.HasContent(0x0000))
}

func TestDecodedFlags(t *testing.T) {
	img := New()
	img.AddChunk(0x4000, []byte{0x01, 0x02, 0x03})
	img.SetDecoded(0x4000, 2)

	assert.True(t, img.IsDecoded(0x4000))
	assert.True(t, img.IsDecoded(0x4001))
	assert.False(t, img.IsDecoded(0x4002))
}

func TestCopyRegionAndClearContent(t *testing.T) {
	img := New()
	img.AddChunk(0x0100, []byte{0xaa, 0xbb})

	img.CopyRegion(0x0100, 0x8000, 2)
	img.ClearContent(0x0100, 2)

	assert.Equal(t, byte(0xaa), img.Read(0x8000))
	assert.Equal(t, byte(0xbb), img.Read(0x8001))
	assert.True(t, img.HasContent(0x8000))
	assert.False(t, img.HasContent(0x0100))
	assert.False(t, img.HasContent(0x0101))
}

func TestFirstContentAddress(t *testing.T) {
	img := New()

	_, ok := img.FirstContentAddress()
	assert.False(t, ok)

	img.AddChunk(0x2000, []byte{0x01})
	img.AddChunk(0x1000, []byte{0x01})

	address, ok := img.FirstContentAddress()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1000), address)
}

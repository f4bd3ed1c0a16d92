// Package memory implements the flat 64K address space that gets disassembled.
package memory

// Size is the number of addressable bytes of the Z80 address space.
const Size = 0x10000

// Image is a flat 64K memory image. Every byte carries two flags: whether the
// byte was supplied by a loaded chunk and whether it has been recognized as
// part of an instruction. Decoded implies content.
type Image struct {
	data    [Size]byte
	content [Size]bool
	decoded [Size]bool
}

// New creates a new empty memory image.
func New() *Image {
	return &Image{}
}

// AddChunk copies a chunk of bytes into the image at the given destination
// address and marks the covered range as having content. Chunks that would
// exceed the address space are truncated at the top of memory.
func (img *Image) AddChunk(address uint16, data []byte) {
	for i := 0; i < len(data) && int(address)+i < Size; i++ {
		addr := address + uint16(i)
		img.data[addr] = data[i]
		img.content[addr] = true
	}
}

// Read returns the byte at the given address.
func (img *Image) Read(address uint16) byte {
	return img.data[address]
}

// HasContent returns whether the byte at the given address was supplied
// by a loaded chunk.
func (img *Image) HasContent(address uint16) bool {
	return img.content[address]
}

// IsDecoded returns whether the byte at the given address is part of a
// recognized instruction.
func (img *Image) IsDecoded(address uint16) bool {
	return img.decoded[address]
}

// SetDecoded marks a range of bytes as being part of a recognized instruction.
func (img *Image) SetDecoded(address uint16, length int) {
	for i := 0; i < length && int(address)+i < Size; i++ {
		img.decoded[address+uint16(i)] = true
	}
}

// ClearContent removes the content marking of a range of bytes. It is used
// after relocating a self-copying preamble region so that the original bytes
// do not get classified as data a second time.
func (img *Image) ClearContent(address uint16, length int) {
	for i := 0; i < length && int(address)+i < Size; i++ {
		img.content[address+uint16(i)] = false
	}
}

// CopyRegion copies length bytes from the source address to the destination
// address, marking the destination range as having content.
func (img *Image) CopyRegion(source, destination uint16, length int) {
	data := make([]byte, 0, length)
	for i := 0; i < length && int(source)+i < Size; i++ {
		data = append(data, img.data[source+uint16(i)])
	}
	img.AddChunk(destination, data)
}

// FirstContentAddress returns the lowest address that has content.
// The second return value is false if the image is completely empty.
func (img *Image) FirstContentAddress() (uint16, bool) {
	for addr := 0; addr < Size; addr++ {
		if img.content[addr] {
			return uint16(addr), true
		}
	}
	return 0, false
}

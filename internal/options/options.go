// Package options contains the program options.
package options

// Program contains the options set via command line flags.
type Program struct {
	Input  string
	Output string
	Batch  string

	Org    uint
	Entry  string
	Labels string

	Debug bool
	Quiet bool

	NoHexComments bool
	NoOffsets     bool
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

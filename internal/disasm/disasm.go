// Package disasm implements a Z80 disassembler for raw memory images.
package disasm

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/instruction"
	"github.com/retroenv/z80godisasm/internal/memory"
	"github.com/retroenv/z80godisasm/internal/options"
	"github.com/retroenv/z80godisasm/internal/preamble"
	"github.com/retroenv/z80godisasm/internal/symbols"
	"github.com/retroenv/z80godisasm/internal/vars"
)

// ErrNoContent is returned when the memory image contains no content to
// disassemble.
var ErrNoContent = errors.New("no binary content")

// mainLabel is assigned to the destination of a relocated preamble region.
const mainLabel = "main"

// Disasm implements the disassembler. It owns the memory image, the label
// table, the entry points and the referenced address set. All operations
// mutate only the owning instance, nothing is shared.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	mem    *memory.Image
	labels *symbols.Table
	vars   *vars.Vars

	entryPoints  []uint16
	instructions map[uint16]*instruction.Instruction

	addressesToParse      []uint16
	addressesToParseAdded map[uint16]struct{}
}

// New creates a new disassembler.
func New(logger *log.Logger, opts options.Disassembler) *Disasm {
	return &Disasm{
		logger:                logger,
		options:               opts,
		mem:                   memory.New(),
		labels:                symbols.NewTable(),
		vars:                  vars.New(),
		instructions:          map[uint16]*instruction.Instruction{},
		addressesToParseAdded: map[uint16]struct{}{},
	}
}

// AddChunk loads a chunk of binary content at the given destination address.
func (dis *Disasm) AddChunk(address uint16, data []byte) {
	dis.mem.AddChunk(address, data)
}

// AddEntryPoint declares an address as the start of reachable code.
func (dis *Disasm) AddEntryPoint(address uint16) {
	dis.entryPoints = append(dis.entryPoints, address)
}

// AddLabel declares a known label name for an address and returns the name
// that was assigned, colliding names get a numeric suffix appended.
func (dis *Disasm) AddLabel(address uint16, name string) (string, error) {
	assigned, err := dis.labels.Add(address, name)
	if err != nil {
		return "", fmt.Errorf("adding label at address %04x: %w", address, err)
	}
	return assigned, nil
}

// HaveLabel returns whether a label with the given name exists.
func (dis *Disasm) HaveLabel(name string) bool {
	return dis.labels.HaveLabel(name)
}

// EntryPoints returns the declared and derived entry points.
func (dis *Disasm) EntryPoints() []uint16 {
	return dis.entryPoints
}

// Disassemble traces all reachable code from the entry points, classifies
// the remaining content bytes as data and returns the address ordered
// instruction listing with all labels assigned.
func (dis *Disasm) Disassemble() ([]*instruction.Instruction, error) {
	if err := dis.seedEntryPoints(); err != nil {
		return nil, err
	}

	dis.followExecutionFlow()

	listing := dis.buildListing()
	dis.resolveLabels(listing)
	return listing, nil
}

// DisassembleTrace decodes a single instruction against an arbitrary live
// memory reader. The jump target resolves to a known label or a literal
// address, the persistent label state is not touched.
func (dis *Disasm) DisassembleTrace(address uint16, readByte func(uint16) byte) *instruction.Instruction {
	dec := &decoder{readByte: readByte}
	ins := dec.decode(address)
	dis.resolveTraceTarget(ins)
	return ins
}

// seedEntryPoints fills the parse queue with the initial addresses to trace.
// An entry point that turns out to be a self-relocating preamble gets its
// copied region materialized at the destination address instead.
func (dis *Disasm) seedEntryPoints() error {
	if _, ok := dis.mem.FirstContentAddress(); !ok {
		return ErrNoContent
	}

	seeds := make([]uint16, 0, len(dis.entryPoints)+1)
	for _, entry := range dis.entryPoints {
		pre := preamble.Detect(dis.mem, entry)
		if pre == nil {
			seeds = append(seeds, entry)
			continue
		}

		if err := dis.relocatePreamble(pre); err != nil {
			return err
		}
		seeds = append(seeds, pre.Jump)
	}

	if len(seeds) == 0 {
		first, _ := dis.mem.FirstContentAddress()
		seeds = append(seeds, first)
	}

	dis.entryPoints = seeds
	for _, seed := range seeds {
		dis.addAddressToParse(seed)
	}
	return nil
}

// relocatePreamble copies the preamble payload to its destination address and
// removes the content marking of the source region so that it does not get
// classified as data a second time.
func (dis *Disasm) relocatePreamble(pre *preamble.Preamble) error {
	dis.logger.Debug("Relocating preamble region",
		log.String("source", fmt.Sprintf("0x%04x", pre.Source)),
		log.String("destination", fmt.Sprintf("0x%04x", pre.Destination)),
		log.String("jump", fmt.Sprintf("0x%04x", pre.Jump)),
		log.Uint16("length", pre.Length),
	)

	dis.mem.CopyRegion(pre.Source, pre.Destination, int(pre.Length))
	dis.mem.ClearContent(pre.Source, int(pre.Length))

	if _, err := dis.labels.Add(pre.Destination, mainLabel); err != nil {
		return fmt.Errorf("adding preamble label: %w", err)
	}
	return nil
}

// buildListing interleaves the traced instructions with data
// pseudo-instructions for all content bytes the tracing did not reach,
// ordered by address.
func (dis *Disasm) buildListing() []*instruction.Instruction {
	var listing []*instruction.Instruction

	for address := 0; address < memory.Size; {
		addr := uint16(address)

		if ins, ok := dis.instructions[addr]; ok {
			listing = append(listing, ins)
			address += len(ins.Data)
			continue
		}

		if dis.mem.HasContent(addr) && !dis.mem.IsDecoded(addr) {
			ins := dis.classifyData(addr)
			listing = append(listing, ins)
			address += len(ins.Data)
			continue
		}

		address++
	}
	return listing
}

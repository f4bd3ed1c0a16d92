// Package writer implements assembly listing file writing.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/z80godisasm/internal/instruction"
	"github.com/retroenv/z80godisasm/internal/program"
)

// Writer writes a program listing as assembler source text.
type Writer struct {
	listing *program.Listing
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // output the instruction bytes as hex values in comments
	OffsetComments bool // output the instruction addresses in comments
}

// New creates a new writer.
func New(listing *program.Listing, writer io.Writer, options Options) *Writer {
	return &Writer{
		listing: listing,
		options: options,
		writer:  writer,
	}
}

// Write writes the full listing, label lines and instruction lines with
// their optional address and hex byte comments.
func (w *Writer) Write() error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	for _, ins := range w.listing.Instructions {
		if err := w.writeInstruction(ins); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the input file name, checksum and entry points as
// comments to the output.
func (w *Writer) writeHeader() error {
	if w.listing.Name == "" {
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "; Input file: %s\n", w.listing.Name); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", w.listing.Checksum); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	entries := make([]string, 0, len(w.listing.EntryPoints))
	for _, entry := range w.listing.EntryPoints {
		entries = append(entries, fmt.Sprintf("0x%04x", entry))
	}
	if _, err := fmt.Fprintf(w.writer, "; Entry points: %s\n\n",
		strings.Join(entries, ", ")); err != nil {

		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

func (w *Writer) writeInstruction(ins *instruction.Instruction) error {
	if err := w.writeLabel(ins); err != nil {
		return err
	}

	line := ins.String()
	if !strings.HasPrefix(ins.Name, ".") {
		line = "  " + line
	}

	comment := w.lineComment(ins)
	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w *Writer) writeLabel(ins *instruction.Instruction) error {
	if ins.Label == "" {
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "\n%s:\n", ins.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

// lineComment builds the comment of an instruction line, containing the
// address and the raw instruction bytes depending on the options.
func (w *Writer) lineComment(ins *instruction.Instruction) string {
	parts := make([]string, 0, 2)

	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", ins.Address))
	}
	if w.options.HexComments {
		hexBytes := make([]string, 0, len(ins.Data))
		for _, b := range ins.Data {
			hexBytes = append(hexBytes, fmt.Sprintf("%02X", b))
		}
		parts = append(parts, strings.Join(hexBytes, " "))
	}

	return strings.Join(parts, " ")
}

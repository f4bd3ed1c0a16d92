// Package loader handles binary file loading operations.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/z80godisasm/internal/memory"
	"github.com/retroenv/z80godisasm/internal/options"
)

// Source contains the loaded binary and the caller supplied disassembly
// hints, ready to be fed into the disassembler.
type Source struct {
	Data   []byte
	Origin uint16

	EntryPoints []uint16
	Labels      map[uint16]string
}

// Load reads the input binary and parses the entry point list and the label
// file referenced by the options.
func Load(opts options.Program) (*Source, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s is empty", opts.Input)
	}

	if opts.Org >= memory.Size {
		return nil, fmt.Errorf("org address 0x%x is outside the address space", opts.Org)
	}
	if int(opts.Org)+len(data) > memory.Size {
		return nil, fmt.Errorf("binary of %d bytes does not fit at org address 0x%04x",
			len(data), opts.Org)
	}

	source := &Source{
		Data:   data,
		Origin: uint16(opts.Org),
		Labels: map[uint16]string{},
	}

	if source.EntryPoints, err = parseEntryList(opts.Entry); err != nil {
		return nil, fmt.Errorf("parsing entry points: %w", err)
	}

	if opts.Labels != "" {
		if source.Labels, err = parseLabelFile(opts.Labels); err != nil {
			return nil, fmt.Errorf("parsing label file: %w", err)
		}
	}
	return source, nil
}

// parseEntryList parses a comma separated list of hex addresses.
func parseEntryList(list string) ([]uint16, error) {
	if list == "" {
		return nil, nil
	}

	var entries []uint16
	for _, item := range strings.Split(list, ",") {
		address, err := parseAddress(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		entries = append(entries, address)
	}
	return entries, nil
}

// parseLabelFile parses a label file with one "<address> <name>" pair per
// line. Empty lines and lines starting with # are skipped.
func parseLabelFile(name string) (map[uint16]string, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	labels := map[uint16]string{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected '<address> <name>', got %q",
				lineNumber, line)
		}

		address, err := parseAddress(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		labels[address] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}
	return labels, nil
}

// parseAddress parses a 16 bit hex address, with or without 0x or $ prefix.
func parseAddress(s string) (uint16, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "$")
	value, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(value), nil
}

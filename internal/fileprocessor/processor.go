// Package fileprocessor handles the file disassembly workflow.
package fileprocessor

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/disasm"
	"github.com/retroenv/z80godisasm/internal/loader"
	"github.com/retroenv/z80godisasm/internal/options"
	"github.com/retroenv/z80godisasm/internal/program"
	"github.com/retroenv/z80godisasm/internal/writer"
)

// ProcessFile handles the complete processing workflow of one input file:
// load, disassemble and write the listing.
func ProcessFile(logger *log.Logger, opts options.Program) error {
	source, err := loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading binary: %w", err)
	}

	dis, err := setupDisassembler(logger, opts, source)
	if err != nil {
		return err
	}

	instructions, err := dis.Disassemble()
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	listing := program.New(filepath.Base(opts.Input), instructions)
	listing.Checksum = crc32.ChecksumIEEE(source.Data)
	listing.EntryPoints = dis.EntryPoints()

	output, err := createWriter(opts)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := output.(io.Closer); ok && output != os.Stdout {
			_ = closer.Close()
		}
	}()

	asmWriter := writer.New(listing, output, writer.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	})
	if err := asmWriter.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	logger.Info("Disassembled file",
		log.String("file", opts.Input),
		log.Int("instructions", len(instructions)),
	)
	return nil
}

func setupDisassembler(logger *log.Logger, opts options.Program,
	source *loader.Source) (*disasm.Disasm, error) {

	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets

	dis := disasm.New(logger, disasmOptions)
	dis.AddChunk(source.Origin, source.Data)

	// insert labels in address order to keep name suffixing deterministic
	addresses := make([]uint16, 0, len(source.Labels))
	for address := range source.Labels {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i] < addresses[j]
	})

	for _, address := range addresses {
		name := source.Labels[address]
		assigned, err := dis.AddLabel(address, name)
		if err != nil {
			return nil, fmt.Errorf("adding label: %w", err)
		}
		if assigned != name {
			logger.Debug("Renamed colliding label",
				log.String("name", name),
				log.String("assigned", assigned))
		}
	}

	for _, entry := range source.EntryPoints {
		dis.AddEntryPoint(entry)
	}
	return dis, nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", opts.Output, err)
	}
	return file, nil
}

// GetFilesToProcess returns the list of files to process based on options.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern %s", opts.Batch)
	}
	return matches, nil
}

// GenerateOutputFilename generates the output filename for an input file.
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

// PrintBanner prints the application banner and version.
func PrintBanner(opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	fmt.Println("[----------------------------------------]")
	fmt.Println("[ z80godisasm - Z80 binary disassembler  ]")
	fmt.Printf("[----------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

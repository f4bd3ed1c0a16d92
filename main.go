// Package main implements a Z80 binary disassembler
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/z80godisasm/internal/config"
	"github.com/retroenv/z80godisasm/internal/fileprocessor"
	"github.com/retroenv/z80godisasm/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	fileprocessor.PrintBanner(opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	for _, file := range files {
		opts.Input = file
		if len(files) > 1 {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(logger, opts); err != nil {
			logger.Error("Disassembling failed", log.Err(err))
		}
	}
}

func readArguments() options.Program {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.Program{}

	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.UintVar(&opts.Org, "org", 0, "address the binary is loaded at")
	flags.StringVar(&opts.Entry, "entry", "", "comma separated list of entry point addresses (default: lowest loaded address)")
	flags.StringVar(&opts.Labels, "labels", "", "name of a label file with one '<address> <name>' pair per line")
	flags.StringVar(&opts.Batch, "batch", "", "process all files matching the pattern (e.g. *.bin)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output instruction bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || (len(args) == 0 && opts.Batch == "") {
		fileprocessor.PrintBanner(options.Program{}, version, commit, date)
		fmt.Printf("usage: z80godisasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts
}

// Package main implements the FV-1 assembler and disassembler CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/handegar/fv1asm/codegen"
	"github.com/handegar/fv1asm/disasm"
	"github.com/handegar/fv1asm/reader"
	"github.com/handegar/fv1asm/settings"
	"github.com/handegar/fv1asm/writer"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func parseCommandLineParameters() {
	flag.StringVar(&settings.InFilename, "in", settings.InFilename, "Input file (.spn source, or .bin/.hex image with -d)")
	flag.StringVar(&settings.OutFilename, "out", settings.OutFilename, "Output file")
	flag.StringVar(&settings.Format, "f", settings.Format, "Output format: bin, hex or c")
	flag.StringVar(&settings.ArrayName, "name", settings.ArrayName, "Array name for the 'c' format")
	flag.BoolVar(&settings.Disassemble, "d", settings.Disassemble, "Disassemble an image instead of assembling")
	flag.BoolVar(&settings.KeepNops, "keep-nops", settings.KeepNops, "Keep trailing padding NOPs in listings")
	flag.BoolVar(&settings.Optimize, "O", settings.Optimize, "Run the optimization pass")
	flag.BoolVar(&settings.Quiet, "q", settings.Quiet, "Suppress banner and progress output")
	flag.Parse()
}

func createLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if settings.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	parseCommandLineParameters()
	logger := createLogger()

	if !settings.Quiet {
		fmt.Printf("* FV-1 assembler v%s\n", buildinfo.Version(version, commit, date))
	}

	if settings.InFilename == "" {
		fmt.Println("No input file specified. Use the '-in' parameter.")
		os.Exit(1)
	}

	var err error
	if settings.Disassemble {
		err = disassembleFile(logger)
	} else {
		err = assembleFile(logger)
	}
	if err != nil {
		logger.Fatal("Failed", log.Err(err))
	}
}

func assembleFile(logger *log.Logger) error {
	src, err := reader.ReadSource(settings.InFilename)
	if err != nil {
		return err
	}

	bin, err := codegen.AssembleSource(src)
	if err != nil {
		printDiagnostic(src, err)
		return err
	}

	out := settings.OutFilename
	if out == "" {
		out = replaceExt(settings.InFilename, outputExt())
	}

	switch settings.Format {
	case "bin":
		err = writer.WriteBin(out, bin)
	case "hex":
		err = writer.WriteHex(out, bin)
	case "c":
		err = writer.WriteCArray(out, settings.ArrayName, bin)
	default:
		return fmt.Errorf("unknown output format '%s'", settings.Format)
	}
	if err != nil {
		return err
	}

	logger.Info("Assembled", log.String("output", out))
	return nil
}

func disassembleFile(logger *log.Logger) error {
	bin, err := reader.ReadImage(settings.InFilename)
	if err != nil {
		return err
	}

	d := disasm.New().WithStripNops(!settings.KeepNops)
	prog, err := d.Disassemble(bin)
	if err != nil {
		return err
	}

	listing := fmt.Sprintf("; %s: %d instructions\n%s",
		filepath.Base(settings.InFilename),
		prog.InstructionCount(),
		disasm.FormatProgram(prog))

	if settings.OutFilename == "" {
		fmt.Print(listing)
		return nil
	}
	if err := writer.WriteSource(settings.OutFilename, listing); err != nil {
		return err
	}
	logger.Info("Disassembled", log.String("output", settings.OutFilename))
	return nil
}

func outputExt() string {
	switch settings.Format {
	case "hex":
		return ".hex"
	case "c":
		return ".h"
	}
	return ".bin"
}

func replaceExt(filename, ext string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

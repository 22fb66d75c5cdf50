// lc3vm loads an LC-3 program image and runs it to completion, reading
// keystrokes from and writing characters to the controlling terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fjoconnor/lc3vm/internal/debuglog"
	"github.com/fjoconnor/lc3vm/internal/log"
	"github.com/fjoconnor/lc3vm/internal/tty"
	"github.com/fjoconnor/lc3vm/internal/vm"
)

const (
	exitOK = iota
	exitRunError
	exitUsage
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lc3vm", flag.ContinueOnError)

	var (
		debugLogPath string
		littleEndian bool
	)

	fs.StringVar(&debugLogPath, "debug-log-path", "", "append a line per VM event to this file")
	fs.StringVar(&debugLogPath, "d", "", "shorthand for --debug-log-path")
	fs.BoolVar(&littleEndian, "little-endian", false, "byte-swap each word after a big-endian read")
	fs.BoolVar(&littleEndian, "l", false, "shorthand for --little-endian")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: lc3vm [-d|--debug-log-path PATH] [-l|--little-endian] <path>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	path := fs.Arg(0)

	program, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
		return exitUsage
	}
	defer program.Close()

	words, err := vm.ReadProgram(program, littleEndian)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
		return exitUsage
	}

	console, err := tty.NewConsole(os.Stdin, os.Stdout)
	if err != nil {
		if errors.Is(err, tty.ErrNoTTY) {
			fmt.Fprintf(os.Stderr, "lc3vm: stdin is not a terminal\n")
			return exitUsage
		}

		fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
		return exitUsage
	}
	defer console.Restore()

	machine := vm.New(console).WithLogger(log.DefaultLogger())

	if debugLogPath != "" {
		logFile, err := os.Create(debugLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
			return exitUsage
		}
		defer logFile.Close()

		machine.AddPlugin(debuglog.New(logFile))
	}

	if err := machine.LoadProgram(words); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
		return exitRunError
	}

	if err := machine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %s\n", err)
		return exitRunError
	}

	return exitOK
}

//go:build linux || darwin

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sunydepalpur/reaper/internal/app"
	"github.com/sunydepalpur/reaper/internal/output"
	"github.com/sunydepalpur/reaper/internal/proc"
	"github.com/sunydepalpur/reaper/internal/tui"
)

var version = "dev"
var commit = ""

// To embed version and commit, use:
// go build -ldflags "-X main.version=v0.1.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/reaper

func printHelp() {
	fmt.Println("Usage: reaper [--debug FILE] [--version] [--help]")
	fmt.Println("  Lists processes with listening sockets (via lsof) and lets you kill them.")
	fmt.Println("  --debug <file>    Write a debug log to file")
	fmt.Println("  --version         Show version and exit")
	fmt.Println("  --help            Show this help message")
}

func main() {
	os.Exit(run())
}

func run() int {
	versionFlag := flag.Bool("version", false, "show version and exit")
	debugFlag := flag.String("debug", "", "write a debug log to this file")
	helpFlag := flag.Bool("help", false, "show help")
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag {
		printHelp()
		return 0
	}
	if *versionFlag {
		if commit != "" {
			fmt.Printf("reaper %s (commit %s)\n", version, commit)
		} else {
			fmt.Printf("reaper %s\n", version)
		}
		return 0
	}

	stderr := output.NewSafeTerminalWriter(os.Stderr)

	// the terminal belongs to the TUI, so logs go to a file or nowhere
	if *debugFlag != "" {
		f, err := tea.LogToFile(*debugFlag, "reaper")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctrl := app.NewController(proc.NewLsofSource(), proc.SignalTerminator{}, app.WithCommandLine(proc.CommandLine))
	state := app.NewState()
	if err := ctrl.Refresh(state); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := tui.Run(ctrl, state); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

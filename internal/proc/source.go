package proc

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/sunydepalpur/reaper/pkg/model"
)

// ErrSourceUnavailable is returned when the listing command cannot be run
// (missing binary, permission denied, unexpected failure).
var ErrSourceUnavailable = errors.New("listing command unavailable")

// lsofArgs selects internet sockets, numeric hosts and ports, and TCP sockets in
// LISTEN state only. UDP sockets have no state and are always included.
var lsofArgs = []string{"-i", "-P", "-n", "-sTCP:LISTEN"}

// ScanResult is one snapshot of listening sockets.
// Skipped counts output lines that could not be parsed.
type ScanResult struct {
	Listeners []model.Listener
	Skipped   int
}

// Source produces a fresh snapshot of listening sockets.
type Source interface {
	Scan() (ScanResult, error)
}

type commandRunner func(name string, args ...string) (stdout, stderr []byte, err error)

// LsofSource reads listening sockets from lsof.
type LsofSource struct {
	Path string

	run commandRunner
}

func NewLsofSource() *LsofSource {
	return &LsofSource{Path: "lsof", run: runCommand}
}

func runCommand(name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (s *LsofSource) Scan() (ScanResult, error) {
	path := s.Path
	if path == "" {
		path = "lsof"
	}
	run := s.run
	if run == nil {
		run = runCommand
	}

	out, stderr, err := run(path, lsofArgs...)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return ScanResult{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		msg := strings.TrimSpace(string(stderr))
		if len(bytes.TrimSpace(out)) == 0 {
			// lsof exits 1 when nothing matched the selection, warnings or not
			if exitErr.ExitCode() == 1 {
				if msg != "" {
					log.Printf("lsof: no listeners, stderr: %s", msg)
				}
				return ScanResult{}, nil
			}
			if msg == "" {
				msg = exitErr.Error()
			}
			return ScanResult{}, fmt.Errorf("%w: %s: %s", ErrSourceUnavailable, path, msg)
		}
		// lsof also exits non-zero when some files could not be inspected,
		// in which case the output it did produce is still valid.
	}

	return ParseLsof(string(out)), nil
}

//go:build linux

package proc

import (
	"fmt"
	"os"
	"strings"
)

// CommandLine returns the full command line of pid, arguments separated by spaces.
func CommandLine(pid int) (string, error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return "", err
	}
	cmdline := strings.TrimSpace(strings.ReplaceAll(string(raw), "\x00", " "))
	if cmdline == "" {
		// kernel threads have no command line
		return "", fmt.Errorf("pid %d: empty command line", pid)
	}
	return cmdline, nil
}

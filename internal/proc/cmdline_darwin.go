//go:build darwin

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandLine returns the full command line of pid as reported by ps.
func CommandLine(pid int) (string, error) {
	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "args=").Output()
	if err != nil {
		return "", err
	}
	cmdline := strings.TrimSpace(string(out))
	if cmdline == "" {
		return "", fmt.Errorf("pid %d: empty command line", pid)
	}
	return cmdline, nil
}

package output

import "io"

// SafeTerminalWriter escapes control characters in everything written to it.
// Error messages can carry text from lsof output or process names, so they
// are printed through it.
type SafeTerminalWriter struct {
	W io.Writer
}

func (w SafeTerminalWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if _, err := io.WriteString(w.W, SanitizeTerminal(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func NewSafeTerminalWriter(w io.Writer) io.Writer {
	return SafeTerminalWriter{W: w}
}

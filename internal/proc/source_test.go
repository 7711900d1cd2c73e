//go:build linux || darwin

package proc

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exitError produces a real *exec.ExitError with the given code.
func exitError(t *testing.T, code string) error {
	t.Helper()
	err := exec.Command("sh", "-c", "exit "+code).Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	return err
}

func fakeRunner(stdout, stderr string, err error) commandRunner {
	return func(name string, args ...string) ([]byte, []byte, error) {
		return []byte(stdout), []byte(stderr), err
	}
}

func TestLsofSourceArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	src := &LsofSource{Path: "/usr/sbin/lsof", run: func(name string, args ...string) ([]byte, []byte, error) {
		gotName, gotArgs = name, args
		return nil, nil, nil
	}}

	_, err := src.Scan()
	require.NoError(t, err)
	assert.Equal(t, "/usr/sbin/lsof", gotName)
	assert.Equal(t, []string{"-i", "-P", "-n", "-sTCP:LISTEN"}, gotArgs)
}

func TestLsofSourceParsesOutput(t *testing.T) {
	src := &LsofSource{run: fakeRunner(sampleLsof, "", nil)}

	res, err := src.Scan()
	require.NoError(t, err)
	assert.Len(t, res.Listeners, 5)
}

func TestLsofSourceMissingBinary(t *testing.T) {
	src := &LsofSource{Path: "reaper-no-such-lsof-binary", run: runCommand}

	_, err := src.Scan()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestLsofSourceNoMatches(t *testing.T) {
	src := &LsofSource{run: fakeRunner("", "", exitError(t, "1"))}

	res, err := src.Scan()
	require.NoError(t, err)
	assert.Empty(t, res.Listeners)
}

func TestLsofSourceNoMatchesWithWarnings(t *testing.T) {
	src := &LsofSource{run: fakeRunner("", "lsof: WARNING: can't stat() fuse.portal file system /run/user/1000/doc", exitError(t, "1"))}

	res, err := src.Scan()
	require.NoError(t, err)
	assert.Empty(t, res.Listeners)
}

func TestLsofSourceFailure(t *testing.T) {
	src := &LsofSource{run: fakeRunner("", "lsof: status error on /dev: Permission denied", exitError(t, "2"))}

	_, err := src.Scan()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "Permission denied")
}

func TestLsofSourcePartialOutput(t *testing.T) {
	src := &LsofSource{run: fakeRunner(sampleLsof, "lsof: WARNING: can't stat() fuse file system", exitError(t, "1"))}

	res, err := src.Scan()
	require.NoError(t, err)
	assert.Len(t, res.Listeners, 5)
}

func TestLsofSourceStartFailure(t *testing.T) {
	src := &LsofSource{run: fakeRunner("", "", errors.New("fork/exec lsof: permission denied"))}

	_, err := src.Scan()
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

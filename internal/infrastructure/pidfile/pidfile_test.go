package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/pidfile"
)

func TestAcquire_WritesCurrentPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	pf := pidfile.New(path)

	require.NoError(t, pf.Acquire())

	pid, running, err := pf.Status()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquire_RefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644))

	err := pidfile.New(path).Acquire()

	var running *pidfile.AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, os.Getpid(), running.PID)
}

func TestAcquire_ReplacesGarbledFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))
	pf := pidfile.New(path)

	require.NoError(t, pf.Acquire())
	require.NoError(t, pf.Release())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStatus_MissingFile(t *testing.T) {
	pid, running, err := pidfile.New(filepath.Join(t.TempDir(), "none.pid")).Status()

	require.NoError(t, err)
	assert.Zero(t, pid)
	assert.False(t, running)
}

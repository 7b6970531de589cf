//go:build !windows

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.lock")

	fd, err := acquireLock(path)
	require.NoError(t, err)

	_, err = acquireLock(path)
	assert.Error(t, err, "second picker on the same vault is refused")

	releaseLock(fd)
	fd2, err := acquireLock(path)
	require.NoError(t, err)
	releaseLock(fd2)
}

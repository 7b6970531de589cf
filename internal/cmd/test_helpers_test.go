package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = old
	out := <-outC
	_ = r.Close()
	return out
}

// withTestVault points config, data and the vault at temp directories and
// returns the vault root.
func withTestVault(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("RECENTS_VAULT", "")
	t.Setenv("RECENTS_DEBUG", "")
	t.Setenv("RECENTS_LOG_LEVEL", "")
	t.Setenv("RECENTS_EDITOR", "true")
	t.Setenv("NO_COLOR", "1")

	root := filepath.Join(home, "vault")
	require.NoError(t, os.MkdirAll(root, 0755))
	return root
}

func writeDoc(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte("# "+rel), 0644))
}

// resetFlags restores every flag to its default so state does not leak
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args against the vault at root and returns
// stdout.
func execute(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var err error
	out := captureStdout(t, func() {
		rootCmd.SetArgs(append([]string{"--vault", root}, args...))
		err = rootCmd.ExecuteContext(context.Background())
	})
	resetFlags(rootCmd)
	return out, err
}

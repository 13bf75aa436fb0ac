package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"src.fur.dev/pkg/env"
	"src.fur.dev/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. Symlinks in the returned path are resolved.
func TempDir(t testing.TB) string {
	return must.OK1(filepath.EvalSymlinks(t.TempDir()))
}

// InTempDir is like TempDir, but also changes into the directory for the
// duration of the test. It returns the directory.
func InTempDir(t testing.TB) string {
	dir := TempDir(t)
	oldWd := must.OK1(os.Getwd())
	must.Chdir(dir)
	t.Cleanup(func() { must.Chdir(oldWd) })
	return dir
}

// TempHome points the home and XDG directories to a fresh temporary directory
// for the duration of the test, so that nothing touches the real user
// directories. It returns the new home directory.
func TempHome(t testing.TB) string {
	home := TempDir(t)
	Setenv(t, env.HOME, home)
	Unsetenv(t, env.XDG_CONFIG_HOME)
	Unsetenv(t, env.XDG_STATE_HOME)
	return home
}

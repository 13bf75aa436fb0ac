package testutil

import (
	"os"
	"testing"
)

func TestTempDir_DirIsValid(t *testing.T) {
	dir := TempDir(t)
	stat, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !stat.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestInTempDir(t *testing.T) {
	dir := InTempDir(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if wd != dir {
		t.Errorf("working directory is %s, want %s", wd, dir)
	}
}

func TestTempHome(t *testing.T) {
	Setenv(t, "XDG_CONFIG_HOME", "/nonexistent")
	home := TempHome(t)
	if got := os.Getenv("HOME"); got != home {
		t.Errorf("HOME is %s, want %s", got, home)
	}
	if _, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		t.Errorf("XDG_CONFIG_HOME is still set")
	}
}

func TestSet(t *testing.T) {
	x := 1
	t.Run("inner", func(t *testing.T) {
		Set(t, &x, 2)
		if x != 2 {
			t.Errorf("x = %d, want 2", x)
		}
	})
	if x != 1 {
		t.Errorf("x = %d after subtest, want 1", x)
	}
}

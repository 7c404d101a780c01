package locate

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func putExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatter_FindsCandidate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture assumes POSIX lookup rules")
	}
	dir := t.TempDir()
	want := putExecutable(t, dir, "qmlformat")
	t.Setenv("PATH", dir)

	got, ok := Formatter()
	if !ok {
		t.Fatal("Formatter() not found, want found")
	}
	if got != want {
		t.Errorf("Formatter() = %q, want %q", got, want)
	}
}

func TestFormatter_PrefersPySide(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH fixture assumes POSIX lookup rules")
	}
	dir := t.TempDir()
	putExecutable(t, dir, "qmlformat")
	want := putExecutable(t, dir, "pyside6-qmlformat")
	t.Setenv("PATH", dir)

	got, ok := Formatter()
	if !ok {
		t.Fatal("Formatter() not found, want found")
	}
	if got != want {
		t.Errorf("Formatter() = %q, want the pyside6 candidate %q", got, want)
	}
}

func TestFormatter_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if got, ok := Formatter(); ok {
		t.Errorf("Formatter() = %q, want not found on an empty PATH", got)
	}
}

func TestCandidates_Order(t *testing.T) {
	got := Candidates()
	want := []string{"pyside6-qmlformat", "pyside6-qmlformat.exe", "qmlformat", "qmlformat.exe"}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

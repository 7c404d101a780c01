package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// stubFormatter writes an executable shell script standing in for
// qmlformat. The final argv element is always the file path.
func stubFormatter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub formatter needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "qmlformat")
	script := "#!/bin/sh\nfor last; do :; done\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeQML(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("Item {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestRun_AllClean(t *testing.T) {
	bin := stubFormatter(t, "exit 0")
	paths := writeQML(t, t.TempDir(), "a.qml", "b.qml")

	cfg := Config{UseSpaces: true, Check: true, TabSize: 4, FormatterPath: bin, Paths: paths, Workers: 2}
	if got := Run(context.Background(), cfg); got != 0 {
		t.Errorf("Run() = %d, want 0", got)
	}
}

func TestRun_NeedsFormatting(t *testing.T) {
	bin := stubFormatter(t, `case "$last" in *dirty*) exit 1;; esac
exit 0`)
	paths := writeQML(t, t.TempDir(), "clean.qml", "dirty.qml")

	cfg := Config{UseSpaces: true, Check: true, TabSize: 4, FormatterPath: bin, Paths: paths, Workers: 2}
	if got := Run(context.Background(), cfg); got != 1 {
		t.Errorf("Run() = %d, want 1 when a file needs formatting", got)
	}
}

func TestRun_FormatterCrash(t *testing.T) {
	bin := stubFormatter(t, `echo "Error: unexpected token" >&2
exit 2`)
	paths := writeQML(t, t.TempDir(), "a.qml")

	cfg := Config{Check: true, TabSize: 4, FormatterPath: bin, Paths: paths}
	if got := Run(context.Background(), cfg); got != 1 {
		t.Errorf("Run() = %d, want 1 on formatter failure", got)
	}
}

func TestRun_MissingFilesFiltered(t *testing.T) {
	bin := stubFormatter(t, "exit 0")
	dir := t.TempDir()
	paths := writeQML(t, dir, "a.qml")
	paths = append(paths, filepath.Join(dir, "gone.qml"))

	cfg := Config{InPlace: true, TabSize: 4, FormatterPath: bin, Paths: paths}
	if got := Run(context.Background(), cfg); got != 0 {
		t.Errorf("Run() = %d, want 0 with the missing path filtered out", got)
	}
}

func TestRun_EmptyList(t *testing.T) {
	bin := stubFormatter(t, "exit 1")

	// No paths at all: exit 0 without ever invoking the formatter.
	cfg := Config{Check: true, TabSize: 4, FormatterPath: bin}
	if got := Run(context.Background(), cfg); got != 0 {
		t.Errorf("Run() = %d, want 0 for an empty file list", got)
	}
}

func TestRun_MissingFormatter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	// Discovery failure is exit 1 even with nothing to format.
	cfg := Config{Check: true, TabSize: 4}
	if got := Run(context.Background(), cfg); got != 1 {
		t.Errorf("Run() = %d, want 1 when no formatter is installed", got)
	}
}

func TestRun_ExcludeFiltersAll(t *testing.T) {
	bin := stubFormatter(t, "exit 1")
	paths := writeQML(t, t.TempDir(), "a.qml", "b.qml")

	cfg := Config{Check: true, TabSize: 4, FormatterPath: bin, Paths: paths, Excludes: []string{`\.qml$`}}
	if got := Run(context.Background(), cfg); got != 0 {
		t.Errorf("Run() = %d, want 0 when excludes drop every file", got)
	}
}

func TestRun_InvalidExclude(t *testing.T) {
	bin := stubFormatter(t, "exit 0")
	paths := writeQML(t, t.TempDir(), "a.qml")

	cfg := Config{Check: true, TabSize: 4, FormatterPath: bin, Paths: paths, Excludes: []string{`(`}}
	if got := Run(context.Background(), cfg); got != 1 {
		t.Errorf("Run() = %d, want 1 for a malformed exclude pattern", got)
	}
}

func TestRun_StagedExcludeMatchesRelative(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	bin := stubFormatter(t, "exit 1")

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	git("init", "-q")
	if err := os.Mkdir(filepath.Join(dir, "vendor"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "vendor", "View.qml"), []byte("Item {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	git("add", "vendor/View.qml")
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})

	// The stub fails every invocation, so exit 0 means the vendored
	// file was never handed to the formatter.
	cfg := Config{Check: true, TabSize: 4, FormatterPath: bin, Staged: true}
	if got := Run(context.Background(), cfg); got != 1 {
		t.Fatalf("Run() = %d, want 1 with the staged file included", got)
	}

	cfg.Excludes = []string{`^vendor/`}
	if got := Run(context.Background(), cfg); got != 0 {
		t.Errorf("Run() = %d, want 0 with the staged file excluded", got)
	}
}

func TestRunFix_ReportsChanges(t *testing.T) {
	bin := stubFormatter(t, `echo "// reformatted" >> "$last"`)
	paths := writeQML(t, t.TempDir(), "a.qml")

	cfg := Config{TabSize: 4, FormatterPath: bin, Paths: paths}
	if got := RunFix(context.Background(), cfg); got != 1 {
		t.Errorf("RunFix() = %d, want 1 when content changed", got)
	}
}

func TestRunFix_AlreadyFormatted(t *testing.T) {
	bin := stubFormatter(t, "exit 0")
	paths := writeQML(t, t.TempDir(), "a.qml", "b.qml")

	cfg := Config{TabSize: 4, FormatterPath: bin, Paths: paths}
	if got := RunFix(context.Background(), cfg); got != 0 {
		t.Errorf("RunFix() = %d, want 0 when nothing changed", got)
	}
}

func TestRunFix_HaltsOnError(t *testing.T) {
	bin := stubFormatter(t, `case "$last" in *broken*) echo "parse error" >&2; exit 1;; esac
echo "// reformatted" >> "$last"`)
	dir := t.TempDir()
	paths := writeQML(t, dir, "broken.qml", "second.qml")

	cfg := Config{TabSize: 4, FormatterPath: bin, Paths: paths}
	if got := RunFix(context.Background(), cfg); got != 1 {
		t.Errorf("RunFix() = %d, want 1 after a formatter failure", got)
	}

	// The failure on the first file must stop the run before the
	// second file is touched.
	data, err := os.ReadFile(filepath.Join(dir, "second.qml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Item {}\n" {
		t.Errorf("second file modified after halt: %q", data)
	}
}

func TestRunWatch_MissingRoot(t *testing.T) {
	bin := stubFormatter(t, "exit 0")

	cfg := Config{TabSize: 4, FormatterPath: bin, Paths: []string{filepath.Join(t.TempDir(), "absent")}}
	if got := RunWatch(context.Background(), cfg); got != 1 {
		t.Errorf("RunWatch() = %d, want 1 for an unwatchable path", got)
	}
}

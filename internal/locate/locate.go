package locate

import "os/exec"

// Lookup order: the PySide-bundled formatter is preferred over a system
// Qt install, and the Windows-suffixed names are tried on every platform.
var candidates = []string{
	"pyside6-qmlformat",
	"pyside6-qmlformat.exe",
	"qmlformat",
	"qmlformat.exe",
}

// Formatter resolves the first known qmlformat candidate on PATH.
// A false return means none is installed, which callers treat as a
// normal outcome rather than a fault.
func Formatter() (string, bool) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// Candidates returns the lookup order, for diagnostics.
func Candidates() []string {
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}

package walker

import "strings"

// IsQML reports whether a filename names a QML source file. The
// comparison is case-insensitive so Windows-cased names like Main.QML
// are still collected.
func IsQML(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return false
	}
	return strings.EqualFold(name[dot:], ".qml")
}

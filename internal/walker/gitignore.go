package walker

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreLayer holds the compiled .gitignore of one directory. Layers
// accumulate top-down during traversal; deeper rules are checked after
// shallower ones.
type ignoreLayer struct {
	dir    string
	parser *ignore.GitIgnore
}

// loadIgnoreLayer compiles the .gitignore in the given directory.
// Returns a layer with a nil parser if none exists or it fails to parse.
func loadIgnoreLayer(dir string) ignoreLayer {
	parser, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return ignoreLayer{dir: dir, parser: nil}
	}
	return ignoreLayer{dir: dir, parser: parser}
}

// appendLayer clones the layer slice and adds the .gitignore of dir.
// Cloning keeps sibling subtrees from seeing each other's rules.
func appendLayer(layers []ignoreLayer, dir string) []ignoreLayer {
	child := make([]ignoreLayer, len(layers)+1)
	copy(child, layers)
	child[len(layers)] = loadIgnoreLayer(dir)
	return child
}

// isIgnoredByLayers checks whether any layer's rules match the path.
// Paths are made relative to the layer's own directory before matching,
// and directories are checked with a trailing slash so dir-only
// patterns apply.
func isIgnoredByLayers(layers []ignoreLayer, fullPath string, isDir bool) bool {
	for _, layer := range layers {
		if layer.parser == nil {
			continue
		}
		rel, err := filepath.Rel(layer.dir, fullPath)
		if err != nil {
			continue
		}
		checkPath := rel
		if isDir {
			checkPath = rel + "/"
		}
		if layer.parser.MatchesPath(checkPath) {
			return true
		}
	}
	return false
}

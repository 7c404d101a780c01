package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileEntry represents a file discovered during path resolution.
type FileEntry struct {
	Path string
}

// WalkOptions configures path resolution behavior.
type WalkOptions struct {
	Recursive bool
	NoIgnore  bool // skip .gitignore processing
	Hidden    bool // include hidden files and directories
}

// ErrIsDirectory reports a directory argument that was not descended
// into because recursion was not requested.
var ErrIsDirectory = errors.New("is a directory")

// Walk resolves the given paths to formatting candidates and sends them
// on the returned channel. Literal file arguments pass through with only
// an existence check; missing paths are dropped silently, the way the
// hook has always filtered stale paths handed over by pre-commit.
// Directory arguments are descended into only when Recursive is set,
// collecting .qml files while honoring stacked .gitignore rules and
// skipping hidden and VCS entries by default. Both channels close when
// resolution finishes.
func Walk(roots []string, opts WalkOptions) (<-chan FileEntry, <-chan error) {
	fileCh := make(chan FileEntry, 256)
	errCh := make(chan error, 16)

	go func() {
		defer close(fileCh)
		defer close(errCh)

		for _, root := range roots {
			info, err := os.Stat(root)
			if err != nil {
				continue
			}
			switch {
			case info.Mode().IsRegular():
				fileCh <- FileEntry{Path: root}
			case info.IsDir() && opts.Recursive:
				var layers []ignoreLayer
				if !opts.NoIgnore {
					layers = appendLayer(nil, root)
				}
				walkDir(root, layers, opts, fileCh, errCh)
			case info.IsDir():
				errCh <- &WalkError{Path: root, Err: ErrIsDirectory}
			}
		}
	}()

	return fileCh, errCh
}

// walkDir reads one directory and recurses depth-first. The layers slice
// snapshots every .gitignore from the root down to this directory.
func walkDir(dir string, layers []ignoreLayer, opts WalkOptions, fileCh chan<- FileEntry, errCh chan<- error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		errCh <- &WalkError{Path: dir, Err: err}
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		isDir := entry.IsDir()
		isFile := entry.Type().IsRegular()
		if entry.Type()&fs.ModeSymlink != 0 {
			// Follow the link target; broken links are dropped.
			info, err := os.Stat(full)
			if err != nil {
				continue
			}
			isDir = info.IsDir()
			isFile = info.Mode().IsRegular()
		}

		switch {
		case isDir:
			if skipDir(name, opts.Hidden) {
				continue
			}
			if isIgnoredByLayers(layers, full, true) {
				continue
			}
			child := layers
			if !opts.NoIgnore {
				child = appendLayer(layers, full)
			}
			walkDir(full, child, opts, fileCh, errCh)

		case isFile:
			if !IsQML(name) {
				continue
			}
			if !opts.Hidden && name[0] == '.' {
				continue
			}
			if isIgnoredByLayers(layers, full, false) {
				continue
			}
			fileCh <- FileEntry{Path: full}
		}
	}
}

// skipDir returns true for directories that should not be descended.
// VCS directories (.git, .svn, .hg) are always skipped. Other hidden
// directories are skipped unless hidden is true.
func skipDir(name string, hidden bool) bool {
	switch name {
	case ".git", ".svn", ".hg":
		return true
	}
	if !hidden && len(name) > 0 && name[0] == '.' {
		return true
	}
	return false
}

// WalkError represents an error during path resolution.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return "walk " + e.Path + ": " + e.Err.Error()
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

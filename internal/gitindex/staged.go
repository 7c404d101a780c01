package gitindex

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mv/qmlhook/internal/walker"
)

// StagedFile is one QML file staged for commit. Rel is the
// slash-separated name git reports, relative to the repository root;
// Abs is the same file as an absolute path.
type StagedFile struct {
	Rel string
	Abs string
}

// StagedQML lists the QML files staged for commit in the repository
// containing dir (the current directory when dir is empty). Only files
// that will exist in the commit are returned: added, copied, modified.
// The relative names are kept so exclude patterns anchored at the repo
// root keep matching; the absolute paths work from any subdirectory.
func StagedQML(ctx context.Context, dir string) ([]StagedFile, error) {
	root, err := Root(ctx, dir)
	if err != nil {
		return nil, err
	}
	out, err := run(ctx, dir, "diff", "--cached", "--name-only", "--diff-filter=ACM", "-z")
	if err != nil {
		return nil, err
	}

	var files []StagedFile
	// -z output: NUL-separated, no quoting, so odd filenames survive.
	for _, name := range strings.Split(out, "\x00") {
		if name == "" || !walker.IsQML(name) {
			continue
		}
		files = append(files, StagedFile{
			Rel: name,
			Abs: filepath.Join(root, filepath.FromSlash(name)),
		})
	}
	return files, nil
}

// Root returns the absolute path of the repository working tree root.
func Root(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// GitDir returns the repository's git directory as an absolute path.
func GitDir(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	gitDir := strings.TrimSpace(out)
	if !filepath.IsAbs(gitDir) {
		base := dir
		if base == "" {
			base = "."
		}
		abs, err := filepath.Abs(filepath.Join(base, gitDir))
		if err != nil {
			return "", err
		}
		gitDir = abs
	}
	return gitDir, nil
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

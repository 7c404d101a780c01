package hookinstall

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mv/qmlhook/internal/gitindex"
)

// hookScript is the pre-commit shim. It defers to the qmlhook binary on
// PATH, so upgrading the tool never requires reinstalling the hook.
const hookScript = `#!/bin/sh
exec qmlhook --staged --check
`

// ErrHookExists reports an existing pre-commit hook that would be
// overwritten without force.
var ErrHookExists = errors.New("pre-commit hook already exists")

// Install writes the pre-commit shim into the repository containing dir
// and returns the hook path. An existing hook is only replaced when
// force is set.
func Install(ctx context.Context, dir string, force bool) (string, error) {
	gitDir, err := gitindex.GitDir(ctx, dir)
	if err != nil {
		return "", err
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", err
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")
	if !force {
		if _, err := os.Stat(hookPath); err == nil {
			return "", fmt.Errorf("%w: %s", ErrHookExists, hookPath)
		}
	}

	if err := os.WriteFile(hookPath, []byte(hookScript), 0755); err != nil {
		return "", err
	}
	return hookPath, nil
}

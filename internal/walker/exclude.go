package walker

import (
	"fmt"
	"path/filepath"

	"go.elara.ws/pcre"
)

// ExcludeSet drops paths matching user-supplied patterns. Patterns are
// PCRE, the dialect pre-commit users already write in its exclude
// field, and are matched against slash-separated paths.
type ExcludeSet struct {
	res []*pcre.Regexp
}

// CompileExcludes compiles the patterns into a set. An empty pattern
// list yields a set that excludes nothing.
func CompileExcludes(patterns []string) (*ExcludeSet, error) {
	set := &ExcludeSet{}
	for _, pat := range patterns {
		re, err := pcre.CompileOpts(pat, 0)
		if err != nil {
			set.Close()
			return nil, fmt.Errorf("exclude pattern %q: %w", pat, err)
		}
		set.res = append(set.res, re)
	}
	return set, nil
}

// Match reports whether any pattern matches the path.
func (s *ExcludeSet) Match(path string) bool {
	if s == nil || len(s.res) == 0 {
		return false
	}
	p := []byte(filepath.ToSlash(path))
	for _, re := range s.res {
		if re.Match(p) {
			return true
		}
	}
	return false
}

// Close releases the compiled pattern resources.
func (s *ExcludeSet) Close() {
	for _, re := range s.res {
		re.Close()
	}
}

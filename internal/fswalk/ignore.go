package fswalk

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const gitignoreFile = ".gitignore"

// ignoreStack carries the gitignore patterns active for one directory:
// global patterns first, then each .gitignore from the scan root down.
// Matching is last-pattern-wins, so a negation in a deeper file
// re-admits what an outer file excluded.
type ignoreStack struct {
	patterns []gitignore.Pattern
}

// push returns a new stack extended with the patterns of dir/.gitignore,
// where domain is the directory's path segments relative to the scan root.
// The receiver is unchanged; sibling directories keep their own stacks.
func (s ignoreStack) push(dir string, domain []string) ignoreStack {
	patterns, err := readPatternFile(filepath.Join(dir, gitignoreFile), domain)
	if err != nil || len(patterns) == 0 {
		return s
	}
	combined := make([]gitignore.Pattern, 0, len(s.patterns)+len(patterns))
	combined = append(combined, s.patterns...)
	combined = append(combined, patterns...)
	return ignoreStack{patterns: combined}
}

// match reports whether the root-relative path is excluded.
func (s ignoreStack) match(rel []string, isDir bool) bool {
	if len(s.patterns) == 0 {
		return false
	}
	return gitignore.NewMatcher(s.patterns).Match(rel, isDir)
}

// readPatternFile parses one gitignore-format file. Blank lines and
// comments are dropped per gitignore rules.
func readPatternFile(path string, domain []string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns, scanner.Err()
}

// globalPatterns loads the user-global ignore file (the
// ~/.config/git/ignore convention). Missing file means no patterns.
func globalPatterns(path string) ignoreStack {
	if path == "" {
		return ignoreStack{}
	}
	patterns, err := readPatternFile(path, nil)
	if err != nil {
		return ignoreStack{}
	}
	return ignoreStack{patterns: patterns}
}

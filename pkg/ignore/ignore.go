// Package ignore provides gitignore-syntax filtering of asset names using go-git
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher filters names relative to an asset directory
type Matcher struct {
	matcher  gitignore.Matcher
	patterns int
}

// NewMatcher loads fileName (for example ".toneignore") from root. A missing
// file yields a matcher that ignores nothing.
func NewMatcher(root, fileName string) (*Matcher, error) {
	if strings.ContainsAny(fileName, `/\`) {
		return nil, fmt.Errorf("ignore file must be a plain file name: %s", fileName)
	}

	patterns, err := readIgnoreFile(root, fileName)
	if err != nil {
		return nil, err
	}

	parsed := make([]gitignore.Pattern, 0, len(patterns))
	for _, p := range patterns {
		parsed = append(parsed, gitignore.ParsePattern(p, nil))
	}

	return &Matcher{
		matcher:  gitignore.NewMatcher(parsed),
		patterns: len(parsed),
	}, nil
}

// readIgnoreFile reads non-empty, non-comment lines of root/fileName
func readIgnoreFile(root, fileName string) ([]string, error) {
	fsys := osfs.New(root)
	f, err := fsys.Open(fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", fileName, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	return patterns, nil
}

// Len reports how many patterns were loaded.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.patterns
}

// IsIgnored reports whether a slash-separated path relative to the root
// matches an ignore pattern.
func (m *Matcher) IsIgnored(rel string) bool {
	if m == nil || m.patterns == 0 {
		return false
	}
	parts := splitPath(rel)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, false)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

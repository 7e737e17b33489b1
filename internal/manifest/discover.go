package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/tonegen/pkg/ignore"
	"github.com/fulmenhq/tonegen/pkg/logger"
)

// DefaultExtensions is the allow-list: one lossless and one compressed container.
var DefaultExtensions = []string{"wav", "mp3"}

// DiscoverOptions controls which directory entries count as assets
type DiscoverOptions struct {
	// Extensions is the allow-list, with or without a leading dot. Matching is
	// case-sensitive. Empty means DefaultExtensions.
	Extensions []string
	// Exclude holds doublestar patterns matched against the file name.
	Exclude []string
	// IgnoreFile names a gitignore-syntax file inside the asset directory.
	// Empty disables it.
	IgnoreFile string
}

// Entry is a discovered asset file: its name and size, nothing else.
type Entry struct {
	Name string
	Size int64
}

// Discover lists asset files directly inside dir, sorted lexicographically by
// name. Sorting is the only ordering authority for ordinals. An empty result
// is not an error.
func Discover(dir string, opts DiscoverOptions) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryAccessError{Path: dir, Err: ErrNotDirectory}
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryAccessError{Path: dir, Err: err}
	}

	include, err := allowPatterns(opts.Extensions)
	if err != nil {
		return nil, err
	}
	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	var matcher *ignore.Matcher
	if opts.IgnoreFile != "" {
		matcher, err = ignore.NewMatcher(dir, opts.IgnoreFile)
		if err != nil {
			return nil, &DirectoryAccessError{Path: dir, Err: err}
		}
	}

	var entries []Entry
	for _, de := range dirents {
		name := de.Name()
		if !matchAny(include, name) {
			continue
		}
		if matchAny(opts.Exclude, name) {
			logger.Debug("Asset excluded by pattern", logger.String("name", name))
			continue
		}
		if matcher.IsIgnored(name) {
			logger.Debug("Asset excluded by ignore file", logger.String("name", name), logger.String("file", opts.IgnoreFile))
			continue
		}

		// Stat through symlinks; only regular files are assets.
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return nil, &DirectoryAccessError{Path: dir, Err: err}
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{Name: name, Size: fi.Size()})
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders entries by byte-wise file name comparison.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}

func allowPatterns(exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			return nil, fmt.Errorf("empty extension in allow-list")
		}
		p := "*." + ext
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid extension %q", ext)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

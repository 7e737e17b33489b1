package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileContained reads a file only if it is contained within baseDir.
// This prevents path traversal attacks by ensuring the file path resolves
// to a location within the specified base directory.
// Returns an error if the file is outside baseDir or cannot be read.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	baseDirAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New("failed to resolve base directory")
	}
	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseDirAbs, filePathAbs)
	if err != nil {
		return nil, errors.New("failed to compute relative path")
	}

	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return nil, errors.New("file path is outside base directory")
	}

	// #nosec G304 -- filePathAbs has been verified to be contained within baseDirAbs
	return os.ReadFile(filePathAbs)
}

// ModeFor returns the permission bits of an existing file at path, or 0644
// when the file does not exist.
func ModeFor(path string) os.FileMode {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode() & 0o777
		if mode == 0 {
			mode = 0o644
		}
	}
	return mode
}

// StagedFile holds content written to a temporary file next to Target.
// Nothing visible changes at Target until Commit.
type StagedFile struct {
	Target    string
	temp      string
	committed bool
}

// Stage writes data to a temporary sibling of target. The temporary file
// carries the mode target already has, so Commit preserves permissions.
func Stage(target string, data []byte) (*StagedFile, error) {
	dir := filepath.Dir(target)
	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %s: %w", target, err)
	}
	tmp := f.Name()

	cleanup := func(cause error) (*StagedFile, error) {
		_ = f.Close()
		_ = os.Remove(tmp) // #nosec G703 -- tmp comes from os.CreateTemp
		return nil, cause
	}

	if _, err := f.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file for %s: %w", target, err))
	}
	if err := f.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file for %s: %w", target, err))
	}
	if err := f.Chmod(ModeFor(target)); err != nil {
		return cleanup(fmt.Errorf("chmod temp file for %s: %w", target, err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp) // #nosec G703 -- tmp comes from os.CreateTemp
		return nil, fmt.Errorf("close temp file for %s: %w", target, err)
	}

	return &StagedFile{Target: target, temp: tmp}, nil
}

// Commit renames the staged file over Target, replacing any prior version.
func (s *StagedFile) Commit() error {
	if s.committed {
		return nil
	}
	if err := os.Rename(s.temp, s.Target); err != nil {
		return fmt.Errorf("replace %s: %w", s.Target, err)
	}
	s.committed = true
	return nil
}

// Discard removes the staged file if it was never committed. Safe to call
// after Commit.
func (s *StagedFile) Discard() {
	if s == nil || s.committed {
		return
	}
	_ = os.Remove(s.temp) // #nosec G703 -- temp comes from os.CreateTemp
}

// Package emit writes rendered artifacts to disk.
//
// Both artifacts are staged next to their targets before either target is
// replaced, so a failure while producing content never leaves one file new
// and the other stale.
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fulmenhq/tonegen/internal/render"
	"github.com/fulmenhq/tonegen/pkg/logger"
	"github.com/fulmenhq/tonegen/pkg/safeio"
)

// EmitError reports an I/O failure for one output path.
type EmitError struct {
	Path string
	Err  error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit %s: %v", e.Path, e.Err)
}

func (e *EmitError) Unwrap() error { return e.Err }

// IsEmitError reports whether err wraps an EmitError.
func IsEmitError(err error) bool {
	var target *EmitError
	return errors.As(err, &target)
}

// Emitter places the header and file list in Dir.
type Emitter struct {
	Dir          string
	HeaderName   string
	FileListName string
}

// File is one named output with its content.
type File struct {
	Path string
	Data []byte
}

// Files pairs each artifact with its destination path, header first.
func (e *Emitter) Files(art render.Artifacts) []File {
	return []File{
		{Path: filepath.Join(e.Dir, e.HeaderName), Data: art.Header},
		{Path: filepath.Join(e.Dir, e.FileListName), Data: art.FileList},
	}
}

// Write replaces both artifacts. Staged temp files are removed on any failure.
func (e *Emitter) Write(art render.Artifacts) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return &EmitError{Path: e.Dir, Err: err}
	}

	files := e.Files(art)
	staged := make([]*safeio.StagedFile, 0, len(files))
	defer func() {
		for _, s := range staged {
			s.Discard()
		}
	}()

	for _, f := range files {
		s, err := safeio.Stage(f.Path, f.Data)
		if err != nil {
			return &EmitError{Path: f.Path, Err: err}
		}
		staged = append(staged, s)
	}

	for _, s := range staged {
		if err := s.Commit(); err != nil {
			return &EmitError{Path: s.Target, Err: err}
		}
		logger.Debug("Replaced staged artifact", logger.String("path", s.Target))
	}
	return nil
}

// Check compares the artifacts with what is on disk and returns the paths
// that are missing or differ. Nothing is written.
func (e *Emitter) Check(art render.Artifacts) ([]string, error) {
	var stale []string
	for _, f := range e.Files(art) {
		current, err := safeio.ReadFileContained(e.Dir, f.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stale = append(stale, f.Path)
				continue
			}
			return nil, &EmitError{Path: f.Path, Err: err}
		}
		if !bytes.Equal(current, f.Data) {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}

package manifest

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is wrapped by DirectoryAccessError when the asset path
// exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DirectoryAccessError reports an asset directory that is missing or unreadable.
// Generation cannot proceed past it.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot access asset directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// IsDirectoryAccessError checks if err is (or wraps) a DirectoryAccessError
func IsDirectoryAccessError(err error) bool {
	var target *DirectoryAccessError
	return errors.As(err, &target)
}

// NameCollisionError reports two asset files that derive the same C
// identifier. Emitting both would declare it twice.
type NameCollisionError struct {
	// Kind is "symbol" or "enum label".
	Kind   string
	Symbol string
	First  string
	Second string
}

func (e *NameCollisionError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "symbol"
	}
	return fmt.Sprintf("asset names %q and %q both map to %s %s", e.First, e.Second, kind, e.Symbol)
}

// IsNameCollisionError checks if err is (or wraps) a NameCollisionError
func IsNameCollisionError(err error) bool {
	var target *NameCollisionError
	return errors.As(err, &target)
}

package safeio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageCommitNewFile(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "esp_embed_tone.h")

	staged, err := Stage(target, []byte("#pragma once\n"))
	require.NoError(t, err)
	require.NoError(t, staged.Commit())
	require.NoError(t, staged.Commit())

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", string(content))

	st, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())
}

func TestStageCommitPreservesMode(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "esp_embed_tone.cmake")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o600))

	staged, err := Stage(target, []byte("fresh"))
	require.NoError(t, err)
	require.NoError(t, staged.Commit())

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))

	st, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestStageMissingDir(t *testing.T) {
	_, err := Stage("/non/existent/directory/file.h", []byte("x"))
	assert.Error(t, err)
}

func TestStageLeavesTargetUntouchedUntilCommit(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "out.h")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	staged, err := Stage(target, []byte("new"))
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	require.NoError(t, staged.Commit())
	require.NoError(t, staged.Commit(), "second commit is a no-op")

	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestStageDiscardRemovesTemp(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "out.h")

	staged, err := Stage(target, []byte("never committed"))
	require.NoError(t, err)
	staged.Discard()

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	var nilStaged *StagedFile
	nilStaged.Discard()
}

func TestModeFor(t *testing.T) {
	tempDir := t.TempDir()
	assert.Equal(t, os.FileMode(0o644), ModeFor(filepath.Join(tempDir, "missing")))

	p := filepath.Join(tempDir, "exec.sh")
	require.NoError(t, os.WriteFile(p, nil, 0o755))
	assert.Equal(t, os.FileMode(0o755), ModeFor(p))
}

func TestReadFileContained(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	testFile := filepath.Join(subDir, "test.txt")
	testData := []byte("test data for safe reading")
	require.NoError(t, os.WriteFile(testFile, testData, 0o644))

	tests := []struct {
		name      string
		baseDir   string
		filePath  string
		wantError bool
	}{
		{"file within baseDir", tempDir, testFile, false},
		{"path traversal attempt", subDir, filepath.Join(subDir, "..", "..", "outside.txt"), true},
		{"non-existent file within baseDir", tempDir, filepath.Join(tempDir, "nonexistent.txt"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFileContained(tt.baseDir, tt.filePath)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testData, data)
		})
	}
}

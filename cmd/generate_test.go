package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/tonegen/pkg/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := assetDir(t, map[string]int{"tone-one.wav": 10, "alarm.mp3": 20})

	out, err := execRoot(t, []string{"generate", dir})
	require.NoError(t, err, out)
	assert.Contains(t, out, "tone_one_wav")

	header, err := os.ReadFile(filepath.Join(dir, "esp_embed_tone.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "ESP_EMBED_TONE_URL_MAX = 2")

	list, err := os.ReadFile(filepath.Join(dir, "esp_embed_tone.cmake"))
	require.NoError(t, err)
	assert.Equal(t, "set(COMPONENT_EMBED_TXTFILES alarm.mp3 tone-one.wav)\n", string(list))
}

func TestGenerateCheck(t *testing.T) {
	dir := assetDir(t, map[string]int{"beep.wav": 1})

	_, err := execRoot(t, []string{"generate", dir, "--check"})
	require.Error(t, err)
	assert.Equal(t, exitcode.ValidationError, exitCodeFor(err))

	_, err = execRoot(t, []string{"generate", dir})
	require.NoError(t, err)

	_, err = execRoot(t, []string{"generate", dir, "--check"})
	assert.NoError(t, err)
}

func TestGenerateDryRun(t *testing.T) {
	dir := assetDir(t, map[string]int{"beep.wav": 1})

	out, err := execRoot(t, []string{"generate", dir, "--dry-run"})
	require.NoError(t, err)
	assert.Contains(t, out, "#pragma once")
	assert.Contains(t, out, "set(COMPONENT_EMBED_TXTFILES beep.wav)")
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.h"))
}

func TestGenerateCheckAndDryRunExclusive(t *testing.T) {
	dir := assetDir(t, nil)
	_, err := execRoot(t, []string{"generate", dir, "--check", "--dry-run"})
	assert.Error(t, err)
}

func TestGenerateRequiresDirectory(t *testing.T) {
	_, err := execRoot(t, []string{"generate"})
	assert.Error(t, err)
}

func TestGenerateMissingDirectory(t *testing.T) {
	assetDir(t, nil)
	_, err := execRoot(t, []string{"generate", filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Equal(t, exitcode.FileSystemError, exitCodeFor(err))
}

func TestGenerateNameCollision(t *testing.T) {
	dir := assetDir(t, map[string]int{"a-b.wav": 1, "a.b.wav": 1})

	_, err := execRoot(t, []string{"generate", dir})
	require.Error(t, err)
	assert.Equal(t, exitcode.ValidationError, exitCodeFor(err))
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.h"))
}

func TestGenerateUsesConfigFile(t *testing.T) {
	dir := assetDir(t, map[string]int{"beep.wav": 1})
	cfgPath := filepath.Join(t.TempDir(), "tonegen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  header: tones.h\nrender:\n  align: true\n"), 0o644))

	_, err := execRoot(t, []string{"--config", cfgPath, "generate", dir})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "tones.h"))
}

func TestGenerateInvalidConfig(t *testing.T) {
	dir := assetDir(t, map[string]int{"beep.wav": 1})
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tonegen.yaml"), []byte("naming:\n  array: 1bad\n"), 0o644))

	_, err := execRoot(t, []string{"generate", dir})
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitCodeFor(err))
}

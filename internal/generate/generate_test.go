package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/fulmenhq/tonegen/pkg/config"
	"github.com/fulmenhq/tonegen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAssets(t *testing.T, dir string, files map[string]int) {
	t.Helper()
	for name, size := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), bytes.Repeat([]byte{0x7f}, size), 0o644))
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"tone-one.wav": 10, "alarm.mp3": 2048, "readme.txt": 1})

	var out bytes.Buffer
	res, err := Run(context.Background(), dir, config.Default(), Options{Out: &out})
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Equal(t, 2, res.Manifest.Len())

	header, err := os.ReadFile(filepath.Join(dir, "esp_embed_tone.h"))
	require.NoError(t, err)
	assert.Equal(t, res.Artifacts.Header, header)
	assert.Contains(t, string(header), "ESP_EMBED_TONE_ALARM_MP3 = 0,")
	assert.Contains(t, string(header), "ESP_EMBED_TONE_TONE_ONE_WAV = 1,")
	assert.Contains(t, string(header), "ESP_EMBED_TONE_URL_MAX = 2")

	list, err := os.ReadFile(filepath.Join(dir, "esp_embed_tone.cmake"))
	require.NoError(t, err)
	assert.Equal(t, "set(COMPONENT_EMBED_TXTFILES alarm.mp3 tone-one.wav)\n", string(list))

	table := out.String()
	assert.Contains(t, table, "alarm.mp3")
	assert.Contains(t, table, "tone_one_wav")
	assert.Contains(t, table, "2.0 KiB")
	assert.NotContains(t, table, "readme.txt")
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"b.wav": 3, "a.mp3": 5})

	first, err := Run(context.Background(), dir, config.Default(), Options{})
	require.NoError(t, err)
	second, err := Run(context.Background(), dir, config.Default(), Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Artifacts, second.Artifacts)
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	res, err := Run(context.Background(), dir, config.Default(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Manifest.Len())

	header, err := os.ReadFile(filepath.Join(dir, "esp_embed_tone.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "ESP_EMBED_TONE_URL_MAX = 0")
	assert.Contains(t, string(header), "g_esp_embed_tone[] = {};")
}

func TestRunMissingDirectory(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), config.Default(), Options{})
	require.Error(t, err)
	assert.True(t, manifest.IsDirectoryAccessError(err))
}

func TestRunNameCollisionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"a-b.wav": 1, "a_b.wav": 1})

	_, err := Run(context.Background(), dir, config.Default(), Options{})
	require.Error(t, err)
	assert.True(t, manifest.IsNameCollisionError(err))
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.h"))
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.cmake"))
}

func TestRunCaseOnlyNamesWriteNothing(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"beep.wav": 1, "BEEP.wav": 1})
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) < 2 {
		t.Skip("case-insensitive filesystem")
	}

	_, err = Run(context.Background(), dir, config.Default(), Options{})
	require.Error(t, err)
	assert.True(t, manifest.IsNameCollisionError(err))
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.h"))
}

func TestRunLogsDiscoveredBytes(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"a.wav": 10, "b.mp3": 2048})

	require.NoError(t, logger.Initialize(logger.Config{Level: logger.InfoLevel}))
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	_, err := Run(context.Background(), dir, config.Default(), Options{DryRun: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Discovered assets")
	assert.Contains(t, buf.String(), "bytes=2058")
	assert.Contains(t, buf.String(), "total=2.0 KiB")
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"beep.wav": 4})

	var out bytes.Buffer
	res, err := Run(context.Background(), dir, config.Default(), Options{DryRun: true, Out: &out})
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.NoFileExists(t, filepath.Join(dir, "esp_embed_tone.h"))

	s := out.String()
	assert.Contains(t, s, "==> "+filepath.Join(dir, "esp_embed_tone.h")+" <==")
	assert.Contains(t, s, "set(COMPONENT_EMBED_TXTFILES beep.wav)")
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"beep.wav": 4})
	cfg := config.Default()

	_, err := Run(context.Background(), dir, cfg, Options{Check: true})
	require.Error(t, err)
	assert.True(t, IsStaleError(err))

	_, err = Run(context.Background(), dir, cfg, Options{})
	require.NoError(t, err)

	res, err := Run(context.Background(), dir, cfg, Options{Check: true})
	require.NoError(t, err)
	assert.Empty(t, res.Stale)

	writeAssets(t, dir, map[string]int{"chime.mp3": 1})
	res, err = Run(context.Background(), dir, cfg, Options{Check: true})
	require.Error(t, err)
	assert.Len(t, res.Stale, 2)
}

func TestRunHonoursConfig(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir, map[string]int{"beep.wav": 4, "draft-x.wav": 1, "song.ogg": 2})

	cfg := config.Default()
	cfg.Scan.Extensions = []string{"wav", "ogg"}
	cfg.Scan.Exclude = []string{"draft-*"}
	cfg.Output.Dir = "include"
	cfg.Output.Header = "tones.h"
	cfg.Render.LineEnding = "crlf"

	res, err := Run(context.Background(), dir, cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"beep.wav", "song.ogg"}, res.Manifest.Names())

	header, err := os.ReadFile(filepath.Join(dir, "include", "tones.h"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(header), "};\r\n"))
	assert.FileExists(t, filepath.Join(dir, "include", "esp_embed_tone.cmake"))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, t.TempDir(), config.Default(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetTable(t *testing.T) {
	m, err := manifest.FromEntries("x", []manifest.Entry{{Name: "b.wav", Size: 1536}, {Name: "a.mp3", Size: 12}}, manifest.DefaultNaming())
	require.NoError(t, err)

	table := AssetTable(m)
	assert.Contains(t, table, "File")
	assert.Contains(t, table, "Symbol")
	assert.Contains(t, table, "1.5 KiB")
	assert.Contains(t, table, "1536")
	assert.Less(t, strings.Index(table, "a.mp3"), strings.Index(table, "b.wav"))
}

package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := assetDir(t, map[string]int{"b.wav": 2048, "a.mp3": 10, "notes.txt": 1})

	out, err := execRoot(t, []string{"list", dir})
	require.NoError(t, err)
	assert.Contains(t, out, "a_mp3")
	assert.Contains(t, out, "b_wav")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "2 assets, 2.0 KiB")
	assert.Less(t, strings.Index(out, "a.mp3"), strings.Index(out, "b.wav"))
}

func TestManifestDefaultJSON(t *testing.T) {
	dir := assetDir(t, map[string]int{"tone-one.wav": 3})

	out, err := execRoot(t, []string{"manifest", dir})
	require.NoError(t, err)

	var doc struct {
		Count  int `json:"count"`
		Assets []struct {
			Symbol string `json:"symbol"`
			URL    string `json:"url"`
		} `json:"assets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Assets, 1)
	assert.Equal(t, "tone_one_wav", doc.Assets[0].Symbol)
	assert.Equal(t, "embed://tone/0_tone_one.wav", doc.Assets[0].URL)
}

func TestManifestFormats(t *testing.T) {
	dir := assetDir(t, map[string]int{"beep.wav": 1})

	tests := map[string]string{
		"yaml": "symbol: beep_wav",
		"yml":  "symbol: beep_wav",
		"toml": "[[assets]]",
		"xml":  "<symbol>beep_wav</symbol>",
	}
	for format, want := range tests {
		t.Run(format, func(t *testing.T) {
			out, err := execRoot(t, []string{"manifest", dir, "--format", format})
			require.NoError(t, err)
			assert.Contains(t, out, want)
		})
	}
}

func TestManifestRejectsUnknownFormat(t *testing.T) {
	dir := assetDir(t, nil)
	_, err := execRoot(t, []string{"manifest", dir, "--format", "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest format")
}

func TestFormatFlag(t *testing.T) {
	f := &formatFlag{}
	require.NoError(t, f.Set("TOML"))
	assert.Equal(t, "toml", f.String())
	assert.Equal(t, "format", f.Type())
	assert.Error(t, f.Set("ini"))
	assert.Equal(t, "json|yaml|toml|xml", formatNames())
}

// Package render turns a manifest into the generated header and build file list.
//
// Every function here is pure: the same manifest and options always produce
// byte-identical output. The header concatenates four blobs in a fixed order
// (declarations, lookup array, enum, URL table); all of them index assets by
// the same ordinal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/fulmenhq/tonegen/internal/assets"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/fulmenhq/tonegen/pkg/format/finalizer"
)

// Options holds the C names and text layout for generated artifacts.
type Options struct {
	StructType string
	Array      string
	EnumType   string
	// SentinelLabel is the full name of the trailing enum constant.
	SentinelLabel string
	URLArray      string
	// Directive is the build-system variable receiving the file list.
	Directive string

	Copyright string
	License   string

	Align      bool
	LineEnding finalizer.LineEnding
}

// DefaultOptions matches the names firmware expects from esp_embed_tone.h.
func DefaultOptions() Options {
	return Options{
		StructType:    "esp_embed_tone_t",
		Array:         "g_esp_embed_tone",
		EnumType:      "esp_embed_tone_index",
		SentinelLabel: "ESP_EMBED_TONE_URL_MAX",
		URLArray:      "esp_embed_tone_url",
		Directive:     "COMPONENT_EMBED_TXTFILES",
		Copyright:     "2025 Espressif Systems (Shanghai) CO., LTD",
		License:       "Apache-2.0",
		LineEnding:    finalizer.LF,
	}
}

const (
	tplLicense      = "license.h.hbs"
	tplDeclarations = "declarations.h.hbs"
	tplLookup       = "lookup.h.hbs"
	tplEnum         = "enum.h.hbs"
	tplURLs         = "urls.h.hbs"
	tplFileList     = "filelist.cmake.hbs"
)

// Renderer renders artifacts from parsed, embedded templates
type Renderer struct {
	opts      Options
	templates map[string]*raymond.Template
}

// Artifacts are the two finished files of one generation run.
type Artifacts struct {
	Header   []byte
	FileList []byte
}

// New parses every registered template.
func New(opts Options) (*Renderer, error) {
	if opts.LineEnding == "" {
		opts.LineEnding = finalizer.LF
	}
	r := &Renderer{opts: opts, templates: make(map[string]*raymond.Template)}
	for _, name := range assets.TemplateNames() {
		src, err := assets.GetTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("load template %s: %w", name, err)
		}
		tpl, err := raymond.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tpl
	}
	for _, name := range []string{tplLicense, tplDeclarations, tplLookup, tplEnum, tplURLs, tplFileList} {
		if _, ok := r.templates[name]; !ok {
			return nil, fmt.Errorf("template %s is not registered", name)
		}
	}
	return r, nil
}

// Options returns the options the renderer was built with.
func (r *Renderer) Options() Options { return r.opts }

// exec panics only on a broken embedded template.
func (r *Renderer) exec(name string, ctx map[string]interface{}) string {
	ctx["briefGap"] = r.briefGap()
	return r.templates[name].MustExec(ctx)
}

// briefGap separates "@brief" from its text. The aligned layout follows the
// committed esp_embed_tone.h, which uses two spaces.
func (r *Renderer) briefGap() string {
	if r.opts.Align {
		return "  "
	}
	return " "
}

// License renders the comment block at the top of the header.
func (r *Renderer) License() string {
	return r.exec(tplLicense, map[string]interface{}{
		"copyright": r.opts.Copyright,
		"license":   r.opts.License,
	})
}

// Declarations renders the struct type and one extern per asset.
func (r *Renderer) Declarations(m *manifest.Manifest) string {
	recs := m.Records()
	rows := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, map[string]interface{}{
			"symbol":     rec.Symbol,
			"linkSymbol": rec.LinkSymbol,
		})
	}
	return r.exec(tplDeclarations, map[string]interface{}{
		"structType": r.opts.StructType,
		"records":    rows,
	})
}

// LookupArray renders the address/size array indexed by ordinal.
func (r *Renderer) LookupArray(m *manifest.Manifest) string {
	recs := m.Records()
	addr := make([]string, len(recs))
	size := make([]string, len(recs))
	for i, rec := range recs {
		addr[i] = rec.Symbol + ","
		size[i] = strconv.FormatInt(rec.Size, 10) + ","
	}
	col := newColumn(r.opts.Align, addr, size)

	rows := make([]map[string]interface{}, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, map[string]interface{}{
			"ordinal":     strconv.Itoa(rec.Ordinal),
			"addressCell": col.pad(addr[i]),
			"sizeCell":    col.pad(size[i]),
		})
	}
	return r.exec(tplLookup, map[string]interface{}{
		"structType": r.opts.StructType,
		"array":      r.opts.Array,
		"empty":      len(recs) == 0,
		"records":    rows,
	})
}

// Enum renders one constant per asset plus the sentinel equal to the count.
func (r *Renderer) Enum(m *manifest.Manifest) string {
	recs := m.Records()
	labels := make([]string, len(recs))
	for i, rec := range recs {
		labels[i] = rec.EnumLabel
	}
	col := newColumn(r.opts.Align, labels, []string{r.opts.SentinelLabel})

	rows := make([]map[string]interface{}, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, map[string]interface{}{
			"labelCell": col.pad(labels[i]),
			"ordinal":   strconv.Itoa(rec.Ordinal),
		})
	}
	return r.exec(tplEnum, map[string]interface{}{
		"enumType":     r.opts.EnumType,
		"records":      rows,
		"sentinelCell": col.pad(r.opts.SentinelLabel),
		"count":        strconv.Itoa(len(recs)),
	})
}

// URLTable renders the string array of embed URLs indexed by ordinal.
func (r *Renderer) URLTable(m *manifest.Manifest) string {
	recs := m.Records()
	rows := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, map[string]interface{}{"url": escapeC(rec.URL)})
	}
	return r.exec(tplURLs, map[string]interface{}{
		"urlArray": r.opts.URLArray,
		"empty":    len(recs) == 0,
		"records":  rows,
	})
}

// Header joins the license and the four blobs. The order is fixed.
func (r *Renderer) Header(m *manifest.Manifest) []byte {
	parts := []string{
		r.License(),
		r.Declarations(m),
		r.LookupArray(m),
		r.Enum(m),
		r.URLTable(m),
	}
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, "\n")
	}
	return finalizer.Finalize([]byte(strings.Join(parts, "\n\n")), r.opts.LineEnding)
}

// FileList renders the single-line build directive naming every asset.
func (r *Renderer) FileList(m *manifest.Manifest) []byte {
	out := r.exec(tplFileList, map[string]interface{}{
		"directive": r.opts.Directive,
		"names":     m.Names(),
	})
	return finalizer.Finalize([]byte(out), r.opts.LineEnding)
}

// Render produces both artifacts.
func (r *Renderer) Render(m *manifest.Manifest) Artifacts {
	return Artifacts{
		Header:   r.Header(m),
		FileList: r.FileList(m),
	}
}

var cStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeC(s string) string { return cStringEscaper.Replace(s) }

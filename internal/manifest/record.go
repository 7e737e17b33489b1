package manifest

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming carries the fixed prefixes used to derive per-asset identities.
type Naming struct {
	// EnumPrefix is prepended to the upper-cased symbol, e.g. "ESP_EMBED_TONE_".
	EnumPrefix string
	// URLScheme is prepended to every slug, e.g. "embed://tone/".
	URLScheme string
	// LinkPrefix and LinkSuffix wrap the symbol to form the linker name the
	// build system exposes for an embedded blob.
	LinkPrefix string
	LinkSuffix string
}

// DefaultNaming matches the ESP-IDF embed conventions.
func DefaultNaming() Naming {
	return Naming{
		EnumPrefix: "ESP_EMBED_TONE_",
		URLScheme:  "embed://tone/",
		LinkPrefix: "_binary_",
		LinkSuffix: "_start",
	}
}

// Record is the identity of one asset. All fields derive from the file name,
// its size and its position in the sorted listing.
type Record struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Size       int64  `json:"size" yaml:"size" toml:"size"`
	Ordinal    int    `json:"ordinal" yaml:"ordinal" toml:"ordinal"`
	Base       string `json:"base" yaml:"base" toml:"base"`
	Ext        string `json:"ext" yaml:"ext" toml:"ext"`
	Symbol     string `json:"symbol" yaml:"symbol" toml:"symbol"`
	EnumLabel  string `json:"enum_label" yaml:"enum_label" toml:"enum_label"`
	URL        string `json:"url" yaml:"url" toml:"url"`
	LinkSymbol string `json:"link_symbol" yaml:"link_symbol" toml:"link_symbol"`
}

var symbolReplacer = strings.NewReplacer("-", "_", ".", "_")

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SplitName separates a file name at its last dot. Names without a dot have
// an empty extension.
func SplitName(name string) (base, ext string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// Sanitize folds '-' and '.' into '_'. Nothing else is rewritten.
func Sanitize(s string) string {
	return symbolReplacer.Replace(s)
}

// NewRecord derives the identity of one asset.
//
// "tone-one.wav" at ordinal 0 yields symbol tone_one_wav, enum label
// ESP_EMBED_TONE_TONE_ONE_WAV and URL embed://tone/0_tone_one.wav.
func NewRecord(name string, size int64, ordinal int, n Naming) Record {
	base, ext := SplitName(name)
	sBase := Sanitize(base)
	sExt := Sanitize(ext)

	symbol := sBase
	slug := sBase
	if ext != "" {
		symbol = sBase + "_" + sExt
		slug = sBase + "." + sExt
	}

	return Record{
		Name:       name,
		Size:       size,
		Ordinal:    ordinal,
		Base:       sBase,
		Ext:        ext,
		Symbol:     symbol,
		EnumLabel:  n.EnumPrefix + cases.Upper(language.Und).String(symbol),
		URL:        n.URLScheme + strconv.Itoa(ordinal) + "_" + slug,
		LinkSymbol: n.LinkPrefix + symbol + n.LinkSuffix,
	}
}

// ValidSymbol reports whether the symbol is a usable C identifier.
func (r Record) ValidSymbol() bool {
	return identifierRe.MatchString(r.Symbol)
}

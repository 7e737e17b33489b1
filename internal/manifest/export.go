package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Export
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// Formats lists supported export formats in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatXML}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format %q", s)
	}
}

type document struct {
	Directory string   `json:"directory" yaml:"directory" toml:"directory"`
	Count     int      `json:"count" yaml:"count" toml:"count"`
	TotalSize int64    `json:"total_size" yaml:"total_size" toml:"total_size"`
	Assets    []Record `json:"assets" yaml:"assets" toml:"assets"`
}

// Export writes the manifest to w in the requested format.
func Export(w io.Writer, m *Manifest, format Format) error {
	doc := document{
		Directory: m.Dir,
		Count:     m.Len(),
		TotalSize: m.TotalSize(),
		Assets:    m.Records(),
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatXML:
		return exportXML(w, doc)
	default:
		return fmt.Errorf("unsupported manifest format %q", format)
	}
}

func exportXML(w io.Writer, doc document) error {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("manifest")
	root.CreateAttr("directory", doc.Directory)
	root.CreateAttr("count", strconv.Itoa(doc.Count))
	root.CreateAttr("total_size", strconv.FormatInt(doc.TotalSize, 10))

	for _, r := range doc.Assets {
		a := root.CreateElement("asset")
		a.CreateAttr("ordinal", strconv.Itoa(r.Ordinal))
		a.CreateElement("name").SetText(r.Name)
		a.CreateElement("size").SetText(strconv.FormatInt(r.Size, 10))
		a.CreateElement("symbol").SetText(r.Symbol)
		a.CreateElement("enum_label").SetText(r.EnumLabel)
		a.CreateElement("url").SetText(r.URL)
		a.CreateElement("link_symbol").SetText(r.LinkSymbol)
	}

	x.Indent(2)
	_, err := x.WriteTo(w)
	return err
}

package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // template or schema
	Version string
	Path    string // path inside its embed root
	Purpose string
}

var Registry = []AssetInfo{
	{Family: "template", Version: "1", Path: "license.h.hbs", Purpose: "header license comment"},
	{Family: "template", Version: "1", Path: "declarations.h.hbs", Purpose: "struct type and extern declarations"},
	{Family: "template", Version: "1", Path: "lookup.h.hbs", Purpose: "address/size lookup array"},
	{Family: "template", Version: "1", Path: "enum.h.hbs", Purpose: "index enumeration with sentinel"},
	{Family: "template", Version: "1", Path: "urls.h.hbs", Purpose: "URL string table"},
	{Family: "template", Version: "1", Path: "filelist.cmake.hbs", Purpose: "build system embed list"},
	{Family: "schema", Version: "1.0.0", Path: "config/tonegen-config-v1.0.0.json", Purpose: "configuration file schema"},
}

// TemplateNames returns the registered template paths in registry order.
func TemplateNames() []string {
	var names []string
	for _, a := range Registry {
		if a.Family == "template" {
			names = append(names, a.Path)
		}
	}
	return names
}

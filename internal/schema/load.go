package schema

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadLayout reads a YAML layout override and merges it over the default
// layout. An empty path returns the default layout.
//
// The file binds fields to columns:
//
//	columns:
//	  mass:
//	    name: pl_bmasse
//	    index: 30
//	  distance:
//	    name: sy_dist
//	    index: -1
func LoadLayout(path string) (Layout, error) {
	base := DefaultLayout()
	if path == "" {
		return base, nil
	}

	k := koanf.New(".")

	defaults := make(map[string]any, len(base))
	for f, c := range base {
		defaults["columns."+string(f)+".name"] = c.Name
		defaults["columns."+string(f)+".index"] = c.Index
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load layout defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load layout file %s: %w", path, err)
	}

	var cols map[string]Column
	if err := k.Unmarshal("columns", &cols); err != nil {
		return nil, fmt.Errorf("decode layout file %s: %w", path, err)
	}

	override := make(Layout, len(cols))
	known := make(map[Field]bool, len(base))
	for _, f := range Fields() {
		known[f] = true
	}
	for name, c := range cols {
		f := Field(name)
		if !known[f] {
			return nil, fmt.Errorf("layout file %s: unknown field %q", path, name)
		}
		override[f] = c
	}

	layout := base.Merge(override)
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return layout, nil
}

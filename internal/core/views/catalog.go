package views

import "github.com/JonMunkholm/exoarchive/internal/core"

const (
	CatalogKey      = "catalog"
	CatalogPageSize = 50
)

// The catalog reads the whole file; it backs exports and the CLI.
func init() {
	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:         CatalogKey,
			Label:       "Full Catalog",
			Description: "Every archive entry, uncapped",
			Order:       30,
		},
		PageSize: CatalogPageSize,
	})
}

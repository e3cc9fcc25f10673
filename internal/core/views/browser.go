package views

import "github.com/JonMunkholm/exoarchive/internal/core"

// Browser page defaults.
const (
	BrowserKey      = "browser"
	BrowserLineCap  = 1000
	BrowserPageSize = 20
)

func init() {
	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:         BrowserKey,
			Label:       "Database",
			Description: "Searchable table of the first 1000 archive entries",
			Order:       10,
		},
		LineCap:  BrowserLineCap,
		PageSize: BrowserPageSize,
	})
}

package views

import "github.com/JonMunkholm/exoarchive/internal/core"

const (
	RecentKey   = core.RecentViewKey
	RecentLimit = 10
)

func init() {
	core.Register(core.ViewDefinition{
		Info: core.ViewInfo{
			Key:         RecentKey,
			Label:       "Recent Discoveries",
			Description: "The ten most recently discovered planets",
			Order:       20,
		},
		RequireYear:  true,
		SortYearDesc: true,
		Limit:        RecentLimit,
	})
}

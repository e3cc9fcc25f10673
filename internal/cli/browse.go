package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/exoarchive/internal/core"
	"github.com/JonMunkholm/exoarchive/internal/core/views"
)

type queryFlags struct {
	view   string
	search string
	method string
}

func (q *queryFlags) register(cmd *cobra.Command, defaultView string) {
	cmd.Flags().StringVar(&q.view, "view", defaultView, "View to read")
	cmd.Flags().StringVarP(&q.search, "search", "s", "", "Case-insensitive planet or host star substring")
	cmd.Flags().StringVarP(&q.method, "method", "m", "", "Exact discovery method")
}

func (q *queryFlags) query() core.Query {
	return core.Query{Search: q.search, Method: q.method}
}

func newBrowseCommand(rt *runtime) *cobra.Command {
	var (
		q    queryFlags
		page int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Show one page of a view",
		Long: `Browse prints one page of a view after applying the search and method
filters, like the Database page of the web server.`,
		Example: `  # First page of the database view
  exoctl browse

  # Transit planets around Kepler stars, page 2, as JSON
  exoctl browse --search kepler --method Transit --page 2 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := rt.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.Browse(cmd.Context(), q.view, q.query(), page)
			if err != nil {
				return err
			}
			warnDegraded(cmd, res.Degraded, res.Problem, res.Source)

			if rt.format == FormatJSON {
				return renderJSON(cmd.OutOrStdout(), res)
			}
			caption := fmt.Sprintf("Page %d of %d, showing %d of %d exoplanets",
				res.Page.Page, max(res.Page.TotalPages, 1), res.FilteredCount, res.TotalRecords)
			return renderRecords(cmd.OutOrStdout(), res.Page.Items, rt.format, caption)
		},
	}

	q.register(cmd, views.BrowserKey)
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number, clamped to the available pages")

	return cmd
}

func newRecentCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently discovered planets",
		Long:  `Recent lists planets with a known discovery year, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := rt.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.RecentDiscoveries(cmd.Context())
			if err != nil {
				return err
			}
			warnDegraded(cmd, res.Degraded, res.Problem, res.Source)

			if rt.format == FormatJSON {
				return renderJSON(cmd.OutOrStdout(), res)
			}
			return renderRecords(cmd.OutOrStdout(), res.Records, rt.format, "")
		},
	}
}

func newStatsCommand(rt *runtime) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a view",
		Long: `Stats prints counts by disposition, planet type and discovery method plus
radius, mass and orbital period summaries over the filtered view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := rt.service(cmd)
			if err != nil {
				return err
			}

			res, err := svc.Stats(cmd.Context(), q.view, q.query())
			if err != nil {
				return err
			}
			warnDegraded(cmd, res.Degraded, res.Problem, res.Source)

			return renderKeyValues(cmd.OutOrStdout(), rt.format, statsPairs(res.Stats), res)
		},
	}

	q.register(cmd, views.BrowserKey)
	return cmd
}

func statsPairs(s core.Stats) [][2]string {
	itoa := strconv.Itoa
	pairs := [][2]string{
		{"Total", itoa(s.Total)},
		{"Confirmed", itoa(s.Confirmed)},
		{"Candidates", itoa(s.Candidate)},
	}
	if s.EarliestYear > 0 {
		pairs = append(pairs, [2]string{"Discovery years", fmt.Sprintf("%d-%d", s.EarliestYear, s.LatestYear)})
	}
	for _, pt := range core.PlanetTypes {
		pairs = append(pairs, [2]string{string(pt), itoa(s.ByPlanetType[pt])})
	}
	for _, m := range s.MethodsInOrder {
		pairs = append(pairs, [2]string{"Method: " + m, itoa(s.ByMethod[m])})
	}

	summary := func(label string, sum core.Summary) {
		if sum.Count == 0 {
			pairs = append(pairs, [2]string{label, "N/A"})
			return
		}
		pairs = append(pairs, [2]string{label, fmt.Sprintf("n=%d mean=%.2f median=%.2f min=%.2f max=%.2f",
			sum.Count, sum.Mean, sum.Median, sum.Min, sum.Max)})
	}
	summary("Radius (R⊕)", s.Radius)
	summary("Mass (M⊕)", s.Mass)
	summary("Period (days)", s.OrbitalPeriod)
	return pairs
}

func newMethodsCommand(rt *runtime) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List discovery methods present in a view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := rt.service(cmd)
			if err != nil {
				return err
			}

			methods, err := svc.Methods(cmd.Context(), view)
			if err != nil {
				return err
			}
			return renderList(cmd.OutOrStdout(), rt.format, "Method", methods, methods)
		},
	}

	cmd.Flags().StringVar(&view, "view", views.BrowserKey, "View to read")
	return cmd
}

func newViewsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List registered views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := core.All()
			list := make([]core.ViewInfo, len(infos))
			for i, def := range infos {
				list[i] = def.Info
			}

			switch rt.format {
			case FormatJSON:
				return renderJSON(cmd.OutOrStdout(), list)
			case FormatCSV:
				rows := make([][]string, len(list))
				for i, info := range list {
					rows[i] = []string{info.Key, info.Label, info.Description}
				}
				return renderCSV(cmd.OutOrStdout(), []string{"key", "label", "description"}, rows)
			}

			t := newTable(cmd.OutOrStdout(), []string{"Key", "Label", "Description"})
			for _, info := range list {
				t.AppendRow(toRow([]string{info.Key, info.Label, info.Description}))
			}
			t.Render()
			return nil
		},
	}
}

package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/cookbook/internal/cli/output"
	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// Link statuses reported by the routes command.
const (
	linkDeclared = "declared"
	linkNotFound = "not found"
)

// RouteInfo describes one declared route.
type RouteInfo struct {
	Pattern string   `json:"pattern"`
	Title   string   `json:"title"`
	Views   []string `json:"views"`
}

// LinkInfo describes one sidebar link and what it resolves to.
type LinkInfo struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Pattern string `json:"pattern,omitempty"`
	Status  string `json:"status"`
}

// RoutesReport is the JSON shape of the routes command.
type RoutesReport struct {
	Routes []RouteInfo `json:"routes"`
	Links  []LinkInfo  `json:"links"`
}

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List declared routes and sidebar links",
		Long: `List every declared route with the chain of views it renders, followed by
the sidebar links and the route each one reaches. Links without a declared
route are reported as not found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			server, err := cc.Server()
			if err != nil {
				return err
			}
			report, err := buildRoutesReport(server.Renderer().Table)
			if err != nil {
				return err
			}
			return renderRoutes(cc.Renderer, report)
		},
	}
}

func buildRoutesReport(table *routes.Table) (*RoutesReport, error) {
	report := &RoutesReport{}
	for _, e := range table.Routes() {
		report.Routes = append(report.Routes, RouteInfo{
			Pattern: e.Pattern,
			Title:   e.Leaf().Name,
			Views:   e.Names(),
		})
	}

	for _, item := range shell.Nav("") {
		link := LinkInfo{Label: item.Label, Href: item.Href}
		res, err := table.Resolve(item.Href)
		switch {
		case errors.Is(err, routes.ErrNotFound):
			link.Status = linkNotFound
		case err != nil:
			return nil, err
		default:
			link.Pattern = res.Pattern
			link.Status = linkDeclared
		}
		report.Links = append(report.Links, link)
	}
	return report, nil
}

func renderRoutes(r *output.Renderer, report *RoutesReport) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}

	r.Header(1, "Routes")
	rows := make([][]string, 0, len(report.Routes))
	for _, rt := range report.Routes {
		rows = append(rows, []string{rt.Pattern, rt.Title, strings.Join(rt.Views, " > ")})
	}
	r.Table([]string{"Pattern", "Title", "Views"}, rows)

	r.Println("")
	r.Header(1, "Sidebar")
	title := cases.Title(language.English)
	rows = make([][]string, 0, len(report.Links))
	for _, l := range report.Links {
		pattern := l.Pattern
		if pattern == "" {
			pattern = "-"
		}
		rows = append(rows, []string{l.Label, l.Href, pattern, title.String(l.Status)})
	}
	r.Table([]string{"Link", "Href", "Route", "Status"}, rows)
	return nil
}

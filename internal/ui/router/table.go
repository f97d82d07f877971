package router

import (
	"github.com/leapstack-labs/cookbook/internal/routes"
	"github.com/leapstack-labs/cookbook/internal/ui/features/cookbooks"
	"github.com/leapstack-labs/cookbook/internal/ui/features/explore"
	"github.com/leapstack-labs/cookbook/internal/ui/features/home"
	"github.com/leapstack-labs/cookbook/internal/ui/features/notfound"
	"github.com/leapstack-labs/cookbook/internal/ui/features/profile"
	"github.com/leapstack-labs/cookbook/internal/ui/shell"
)

// ShellName is the name of the root route, whose view is the shell layout.
const ShellName = "Shell"

// DeclareRoutes builds the application's route table. Every page renders
// inside the shell; the index child is the landing view.
func DeclareRoutes() (*routes.Table, error) {
	return routes.New(routes.Node{
		Path: shell.BasePath,
		Name: ShellName,
		View: shell.Layout(),
		Children: []routes.Node{
			{Index: true, Name: home.Title, View: home.View()},
			{Path: "explore", Name: explore.Title, View: explore.View()},
			{Path: "profile", Name: profile.Title, View: profile.View()},
			{Path: "cookbooks", Name: cookbooks.Title, View: cookbooks.View()},
		},
	}, routes.WithNotFound(notfound.View()))
}

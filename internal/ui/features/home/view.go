// Package home provides the home/landing view of the UI.
package home

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// Title is the view name shown in the page title.
const Title = "Home"

// View renders the home feed.
func View() templ.Component {
	return common.PageSection("home", Title, "Recipes from the cooks you follow.")
}

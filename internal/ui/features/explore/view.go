// Package explore provides the explore view of the UI.
package explore

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// Title is the view name shown in the page title.
const Title = "Explore"

// View renders the explore page.
func View() templ.Component {
	return common.PageSection("explore", Title, "Discover new recipes and cooks.")
}

// Package cookbooks provides the cookbooks view of the UI.
package cookbooks

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// Title is the view name shown in the page title.
const Title = "Cookbooks"

// View renders the cookbook collection page.
func View() templ.Component {
	return common.PageSection("cookbooks", Title, "Collections of saved recipes.")
}

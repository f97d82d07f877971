// Package profile provides the profile view of the UI.
package profile

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// Title is the view name shown in the page title.
const Title = "Profile"

// View renders the signed-in cook's profile page.
func View() templ.Component {
	return common.PageSection("profile", Title, "")
}

// Package notfound provides the fallback view rendered for paths that match
// no route.
package notfound

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/cookbook/internal/ui/features/common"
)

// View renders the not-found message inside the shell.
func View() templ.Component {
	return common.PageSection("not-found", "Not Found", "There is nothing at this address.")
}

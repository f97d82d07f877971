package shell

import (
	"context"

	"github.com/leapstack-labs/cookbook/internal/routes"
)

// Location is the navigation state of one request: the path being shown
// and its resolution. A handler sets it once with WithLocation; components
// read it with LocationFrom.
type Location struct {
	Path     string
	Resolved routes.Resolved

	// Static renders nav links as plain anchors for sites served without
	// the navigation endpoint.
	Static bool
}

type locationKey struct{}

// WithLocation returns a context carrying loc.
func WithLocation(ctx context.Context, loc Location) context.Context {
	return context.WithValue(ctx, locationKey{}, loc)
}

// LocationFrom returns the location carried by ctx. The zero Location is
// returned when none was set, in which case no link is active.
func LocationFrom(ctx context.Context) Location {
	if loc, ok := ctx.Value(locationKey{}).(Location); ok {
		return loc
	}
	return Location{}
}

// NewLocation builds the location for a resolution.
func NewLocation(res routes.Resolved) Location {
	return Location{Path: res.Path, Resolved: res}
}

// Package shell renders the persistent frame of the web UI: the sidebar
// navigation list and the main region that hosts the routed view.
package shell

import (
	"net/url"
	"strings"
)

// BasePath is the path of the route the shell is mounted at. Relative
// link targets resolve against it.
const BasePath = "/"

// NavEndpoint serves in-shell navigation over SSE.
const NavEndpoint = "/_nav"

// Link is one sidebar entry.
type Link struct {
	Label string
	To    string // absolute, or relative to BasePath
}

// Links returns the sidebar entries in display order.
//
// Notifications has no declared route and resolves to the not-found view.
func Links() []Link {
	return []Link{
		{Label: "Home", To: "/"},
		{Label: "Explore", To: "explore"},
		{Label: "Notifications", To: "notifications"},
		{Label: "Profile", To: "profile"},
		{Label: "CookBooks", To: "cookbooks"},
	}
}

// Href resolves a link target against base.
func Href(base, to string) string {
	if strings.HasPrefix(to, "/") {
		return to
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + to
}

// IsActive reports whether a link to href is active at path current. The
// root link matches only itself; any other link also matches paths nested
// below it.
func IsActive(href, current string) bool {
	if current == "" {
		return false
	}
	if href == "/" {
		return current == "/"
	}
	href = strings.TrimSuffix(href, "/")
	return current == href || strings.HasPrefix(current, href+"/")
}

// NavItem is a link prepared for rendering at a given path.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// NavURL returns the in-shell navigation URL for href.
func (n NavItem) NavURL() string {
	return NavURL(n.Href)
}

// Nav returns the sidebar items with active state computed for current.
func Nav(current string) []NavItem {
	links := Links()
	items := make([]NavItem, len(links))
	for i, l := range links {
		href := Href(BasePath, l.To)
		items[i] = NavItem{
			Label:  l.Label,
			Href:   href,
			Active: IsActive(href, current),
		}
	}
	return items
}

// NavURL returns the SSE navigation URL for path.
func NavURL(path string) string {
	return NavEndpoint + "?" + url.Values{"path": {path}}.Encode()
}

package routes

import (
	"strings"

	"github.com/a-h/templ"
)

// NotFoundName names the fallback view in titles and listings.
const NotFoundName = "Not Found"

// Node is one declared route.
type Node struct {
	// Path is the segment matched relative to the parent. The root node
	// uses "/" (or ""). Must be empty for index nodes.
	Path string

	// Index marks the node as the default child rendered when the parent
	// path is matched and no segments remain.
	Index bool

	// Name identifies the view in titles and listings.
	Name string

	// View renders the node. Views of nodes with children render their
	// outlet via templ.GetChildren.
	View templ.Component

	Children []Node
}

// segments returns the non-empty segments of the node path.
func (n *Node) segments() []string {
	var out []string
	for _, s := range strings.Split(n.Path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// clone deep-copies the tree so a built table cannot be mutated through
// the declaration it was built from.
func (n Node) clone() *Node {
	c := n
	if len(n.Children) > 0 {
		c.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = *child.clone()
		}
	}
	return &c
}

// joinPattern appends the node segments to a parent pattern.
func joinPattern(prefix string, segs []string) string {
	if len(segs) == 0 {
		return prefix
	}
	if prefix == "/" {
		return "/" + strings.Join(segs, "/")
	}
	return prefix + "/" + strings.Join(segs, "/")
}

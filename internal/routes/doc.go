// Package routes declares the static route table of the web shell and
// resolves request paths against it.
//
// A table is built once from a tree of Nodes. Each node maps a path segment
// (or the index designation) to a view; children render inside their
// parent's view, in the slot the parent exposes as its templ children (the
// outlet). Path matching itself is delegated to chi: every resolvable path
// of the tree is registered as a static chi pattern and resolution asks the
// chi mux which pattern matches.
package routes

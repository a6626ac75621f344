package html_test

import (
	"bytes"
	"strings"
	"testing"

	nethtml "golang.org/x/net/html"
)

type matcher func(*nethtml.Node) bool

func byTag(tag string) matcher {
	return func(n *nethtml.Node) bool {
		return n.Type == nethtml.ElementNode && n.Data == tag
	}
}

func byClass(class string) matcher {
	return func(n *nethtml.Node) bool {
		return n.Type == nethtml.ElementNode && hasClass(n, class)
	}
}

// within restricts matches to nodes that have an ancestor matching outer.
func within(outer matcher) matcher {
	return func(n *nethtml.Node) bool {
		for p := n.Parent; p != nil; p = p.Parent {
			if outer(p) {
				return true
			}
		}
		return false
	}
}

func findAll(root *nethtml.Node, matchers ...matcher) []*nethtml.Node {
	var out []*nethtml.Node
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		matched := n != root
		for _, m := range matchers {
			if !matched {
				break
			}
			matched = m(n)
		}
		if matched {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func first(t *testing.T, root *nethtml.Node, matchers ...matcher) *nethtml.Node {
	t.Helper()
	found := findAll(root, matchers...)
	if len(found) == 0 {
		t.Fatalf("no node matched")
	}
	return found[0]
}

func bodyRows(t *testing.T, doc *nethtml.Node) []*nethtml.Node {
	t.Helper()
	tbody := first(t, doc, byTag("tbody"))
	var rows []*nethtml.Node
	for _, child := range elementChildren(tbody) {
		if child.Data == "tr" {
			rows = append(rows, child)
		}
	}
	if len(rows) == 0 {
		t.Fatalf("table has no body rows")
	}
	return rows
}

func elementChildren(n *nethtml.Node) []*nethtml.Node {
	var out []*nethtml.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *nethtml.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// text returns the node's text content with whitespace runs collapsed.
func text(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func innerHTML(t *testing.T, n *nethtml.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := nethtml.Render(&buf, c); err != nil {
			t.Fatalf("render node: %v", err)
		}
	}
	return buf.String()
}

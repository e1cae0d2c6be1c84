package corpus

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const appleRefPrefix = "//apple_ref/"

// findAnchor locates the element whose name or id is the symbol, either bare
// or as the last component of an apple_ref path.
func findAnchor(n *html.Node, symbol string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key != "name" && a.Key != "id" {
				continue
			}
			if a.Val == symbol || strings.HasSuffix(a.Val, "/"+symbol) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAnchor(c, symbol); found != nil {
			return found
		}
	}
	return nil
}

// collectSection walks the siblings after the anchor. Headings before any
// prose (the symbol's own title) are skipped; the next major heading or
// apple_ref anchor ends the section.
func collectSection(anchor *html.Node) *Section {
	start := anchor
	if isHeading(anchor.Parent) {
		start = anchor.Parent
	}

	s := &Section{}
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if isSectionBoundary(n) {
			if len(s.Paragraphs) > 0 || s.Example != "" {
				break
			}
			continue
		}
		switch n.DataAtom {
		case atom.P:
			if text := collapse(textOf(n)); text != "" {
				s.Paragraphs = append(s.Paragraphs, text)
			}
		case atom.Pre:
			if s.Example == "" {
				s.Example = strings.Trim(textOf(n), "\n")
			}
		case atom.Div:
			if pre := findFirst(n, atom.Pre); pre != nil && s.Example == "" {
				s.Example = strings.Trim(textOf(pre), "\n")
			}
		}
	}
	return s
}

func isSectionBoundary(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4:
		return true
	case atom.A:
		for _, a := range n.Attr {
			if (a.Key == "name" || a.Key == "id") && strings.HasPrefix(a.Val, appleRefPrefix) {
				return true
			}
		}
	}
	return false
}

func isHeading(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

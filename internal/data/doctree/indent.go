package doctree

import (
	"strings"

	"github.com/beevik/etree"
)

const indentUnit = "  "

// indent lays el out one child per line. Elements holding non-blank text
// next to other nodes are mixed content and left untouched, so repeated
// load/save cycles produce identical bytes.
func indent(el *etree.Element, depth int) {
	if el == nil || isMixed(el) {
		return
	}

	var kids []etree.Token
	for _, c := range el.Child {
		if cd, ok := c.(*etree.CharData); ok && isBlank(cd.Data) {
			continue
		}
		kids = append(kids, c)
	}
	Clear(el)
	if len(kids) == 0 {
		return
	}

	if _, ok := kids[0].(*etree.CharData); ok {
		// Text-only leaf (isMixed ruled out anything else): keep it inline.
		for _, k := range kids {
			el.AddChild(k)
		}
		return
	}

	inner := "\n" + strings.Repeat(indentUnit, depth+1)
	for _, k := range kids {
		el.AddChild(etree.NewText(inner))
		el.AddChild(k)
		if child, ok := k.(*etree.Element); ok {
			indent(child, depth+1)
		}
	}
	el.AddChild(etree.NewText("\n" + strings.Repeat(indentUnit, depth)))
}

func isMixed(el *etree.Element) bool {
	hasText, hasOther := false, false
	for _, c := range el.Child {
		if cd, ok := c.(*etree.CharData); ok {
			if !isBlank(cd.Data) {
				hasText = true
			}
			continue
		}
		hasOther = true
	}
	return hasText && hasOther
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// normalizeRoot drops the XML declaration and blank text around the root
// element.
func normalizeRoot(doc *etree.Document) {
	for i := len(doc.Child) - 1; i >= 0; i-- {
		switch tok := doc.Child[i].(type) {
		case *etree.ProcInst:
			if tok.Target == "xml" {
				doc.RemoveChildAt(i)
			}
		case *etree.CharData:
			doc.RemoveChildAt(i)
		}
	}
	// Remaining top-level tokens (comments, doctype, root) one per line.
	n := len(doc.Child)
	for i := n - 1; i > 0; i-- {
		doc.InsertChildAt(i, etree.NewText("\n"))
	}
}

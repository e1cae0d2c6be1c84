package doctree

import (
	"strings"

	"github.com/beevik/etree"
)

// InnerText concatenates all character data below el, like an element's
// string value in XPath.
func InnerText(el *etree.Element) string {
	var sb strings.Builder
	collectText(el, &sb)
	return sb.String()
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, c := range el.Child {
		switch tok := c.(type) {
		case *etree.CharData:
			sb.WriteString(tok.Data)
		case *etree.Element:
			collectText(tok, sb)
		}
	}
}

// Clear removes every child token of el.
func Clear(el *etree.Element) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		el.RemoveChildAt(i)
	}
}

// SetText replaces the whole content of el with plain text.
func SetText(el *etree.Element, text string) {
	Clear(el)
	if text != "" {
		el.SetText(text)
	}
}

// SetContent replaces the content of el with the given tokens.
func SetContent(el *etree.Element, tokens ...etree.Token) {
	Clear(el)
	for _, t := range tokens {
		el.AddChild(t)
	}
}

// Prepend inserts tokens at the front of el, keeping their order.
func Prepend(el *etree.Element, tokens ...etree.Token) {
	for i, t := range tokens {
		el.InsertChildAt(i, t)
	}
}

// RemoveTagged drops direct children of el whose id attribute has the given
// prefix. Synthesized blocks carry such ids so a rerun replaces them.
func RemoveTagged(el *etree.Element, idPrefix string) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		child, ok := el.Child[i].(*etree.Element)
		if !ok {
			continue
		}
		if strings.HasPrefix(child.SelectAttrValue("id", ""), idPrefix) {
			el.RemoveChildAt(i)
		}
	}
}

// Text is a character data token.
func Text(s string) etree.Token {
	return etree.NewText(s)
}

// See builds <see cref="..."/>.
func See(cref string) *etree.Element {
	el := etree.NewElement("see")
	el.CreateAttr("cref", cref)
	return el
}

// Para builds a <para> holding the given inline tokens.
func Para(content ...etree.Token) *etree.Element {
	el := etree.NewElement("para")
	for _, c := range content {
		el.AddChild(c)
	}
	return el
}

// CodeExample builds <example><code lang="...">code</code></example>.
func CodeExample(lang, code string) *etree.Element {
	ex := etree.NewElement("example")
	c := ex.CreateElement("code")
	c.CreateAttr("lang", lang)
	c.SetText(code)
	return ex
}

// WithID sets the id attribute and returns el.
func WithID(el *etree.Element, id string) *etree.Element {
	el.CreateAttr("id", id)
	return el
}

// Package doctree wraps an mdoc per-type XML document: a Type element with a
// Docs node and a Members collection keyed by MemberName.
package doctree

import (
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"
)

type Tree struct {
	doc *etree.Document
}

// Member is one <Member MemberName="..."> node.
type Member struct {
	el *etree.Element
}

// Docs is a <Docs> node, either type-level or member-level.
type Docs struct {
	el *etree.Element
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		// Input has already been transcoded to UTF-8 by the storage layer.
		return input, nil
	}
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	return doc
}

// Parse reads a documentation tree from UTF-8 XML.
func Parse(r io.Reader) (*Tree, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return &Tree{doc: doc}, nil
}

// ParseString is Parse over a string, mostly for tests and fixtures.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}

// TypeDocs returns the type-level Docs node, creating it if absent.
func (t *Tree) TypeDocs() *Docs {
	return &Docs{el: ensureChild(t.doc.Root(), "Docs")}
}

// Member looks a member up by exact name. Returns nil when the tree has no
// such member.
func (t *Tree) Member(name string) *Member {
	members := t.doc.Root().SelectElement("Members")
	if members == nil {
		return nil
	}
	for _, m := range members.SelectElements("Member") {
		if m.SelectAttrValue("MemberName", "") == name {
			return &Member{el: m}
		}
	}
	return nil
}

// WriteTo serializes the tree: two-space indentation, no XML declaration,
// LF line endings and a trailing newline.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	normalizeRoot(t.doc)
	indent(t.doc.Root(), 0)

	var buf bytes.Buffer
	if _, err := t.doc.WriteTo(&buf); err != nil {
		return 0, err
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

// String renders the tree for diagnostics.
func (t *Tree) String() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

func (m *Member) Name() string {
	return m.el.SelectAttrValue("MemberName", "")
}

func (m *Member) ReturnType() string {
	rv := m.el.SelectElement("ReturnValue")
	if rv == nil {
		return ""
	}
	if rt := rv.SelectElement("ReturnType"); rt != nil {
		return InnerText(rt)
	}
	return ""
}

func (m *Member) Docs() *Docs {
	return &Docs{el: ensureChild(m.el, "Docs")}
}

func (d *Docs) Summary() *etree.Element {
	return ensureChild(d.el, "summary")
}

func (d *Docs) Remarks() *etree.Element {
	return ensureChild(d.el, "remarks")
}

func (d *Docs) Returns() *etree.Element {
	return ensureChild(d.el, "returns")
}

// Param returns the first <param>, creating one named name when the member
// has none.
func (d *Docs) Param(name string) *etree.Element {
	if p := d.el.SelectElement("param"); p != nil {
		return p
	}
	p := etree.NewElement("param")
	p.CreateAttr("name", name)
	d.el.InsertChildAt(0, p)
	return p
}

// Example returns the first remarks/example whose id does not start with
// skipIDPrefix, or nil. An empty prefix matches no id.
func (d *Docs) Example(skipIDPrefix string) *etree.Element {
	remarks := d.el.SelectElement("remarks")
	if remarks == nil {
		return nil
	}
	for _, ex := range remarks.SelectElements("example") {
		if skipIDPrefix != "" && strings.HasPrefix(ex.SelectAttrValue("id", ""), skipIDPrefix) {
			continue
		}
		return ex
	}
	return nil
}

func ensureChild(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	return parent.CreateElement(tag)
}

package doctree

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docfixer/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooDoc = `<?xml version="1.0" encoding="utf-8"?>
<Type Name="Foo" FullName="MonoTouch.Demo.Foo">
  <Docs>
    <summary>To be added.</summary>
    <remarks>To be added.</remarks>
  </Docs>
  <Members>
    <Member MemberName="BarNotification">
      <ReturnValue>
        <ReturnType>MonoTouch.Foundation.NSString</ReturnType>
      </ReturnValue>
      <Docs>
        <summary>Posted when <see cref="T:MonoTouch.Demo.Bar" /> changes.</summary>
        <remarks>To be added.<example><code lang="c#">Foo.Bar ();</code></example></remarks>
      </Docs>
    </Member>
    <Member MemberName="Baz">
      <Docs />
    </Member>
  </Members>
</Type>
`

func TestTreeAccessors(t *testing.T) {
	tree, err := ParseString(fooDoc)
	require.NoError(t, err)

	assert.Nil(t, tree.Member("Missing"))

	m := tree.Member("BarNotification")
	require.NotNil(t, m)
	assert.Equal(t, "BarNotification", m.Name())
	assert.Equal(t, "MonoTouch.Foundation.NSString", m.ReturnType())
	assert.Equal(t, "Posted when  changes.", InnerText(m.Docs().Summary()))
	require.NotNil(t, m.Docs().Example(""))

	baz := tree.Member("Baz")
	assert.Nil(t, baz.Docs().Example(""))
	baz.Docs().Summary().SetText("created on demand")
	assert.Equal(t, "created on demand", InnerText(tree.Member("Baz").Docs().Summary()))

	p := baz.Docs().Param("handler")
	assert.Equal(t, "handler", p.SelectAttrValue("name", ""))
	assert.Same(t, p, baz.Docs().Param("other"), "existing param is reused")
}

func TestExampleSkipsTaggedBlocks(t *testing.T) {
	tree, err := ParseString(fooDoc)
	require.NoError(t, err)
	remarks := tree.Member("BarNotification").Docs().Remarks()
	Prepend(remarks, WithID(CodeExample("c#", "generated ();"), "gen-example"))

	assert.Equal(t, "generated ();", InnerText(tree.Member("BarNotification").Docs().Example("")))
	assert.Equal(t, "Foo.Bar ();", InnerText(tree.Member("BarNotification").Docs().Example("gen")))
	assert.Nil(t, tree.Member("Baz").Docs().Example("gen"))
}

func TestTextHelpers(t *testing.T) {
	tree, err := ParseString(fooDoc)
	require.NoError(t, err)
	remarks := tree.Member("BarNotification").Docs().Remarks()

	Prepend(remarks,
		WithID(Para(Text("first "), See("T:Foo"), Text(".")), "tool-remark"),
		WithID(Para(Text("second")), "tool-remark-intro"),
	)
	children := remarks.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "tool-remark", children[0].SelectAttrValue("id", ""))
	assert.Equal(t, "tool-remark-intro", children[1].SelectAttrValue("id", ""))
	assert.Equal(t, "example", children[2].Tag)

	RemoveTagged(remarks, "tool-remark")
	require.Len(t, remarks.ChildElements(), 1)

	SetText(remarks, "")
	assert.Empty(t, remarks.Child)

	SetContent(remarks, CodeExample("c#", "x ();"))
	assert.Equal(t, "x ();", InnerText(remarks))
}

func TestWriteToFormat(t *testing.T) {
	tree, err := ParseString(fooDoc)
	require.NoError(t, err)

	out := tree.String()
	assert.False(t, strings.HasPrefix(out, "<?xml"), "declaration must be dropped")
	assert.True(t, strings.HasPrefix(out, `<Type Name="Foo" FullName="MonoTouch.Demo.Foo">`+"\n  <Docs>"))
	assert.True(t, strings.HasSuffix(out, "</Type>\n"))
	assert.Contains(t, out, `<summary>Posted when <see cref="T:MonoTouch.Demo.Bar"/> changes.</summary>`)
	assert.Contains(t, out, "<remarks>To be added.<example>", "mixed content is left alone")

	again, err := ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, out, again.String(), "serialization must be stable across round trips")
}

func TestFileStorage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.xml")

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte(fooDoc)...)
	require.NoError(t, os.WriteFile(path, bom, 0o644))

	s := &FileStorage{Newline: "\r\n"}
	tree, err := s.Load(path)
	require.NoError(t, err)
	require.NotNil(t, tree.Member("Baz"))

	require.NoError(t, s.Save(path, tree))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "no byte-order mark")
	assert.True(t, bytes.HasSuffix(data, []byte("</Type>\r\n")))
	assert.NotContains(t, strings.ReplaceAll(string(data), "\r\n", ""), "\n")

	reloaded, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tree.String(), reloaded.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStorageFailures(t *testing.T) {
	s := NewFileStorage()
	dir := t.TempDir()

	_, err := s.Load(filepath.Join(dir, "missing.xml"))
	assert.True(t, errors.IsCode(err, errors.CodeMissingDocument))

	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<Type><Docs></Type>"), 0o644))
	_, err = s.Load(broken)
	assert.True(t, errors.IsCode(err, errors.CodeMissingDocument))
}

package docstore

import (
	"os"
	"path/filepath"
	"testing"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `<Type Name="Foo" FullName="MonoTouch.Demo.Foo">
  <Docs>
    <summary>To be added.</summary>
  </Docs>
  <Members />
</Type>
`

type countingStorage struct {
	doctree.Storage
	loads map[string]int
}

func (c *countingStorage) Load(path string) (*doctree.Tree, error) {
	c.loads[path]++
	return c.Storage.Load(path)
}

func setup(t *testing.T) (*Locator, *countingStorage, *contract.Type, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "MonoTouch.Demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "MonoTouch.Demo", "Foo.xml"), []byte(minimalDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "MonoTouch.Demo", "Foo+Notifications.xml"), []byte(minimalDoc), 0o644))

	storage := &countingStorage{Storage: doctree.NewFileStorage(), loads: map[string]int{}}
	foo := &contract.Type{Namespace: "MonoTouch.Demo", Name: "Foo"}
	return NewLocator(root, "+Notifications", storage), storage, foo, root
}

func TestPathFor(t *testing.T) {
	l := NewLocator("/docs/en", "+Notifications", doctree.NewFileStorage())
	foo := &contract.Type{Namespace: "MonoTouch.Demo", Name: "Foo"}

	assert.Equal(t, filepath.Join("/docs/en", "MonoTouch.Demo", "Foo.xml"), l.PathFor(foo, false))
	assert.Equal(t, filepath.Join("/docs/en", "MonoTouch.Demo", "Foo+Notifications.xml"), l.PathFor(foo, true))
}

func TestPrimaryIsCached(t *testing.T) {
	l, storage, foo, root := setup(t)

	first, err := l.Primary(foo)
	require.NoError(t, err)
	second, err := l.Primary(foo)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, storage.loads[filepath.Join(root, "MonoTouch.Demo", "Foo.xml")])
	assert.Equal(t, []string{"MonoTouch.Demo.Foo"}, l.Loaded())
}

func TestCompanionIsNeverCached(t *testing.T) {
	l, storage, foo, root := setup(t)

	first, err := l.Companion(foo)
	require.NoError(t, err)
	second, err := l.Companion(foo)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, storage.loads[filepath.Join(root, "MonoTouch.Demo", "Foo+Notifications.xml")])
	assert.Empty(t, l.Loaded(), "companions never enter the primary cache")
}

func TestMissingDocuments(t *testing.T) {
	l, _, _, _ := setup(t)
	bar := &contract.Type{Namespace: "MonoTouch.Demo", Name: "Bar"}

	_, err := l.Primary(bar)
	assert.True(t, errors.IsCode(err, errors.CodeMissingDocument), "got %v", err)
	assert.Empty(t, l.Loaded())

	_, err = l.Companion(bar)
	assert.True(t, errors.IsCode(err, errors.CodeCompanionLoadFailure), "got %v", err)
}

func TestSaveAll(t *testing.T) {
	l, _, foo, root := setup(t)

	tree, err := l.Primary(foo)
	require.NoError(t, err)
	tree.TypeDocs().Summary().SetText("Rewritten")

	written, err := l.SaveAll()
	require.NoError(t, err)
	path := filepath.Join(root, "MonoTouch.Demo", "Foo.xml")
	assert.Equal(t, []string{path}, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<summary>Rewritten</summary>")
}

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"docfixer/internal/data/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyboardPage = `<html><body>
<h1>UIKeyboard Class Reference</h1>
<a name="//apple_ref/c/data/UIKeyboardWillShowNotification" title="UIKeyboardWillShowNotification"></a>
<h3 class="tight jump">UIKeyboardWillShowNotification</h3>
<p class="spaceabove">Posted immediately prior to the display of the keyboard.</p>
<p>The notification object is nil. The <code>userInfo</code> dictionary
   contains information about the keyboard.</p>
<div class="codesample"><pre>
[center addObserver:self selector:@selector(keyboardWillShow:)];
</pre></div>
<h5 class="tight">Availability</h5>
<ul><li>Available in iOS 2.0 and later.</li></ul>
<a name="//apple_ref/c/data/UIKeyboardDidHideNotification" title="UIKeyboardDidHideNotification"></a>
<h3 class="tight jump">UIKeyboardDidHideNotification</h3>
<p>Posted immediately after the dismissal of the keyboard.</p>
<a name="//apple_ref/c/data/UIKeyboardEmpty"></a>
<h3>UIKeyboardEmpty</h3>
</body></html>`

func writeDocSet(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "UIKit", "Reference", "UIKeyboard_Class", "Reference")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Reference.html"), []byte(keyboardPage), 0o644))

	other := filepath.Join(root, "UIKit", "Reference")
	require.NoError(t, os.WriteFile(filepath.Join(other, "UIView.html"), []byte("<html><body><p>view</p></body></html>"), 0o644))
	return root
}

func TestExtractProse(t *testing.T) {
	ds, err := OpenDocSet(writeDocSet(t), 4)
	require.NoError(t, err)

	kbd := &contract.Type{Namespace: "MonoTouch.UIKit", Name: "UIKeyboard"}
	require.True(t, ds.HasDocsFor(kbd))

	s, ok := ds.ExtractProse(kbd, "UIKeyboardWillShowNotification")
	require.True(t, ok)
	assert.Equal(t, []string{
		"Posted immediately prior to the display of the keyboard.",
		"The notification object is nil. The userInfo dictionary contains information about the keyboard.",
	}, s.Paragraphs)
	assert.Equal(t, "[center addObserver:self selector:@selector(keyboardWillShow:)];", s.Example)

	s, ok = ds.ExtractProse(kbd, "UIKeyboardDidHideNotification")
	require.True(t, ok)
	assert.Equal(t, []string{"Posted immediately after the dismissal of the keyboard."}, s.Paragraphs)
	assert.Empty(t, s.Example)
}

func TestExtractProseMisses(t *testing.T) {
	ds, err := OpenDocSet(writeDocSet(t), 4)
	require.NoError(t, err)

	kbd := &contract.Type{Namespace: "MonoTouch.UIKit", Name: "UIKeyboard"}
	_, ok := ds.ExtractProse(kbd, "UIKeyboardUnknownNotification")
	assert.False(t, ok, "unknown symbol")

	_, ok = ds.ExtractProse(kbd, "UIKeyboardEmpty")
	assert.False(t, ok, "section without prose")

	missing := &contract.Type{Namespace: "MonoTouch.UIKit", Name: "UIButton"}
	assert.False(t, ds.HasDocsFor(missing))
	_, ok = ds.ExtractProse(missing, "Anything")
	assert.False(t, ok)

	assert.True(t, ds.HasDocsFor(&contract.Type{Namespace: "MonoTouch.UIKit", Name: "UIView"}), "plain page stems are indexed")
}

func TestOpenDocSetMissingRoot(t *testing.T) {
	_, err := OpenDocSet(filepath.Join(t.TempDir(), "absent"), 4)
	assert.Error(t, err)
}

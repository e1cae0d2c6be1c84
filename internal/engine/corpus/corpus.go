// Package corpus mines prose for native symbols out of an Apple docset's HTML
// reference pages.
package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docfixer/internal/data/contract"
	"docfixer/internal/shared/cache"

	"golang.org/x/net/html"
)

// Section is the prose documenting one symbol.
type Section struct {
	Paragraphs []string
	// Example is the first code sample of the section, or empty.
	Example string
}

// Miner is the external documentation collaborator consulted in merge mode.
type Miner interface {
	ExtractProse(t *contract.Type, symbol string) (*Section, bool)
	HasDocsFor(t *contract.Type) bool
}

// DocSet indexes reference pages by the type they document. Pages are parsed
// lazily; the most recently used ones stay in memory.
type DocSet struct {
	root  string
	index map[string]string
	pages *cache.LRU[string, *html.Node]
}

var referenceDirSuffixes = []string{"_Class", "_ClassRef", "_Protocol", "_Ref", "_Reference"}

var genericPageNames = map[string]bool{
	"index":         true,
	"reference":     true,
	"compositepage": true,
	"toc":           true,
}

// OpenDocSet walks root once and records, for every HTML page, which type it
// documents: the file stem, or for generic stems like Reference.html the
// nearest "<Type>_Class"-style directory.
// pageCache bounds how many parsed pages are kept.
func OpenDocSet(root string, pageCache int) (*DocSet, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	ds := &DocSet{root: root, index: make(map[string]string), pages: cache.NewLRU[string, *html.Node](pageCache)}
	for _, path := range files {
		key := pageKey(root, path)
		if key == "" {
			continue
		}
		if _, dup := ds.index[key]; !dup {
			ds.index[key] = path
		}
	}
	return ds, nil
}

func pageKey(root, path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !genericPageNames[strings.ToLower(stem)] {
		return stem
	}
	for dir := filepath.Dir(path); dir != root && dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		base := filepath.Base(dir)
		for _, suffix := range referenceDirSuffixes {
			if strings.HasSuffix(base, suffix) {
				return strings.TrimSuffix(base, suffix)
			}
		}
	}
	return ""
}

func (d *DocSet) HasDocsFor(t *contract.Type) bool {
	_, ok := d.index[t.ShortName()]
	return ok
}

// ExtractProse returns the section anchored at symbol on t's reference page.
func (d *DocSet) ExtractProse(t *contract.Type, symbol string) (*Section, bool) {
	page, ok := d.page(t)
	if !ok {
		return nil, false
	}
	anchor := findAnchor(page, symbol)
	if anchor == nil {
		return nil, false
	}
	s := collectSection(anchor)
	if len(s.Paragraphs) == 0 {
		return nil, false
	}
	return s, true
}

func (d *DocSet) page(t *contract.Type) (*html.Node, bool) {
	path, ok := d.index[t.ShortName()]
	if !ok {
		return nil, false
	}
	if n, ok := d.pages.Get(path); ok {
		return n, n != nil
	}
	f, err := os.Open(path)
	if err != nil {
		d.pages.Put(path, nil)
		return nil, false
	}
	defer f.Close()
	n, err := html.Parse(f)
	if err != nil {
		n = nil
	}
	d.pages.Put(path, n)
	return n, n != nil
}

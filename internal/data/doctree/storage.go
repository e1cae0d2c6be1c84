package doctree

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"docfixer/internal/core/errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Storage loads and persists documentation trees by path.
type Storage interface {
	Load(path string) (*Tree, error)
	Save(path string, t *Tree) error
}

// FileStorage reads and writes trees on the local file system.
type FileStorage struct {
	// Newline replaces "\n" in the serialized output.
	Newline string
}

// NewFileStorage uses the platform newline convention.
func NewFileStorage() *FileStorage {
	nl := "\n"
	if runtime.GOOS == "windows" {
		nl = "\r\n"
	}
	return &FileStorage{Newline: nl}
}

// Load decodes a document whatever its byte-order mark says (UTF-8 or
// UTF-16). A missing or unparsable file is reported as a missing document.
func (s *FileStorage) Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeMissingDocument, "document missing"), errors.CtxPath, path)
	}
	defer f.Close()

	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	t, err := Parse(r)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeMissingDocument, "failure while loading document"), errors.CtxPath, path)
	}
	return t, nil
}

// Save writes UTF-8 without a byte-order mark via a temp file and rename, so
// an interrupted run never leaves a truncated document behind.
func (s *FileStorage) Save(path string, t *Tree) error {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	data := buf.Bytes()
	if s.Newline != "" && s.Newline != "\n" {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte(s.Newline))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".docfixer-*.xml")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Package document persists an instance to a textual document on disk and
// can watch the document for external edits, reloading and handing back a
// freshly deserialized instance.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/serialize"
)

// Store reads and writes one instance document.
type Store struct {
	// Path is the document location on disk.
	Path string
	// Def is the declared type deserialization targets; the document's
	// discriminator may resolve it to a registered subtype.
	Def *attr.TypeDef
}

// NewStore returns a store for the given document path and declared type.
func NewStore(path string, def *attr.TypeDef) *Store {
	return &Store{Path: path, Def: def}
}

// Save serializes inst and writes the document atomically: the bytes land
// in a temp file in the same directory, which then renames over the target
// so a concurrent reader never sees a partial document.
func (s *Store) Save(inst any) error {
	withType := false
	if rt, ok := attr.DefOf(inst); ok && rt != s.Def {
		withType = true
	}
	data, err := serialize.MarshalDocument(s.Def, inst, serialize.Options{IncludeTypeName: withType})
	if err != nil {
		return fmt.Errorf("document: serialize %s: %w", s.Path, err)
	}
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("document: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("document: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("document: rename to %s: %w", s.Path, err)
	}
	return nil
}

// Load reads the document and reconstructs an instance of the declared
// type (or the registered subtype its discriminator names).
func (s *Store) Load() (any, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	inst, err := serialize.UnmarshalDocument(s.Def, data)
	if err != nil {
		return inst, fmt.Errorf("document: load %s: %w", s.Path, err)
	}
	return inst, nil
}

// Package filemap holds the static filename translation table used when a
// documentation tree is copied into a locale directory.
//
// A Map is immutable once built. Lookups fall back to the original name, so
// a table only needs entries for files that actually get a new name (identity
// entries are allowed and common).
package filemap

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
)

//go:embed ru.yaml
var defaultTable []byte

// document is the on-disk YAML shape of a filename table.
type document struct {
	Locale string            `yaml:"locale"`
	Files  map[string]string `yaml:"files"`
}

// Map translates source filenames to localized filenames.
type Map struct {
	locale  string
	entries map[string]string
}

var loadDefault = sync.OnceValues(func() (*Map, error) {
	return Parse(defaultTable)
})

// Default returns the embedded Russian table. It is parsed once per process.
func Default() *Map {
	m, err := loadDefault()
	if err != nil {
		// The embedded table is part of the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("filemap: embedded table invalid: %v", err))
	}
	return m
}

// Parse builds a Map from a YAML document.
func Parse(data []byte) (*Map, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "filename map is not valid YAML")
	}

	entries := make(map[string]string, len(doc.Files))
	for src, dst := range doc.Files {
		if err := validateName(src); err != nil {
			return nil, err
		}
		if err := validateName(dst); err != nil {
			return nil, err
		}
		key := norm.NFC.String(src)
		if _, dup := entries[key]; dup {
			return nil, derrors.ValidationFailed("files", "duplicate source name after normalization").
				WithContext("name", src)
		}
		entries[key] = norm.NFC.String(dst)
	}

	return &Map{locale: doc.Locale, entries: entries}, nil
}

// LoadFile reads and parses a filename table from disk.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.ConfigNotFound(path, err)
		}
		return nil, derrors.ConfigInvalid(path, err)
	}
	m, err := Parse(data)
	if err != nil {
		if de, ok := derrors.As(err); ok {
			return nil, de.WithContext("path", path)
		}
		return nil, err
	}
	return m, nil
}

// FromEntries builds a Map directly from Go values.
func FromEntries(locale string, files map[string]string) (*Map, error) {
	doc, err := yaml.Marshal(document{Locale: locale, Files: files})
	if err != nil {
		return nil, derrors.InternalError("encode filename map", err)
	}
	return Parse(doc)
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return derrors.ValidationFailed("files", "filename must not be empty")
	case strings.ContainsAny(name, `/\`):
		return derrors.ValidationFailed("files", "filename must not contain a path separator").
			WithContext("name", name)
	case name == "." || name == "..":
		return derrors.ValidationFailed("files", "filename must not be a relative path element").
			WithContext("name", name)
	}
	return nil
}

// Lookup returns the localized name for name, or name itself when the table
// has no entry for it.
func (m *Map) Lookup(name string) string {
	if m == nil {
		return name
	}
	if dst, ok := m.entries[norm.NFC.String(name)]; ok {
		return dst
	}
	return name
}

// Has reports whether the table carries an entry for name.
func (m *Map) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.entries[norm.NFC.String(name)]
	return ok
}

// Locale is the locale tag declared by the table, if any.
func (m *Map) Locale() string {
	if m == nil {
		return ""
	}
	return m.locale
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the source names in sorted order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unused returns the sorted source names that do not appear in seen.
// Unused entries are informational; they are never an error.
func (m *Map) Unused(seen map[string]bool) []string {
	normalized := make(map[string]bool, len(seen))
	for name, ok := range seen {
		if ok {
			normalized[norm.NFC.String(name)] = true
		}
	}
	var out []string
	for _, k := range m.Keys() {
		if !normalized[k] {
			out = append(out, k)
		}
	}
	return out
}

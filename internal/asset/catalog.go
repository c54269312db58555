package asset

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Handle is an opaque reference to a loaded model. The simulation copies
// handles onto entities and never looks inside them.
type Handle uint32

// Invalid is the zero Handle; Resolve never returns it.
const Invalid Handle = 0

// ModelEntry is one line of the model manifest.
type ModelEntry struct {
	Name  string  `yaml:"name"`
	Path  string  `yaml:"path"`
	Glyph string  `yaml:"glyph"` // terminal stand-in for the model
	Color string  `yaml:"color"` // "#rrggbb"
	Scale float32 `yaml:"scale"`
}

type manifest struct {
	Models []ModelEntry `yaml:"models"`
}

// Catalog maps model names to handles and handles back to their entries.
type Catalog struct {
	byName  map[string]Handle
	entries []ModelEntry // index = handle - 1
}

// LoadCatalog reads a YAML model manifest.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model manifest: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog builds a catalog from manifest bytes.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse model manifest: %w", err)
	}
	c := &Catalog{
		byName:  make(map[string]Handle, len(m.Models)),
		entries: make([]ModelEntry, 0, len(m.Models)),
	}
	for _, e := range m.Models {
		if e.Name == "" {
			return nil, fmt.Errorf("model manifest: entry with path %q has no name", e.Path)
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("model manifest: duplicate model %q", e.Name)
		}
		if _, err := parseColor(e.Color); err != nil {
			return nil, fmt.Errorf("model manifest: %s: %w", e.Name, err)
		}
		if e.Scale == 0 {
			e.Scale = 1
		}
		c.entries = append(c.entries, e)
		c.byName[e.Name] = Handle(len(c.entries))
	}
	return c, nil
}

// Resolve returns the handle for a named model.
func (c *Catalog) Resolve(name string) (Handle, error) {
	h, ok := c.byName[name]
	if !ok {
		return Invalid, fmt.Errorf("unknown model %q", name)
	}
	return h, nil
}

// Entry returns the manifest entry behind h, or false for Invalid or foreign handles.
func (c *Catalog) Entry(h Handle) (ModelEntry, bool) {
	if h == Invalid || int(h) > len(c.entries) {
		return ModelEntry{}, false
	}
	return c.entries[h-1], true
}

// Count returns the number of models in the catalog.
func (c *Catalog) Count() int {
	return len(c.entries)
}

// RGB returns the entry's colour as 0xRRGGBB. Entries without a colour are white.
func (e ModelEntry) RGB() uint32 {
	c, _ := parseColor(e.Color)
	return c
}

// Rune returns the first rune of the glyph, or '?' when none is set.
func (e ModelEntry) Rune() rune {
	r, _ := utf8.DecodeRuneInString(e.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

func parseColor(s string) (uint32, error) {
	if s == "" {
		return 0xffffff, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return uint32(v), nil
}

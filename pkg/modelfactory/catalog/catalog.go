package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/modelfactory/pkg/modelfactory"
)

// Tags recognized on YAML attribute values.
const (
	TagOptional = "!optional"
	TagRequired = "!required"
	TagFrozen   = "!frozen"
	TagSequence = "!sequence"
	TagUUID     = "!uuid"
	TagNow      = "!now"
)

// DefaultFiles are the catalog files LoadDefault looks for, in order,
// relative to the directory it is given.
var DefaultFiles = []string{
	"testdata/model_factories.yaml",
	"testdata/model_factories.yml",
	"testdata/model_factories.json",
}

// ErrUnknownTag indicates a YAML value carries a local tag the loader
// does not understand.
var ErrUnknownTag = errors.New("unknown tag")

// Catalog is a parsed set of templates in document order.
type Catalog struct {
	names     []string
	templates map[string]modelfactory.Template
}

func newCatalog() *Catalog {
	return &Catalog{templates: make(map[string]modelfactory.Template)}
}

func (c *Catalog) add(name string, attrs map[string]any) {
	if _, ok := c.templates[name]; !ok {
		c.names = append(c.names, name)
	}
	c.templates[name] = modelfactory.NewTemplate(attrs)
}

// Names returns the template names. YAML catalogs keep document order;
// JSON catalogs are sorted by name.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Template returns the template parsed for name.
func (c *Catalog) Template(name string) (modelfactory.Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Apply registers every template in reg, replacing same-named templates.
func (c *Catalog) Apply(reg *modelfactory.Registry) {
	reg.Catalog(func(r *modelfactory.Registry) {
		for _, name := range c.names {
			r.RegisterTemplate(name, c.templates[name])
		}
	})
}

// FromFile loads a catalog from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog file extension: %s", ext)
	}
}

// FromJSON parses a JSON catalog: an object of template names to attribute
// objects. JSON has no tags, so every value is a Default. Templates are
// added in name order.
func FromJSON(data []byte) (*Catalog, error) {
	var m map[string]map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	c := newCatalog()
	for _, name := range sortedKeys(m) {
		c.add(name, m[name])
	}
	return c, nil
}

// Load reads the catalog at path and applies it to reg.
func Load(reg *modelfactory.Registry, path string) error {
	c, err := FromFile(path)
	if err != nil {
		return err
	}
	c.Apply(reg)
	return nil
}

// LoadDefault applies the first of DefaultFiles found under dir.
// A missing catalog is not an error; loaded reports whether one was applied.
func LoadDefault(reg *modelfactory.Registry, dir string) (loaded bool, err error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf("stat catalog file: %w", err)
		}
		if err := Load(reg, path); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Package regdata loads static regulation reference data from YAML files.
// One file per regulation; the catalog is read-only once loaded.
package regdata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veracomply/posture/internal/compliance"
	"gopkg.in/yaml.v3"
)

// Catalog holds the loaded regulations, keyed by ID.
type Catalog struct {
	regulations map[string]compliance.Regulation
}

// Load reads every *.yaml and *.yml file under dir as one regulation each.
// Files must carry a non-empty regulation ID; duplicate IDs are an error
// because lookups would otherwise be load-order dependent.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read regulations dir: %w", err)
	}

	cat := &Catalog{regulations: make(map[string]compliance.Regulation)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		reg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		if _, exists := cat.regulations[reg.ID]; exists {
			return nil, fmt.Errorf("duplicate regulation ID %q in %s", reg.ID, entry.Name())
		}
		cat.regulations[reg.ID] = reg
	}
	return cat, nil
}

func loadFile(path string) (compliance.Regulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compliance.Regulation{}, fmt.Errorf("read regulation file: %w", err)
	}
	var reg compliance.Regulation
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return compliance.Regulation{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(reg.ID) == "" {
		return compliance.Regulation{}, fmt.Errorf("regulation in %s has no id", filepath.Base(path))
	}
	if reg.Name == "" {
		reg.Name = reg.ID
	}
	return reg, nil
}

// Get returns the regulation with the given ID, or a
// *compliance.NotFoundError when it is not in the catalog.
func (c *Catalog) Get(id string) (compliance.Regulation, error) {
	reg, ok := c.regulations[id]
	if !ok {
		return compliance.Regulation{}, &compliance.NotFoundError{Kind: "regulation", ID: id}
	}
	return reg, nil
}

// All returns every loaded regulation sorted by ID.
func (c *Catalog) All() []compliance.Regulation {
	out := make([]compliance.Regulation, 0, len(c.regulations))
	for _, reg := range c.regulations {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of loaded regulations.
func (c *Catalog) Len() int {
	return len(c.regulations)
}

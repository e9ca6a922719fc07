package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only catalog document version understood.
const CurrentVersion = 1

//go:embed catalog.yaml
var defaultDocument []byte

// document is the on-disk YAML layout of a catalog.
type document struct {
	Version      int                 `yaml:"version"`
	Beans        []CoffeeBean        `yaml:"beans"`
	Grinds       []GrindLevel        `yaml:"grinds"`
	Preparations []PreparationMethod `yaml:"preparations"`
	Toppings     []Topping           `yaml:"toppings"`
}

// Catalog is the validated, read-only set of orderable items.
// Accessors hand out copies so callers cannot mutate the catalog.
type Catalog struct {
	beans        []CoffeeBean
	grinds       []GrindLevel
	preparations []PreparationMethod
	toppings     []Topping
}

// Parse decodes and validates a YAML catalog document.
// Unknown fields are rejected. All validation errors are joined together.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if doc.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported catalog version: %d (expected %d)", doc.Version, CurrentVersion)
	}

	if errs := validateDocument(&doc); len(errs) > 0 {
		return nil, fmt.Errorf("catalog has %d invalid entries: %w", len(errs), errors.Join(errs...))
	}

	return &Catalog{
		beans:        doc.Beans,
		grinds:       doc.Grinds,
		preparations: doc.Preparations,
		toppings:     doc.Toppings,
	}, nil
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// MustDefault is like Default but panics if the embedded catalog is invalid.
func MustDefault() *Catalog {
	cat, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return cat
}

// LoadOrDefault loads path, or the embedded catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Beans returns all beans in catalog order.
func (c *Catalog) Beans() []CoffeeBean {
	return slices.Clone(c.beans)
}

// Grinds returns all grind levels in catalog order.
func (c *Catalog) Grinds() []GrindLevel {
	out := make([]GrindLevel, len(c.grinds))
	for i, g := range c.grinds {
		g.BrewMethods = slices.Clone(g.BrewMethods)
		out[i] = g
	}
	return out
}

// Preparations returns all preparation methods in catalog order.
func (c *Catalog) Preparations() []PreparationMethod {
	return slices.Clone(c.preparations)
}

// Toppings returns all toppings in catalog order.
func (c *Catalog) Toppings() []Topping {
	return slices.Clone(c.toppings)
}

// Bean looks up a bean by id.
func (c *Catalog) Bean(id string) (CoffeeBean, error) {
	for _, b := range c.beans {
		if b.ID == id {
			return b, nil
		}
	}
	return CoffeeBean{}, notFound("bean", id)
}

// Grind looks up a grind level by id.
func (c *Catalog) Grind(id string) (GrindLevel, error) {
	for _, g := range c.grinds {
		if g.ID == id {
			g.BrewMethods = slices.Clone(g.BrewMethods)
			return g, nil
		}
	}
	return GrindLevel{}, notFound("grind", id)
}

// Preparation looks up a preparation method by id.
func (c *Catalog) Preparation(id string) (PreparationMethod, error) {
	for _, p := range c.preparations {
		if p.ID == id {
			return p, nil
		}
	}
	return PreparationMethod{}, notFound("preparation", id)
}

// Topping looks up a topping by id.
func (c *Catalog) Topping(id string) (Topping, error) {
	for _, t := range c.toppings {
		if t.ID == id {
			return t, nil
		}
	}
	return Topping{}, notFound("topping", id)
}

// ToppingGroups groups toppings by category. Groups appear in the order
// their category is first seen; toppings keep catalog order within a group.
func (c *Catalog) ToppingGroups() []ToppingGroup {
	var groups []ToppingGroup
	index := make(map[Category]int)

	for _, t := range c.toppings {
		i, ok := index[t.Category]
		if !ok {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, ToppingGroup{Category: t.Category})
		}
		groups[i].Toppings = append(groups[i].Toppings, t)
	}

	return groups
}

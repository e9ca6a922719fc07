package order

import (
	"fmt"
	"slices"

	"github.com/muurk/cupcraft/internal/catalog"
)

// Size is the cup size of an order.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

var sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize parses "small", "medium" or "large".
func ParseSize(s string) (Size, error) {
	for _, size := range sizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q (want small, medium or large)", s)
}

// Next returns the following size, wrapping from large back to small.
func (s Size) Next() Size {
	i := slices.Index(sizes, s)
	return sizes[(i+1)%len(sizes)]
}

// Temperature is how the drink is served.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureIced Temperature = "iced"
)

// ParseTemperature parses "hot" or "iced".
func ParseTemperature(s string) (Temperature, error) {
	switch Temperature(s) {
	case TemperatureHot, TemperatureIced:
		return Temperature(s), nil
	}
	return "", fmt.Errorf("unknown temperature %q (want hot or iced)", s)
}

// Next toggles between hot and iced.
func (t Temperature) Next() Temperature {
	if t == TemperatureHot {
		return TemperatureIced
	}
	return TemperatureHot
}

// Selection is the in-progress order of one wizard session.
//
// It is a value type: Apply and ToggleTopping return a new Selection and
// never modify the receiver or share its topping slice.
type Selection struct {
	Bean        *catalog.CoffeeBean
	Grind       *catalog.GrindLevel
	Preparation *catalog.PreparationMethod
	Toppings    []catalog.Topping // Unique by id, in order of addition
	Size        Size
	Temperature Temperature
}

// NewSelection returns an empty selection with the given serving defaults.
func NewSelection(size Size, temp Temperature) Selection {
	if size == "" {
		size = SizeMedium
	}
	if temp == "" {
		temp = TemperatureHot
	}
	return Selection{Size: size, Temperature: temp}
}

// Change overwrites one field of a Selection.
type Change func(*Selection)

// WithBean sets the bean.
func WithBean(b catalog.CoffeeBean) Change {
	return func(s *Selection) { s.Bean = &b }
}

// WithGrind sets the grind level.
func WithGrind(g catalog.GrindLevel) Change {
	return func(s *Selection) { s.Grind = &g }
}

// WithPreparation sets the preparation method.
func WithPreparation(p catalog.PreparationMethod) Change {
	return func(s *Selection) { s.Preparation = &p }
}

// WithToppings replaces the topping list. Later duplicates of an id are dropped.
func WithToppings(toppings []catalog.Topping) Change {
	return func(s *Selection) {
		out := make([]catalog.Topping, 0, len(toppings))
		for _, t := range toppings {
			if !containsTopping(out, t.ID) {
				out = append(out, t)
			}
		}
		s.Toppings = out
	}
}

// WithSize sets the cup size.
func WithSize(size Size) Change {
	return func(s *Selection) { s.Size = size }
}

// WithTemperature sets the serving temperature.
func WithTemperature(t Temperature) Change {
	return func(s *Selection) { s.Temperature = t }
}

// Apply merges changes into a copy of s. Fields not named by a change keep
// their current value.
func (s Selection) Apply(changes ...Change) Selection {
	next := s
	next.Toppings = slices.Clone(s.Toppings)
	for _, change := range changes {
		change(&next)
	}
	return next
}

// ToggleTopping removes t if a topping with its id is selected, and appends
// it otherwise. The relative order of the other toppings is preserved.
func (s Selection) ToggleTopping(t catalog.Topping) Selection {
	next := s
	if containsTopping(s.Toppings, t.ID) {
		next.Toppings = slices.DeleteFunc(slices.Clone(s.Toppings), func(have catalog.Topping) bool {
			return have.ID == t.ID
		})
		return next
	}
	next.Toppings = append(slices.Clone(s.Toppings), t)
	return next
}

// HasTopping reports whether a topping with id is selected.
func (s Selection) HasTopping(id string) bool {
	return containsTopping(s.Toppings, id)
}

// ToppingIDs returns the ids of the selected toppings in order.
func (s Selection) ToppingIDs() []string {
	ids := make([]string, len(s.Toppings))
	for i, t := range s.Toppings {
		ids[i] = t.ID
	}
	return ids
}

// FirstTopping returns the first selected topping in category c.
func (s Selection) FirstTopping(c catalog.Category) (catalog.Topping, bool) {
	for _, t := range s.Toppings {
		if t.Category == c {
			return t, true
		}
	}
	return catalog.Topping{}, false
}

// IsComplete reports whether bean, grind and preparation are all chosen.
func (s Selection) IsComplete() bool {
	return s.Bean != nil && s.Grind != nil && s.Preparation != nil
}

func containsTopping(toppings []catalog.Topping, id string) bool {
	return slices.ContainsFunc(toppings, func(t catalog.Topping) bool { return t.ID == id })
}

package catalog

import (
	"fmt"
	"math"
	"regexp"
)

// colorPattern matches "#RRGGBB" display colors.
var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateBean validates a single bean entry.
// Strength must be within 1-5.
func ValidateBean(b CoffeeBean) []error {
	var errs []error

	if b.ID == "" {
		errs = append(errs, NewValidationError("bean", b.Name, "id cannot be empty"))
	}
	if b.Name == "" {
		errs = append(errs, NewValidationError("bean", b.ID, "name cannot be empty"))
	}
	if b.Strength < 1 || b.Strength > 5 {
		errs = append(errs, NewValidationError("bean", b.ID, fmt.Sprintf("strength must be 1-5, got %d", b.Strength)))
	}
	if b.Color != "" && !colorPattern.MatchString(b.Color) {
		errs = append(errs, NewValidationError("bean", b.ID, fmt.Sprintf("color must be #RRGGBB, got %q", b.Color)))
	}

	return errs
}

// ValidateGrind validates a single grind level entry.
func ValidateGrind(g GrindLevel) []error {
	var errs []error

	if g.ID == "" {
		errs = append(errs, NewValidationError("grind", g.Name, "id cannot be empty"))
	}
	if g.Name == "" {
		errs = append(errs, NewValidationError("grind", g.ID, "name cannot be empty"))
	}
	if !g.ParticleSize.Valid() {
		errs = append(errs, NewValidationError("grind", g.ID, fmt.Sprintf("unknown particle size %q", g.ParticleSize)))
	}

	return errs
}

// ValidatePreparation validates a single preparation method entry.
// Brew time must be positive.
func ValidatePreparation(p PreparationMethod) []error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, NewValidationError("preparation", p.Name, "id cannot be empty"))
	}
	if p.Name == "" {
		errs = append(errs, NewValidationError("preparation", p.ID, "name cannot be empty"))
	}
	if p.BrewTime <= 0 {
		errs = append(errs, NewValidationError("preparation", p.ID, fmt.Sprintf("brew time must be positive, got %d", p.BrewTime)))
	}

	return errs
}

// ValidateTopping validates a single topping entry.
// Price must be a finite, non-negative number.
func ValidateTopping(t Topping) []error {
	var errs []error

	if t.ID == "" {
		errs = append(errs, NewValidationError("topping", t.Name, "id cannot be empty"))
	}
	if t.Name == "" {
		errs = append(errs, NewValidationError("topping", t.ID, "name cannot be empty"))
	}
	if !t.Category.Valid() {
		errs = append(errs, NewValidationError("topping", t.ID, fmt.Sprintf("unknown category %q", t.Category)))
	}
	switch {
	case math.IsNaN(t.Price) || math.IsInf(t.Price, 0):
		errs = append(errs, NewValidationError("topping", t.ID, fmt.Sprintf("price must be a finite number, got %v", t.Price)))
	case t.Price < 0:
		errs = append(errs, NewValidationError("topping", t.ID, fmt.Sprintf("price cannot be negative, got %.2f", t.Price)))
	}
	if t.Color != "" && !colorPattern.MatchString(t.Color) {
		errs = append(errs, NewValidationError("topping", t.ID, fmt.Sprintf("color must be #RRGGBB, got %q", t.Color)))
	}

	return errs
}

// validateDocument checks every entry plus id uniqueness within each kind.
// Returns all errors found (empty if valid).
func validateDocument(doc *document) []error {
	var errs []error

	beanIDs := make(map[string]bool)
	for _, b := range doc.Beans {
		errs = append(errs, ValidateBean(b)...)
		errs = appendDuplicate(errs, beanIDs, "bean", b.ID)
	}

	grindIDs := make(map[string]bool)
	for _, g := range doc.Grinds {
		errs = append(errs, ValidateGrind(g)...)
		errs = appendDuplicate(errs, grindIDs, "grind", g.ID)
	}

	prepIDs := make(map[string]bool)
	for _, p := range doc.Preparations {
		errs = append(errs, ValidatePreparation(p)...)
		errs = appendDuplicate(errs, prepIDs, "preparation", p.ID)
	}

	toppingIDs := make(map[string]bool)
	for _, t := range doc.Toppings {
		errs = append(errs, ValidateTopping(t)...)
		errs = appendDuplicate(errs, toppingIDs, "topping", t.ID)
	}

	if len(doc.Beans) == 0 {
		errs = append(errs, NewValidationError("catalog", "", "at least one bean is required"))
	}
	if len(doc.Grinds) == 0 {
		errs = append(errs, NewValidationError("catalog", "", "at least one grind level is required"))
	}
	if len(doc.Preparations) == 0 {
		errs = append(errs, NewValidationError("catalog", "", "at least one preparation method is required"))
	}

	return errs
}

func appendDuplicate(errs []error, seen map[string]bool, kind, id string) []error {
	if id == "" {
		return errs
	}
	if seen[id] {
		return append(errs, NewValidationError(kind, id, "duplicate id"))
	}
	seen[id] = true
	return errs
}

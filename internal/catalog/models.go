package catalog

import (
	"fmt"
	"strings"
)

// ParticleSize is the grind coarseness category of a GrindLevel.
type ParticleSize string

const (
	ParticleExtraCoarse  ParticleSize = "extra-coarse"
	ParticleCoarse       ParticleSize = "coarse"
	ParticleMediumCoarse ParticleSize = "medium-coarse"
	ParticleMedium       ParticleSize = "medium"
	ParticleMediumFine   ParticleSize = "medium-fine"
	ParticleFine         ParticleSize = "fine"
	ParticleExtraFine    ParticleSize = "extra-fine"
)

// ParticleSizes lists every particle size from coarsest to finest.
var ParticleSizes = []ParticleSize{
	ParticleExtraCoarse,
	ParticleCoarse,
	ParticleMediumCoarse,
	ParticleMedium,
	ParticleMediumFine,
	ParticleFine,
	ParticleExtraFine,
}

// Valid reports whether p is one of the seven known particle sizes.
func (p ParticleSize) Valid() bool {
	for _, known := range ParticleSizes {
		if p == known {
			return true
		}
	}
	return false
}

// Category groups toppings on the toppings screen.
type Category string

const (
	CategoryMilk      Category = "milk"
	CategorySweetener Category = "sweetener"
	CategoryFlavor    Category = "flavor"
	CategoryExtra     Category = "extra"
)

// Categories lists the topping categories in their canonical order.
var Categories = []Category{CategoryMilk, CategorySweetener, CategoryFlavor, CategoryExtra}

// Valid reports whether c is a known topping category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the category name with its first letter upper-cased ("Milk").
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// CoffeeBean is an orderable bean.
type CoffeeBean struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Origin   string `yaml:"origin" json:"origin"`
	Flavor   string `yaml:"flavor" json:"flavor"`
	Strength int    `yaml:"strength" json:"strength"` // 1-5
	Color    string `yaml:"color" json:"color"`       // Display color, "#RRGGBB"
}

// GrindLevel is an orderable grind setting.
type GrindLevel struct {
	ID           string       `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	Description  string       `yaml:"description" json:"description"`
	ParticleSize ParticleSize `yaml:"particle_size" json:"particle_size"`
	BrewMethods  []string     `yaml:"brew_methods" json:"brew_methods"`
}

// PreparationMethod is an orderable brewing method.
type PreparationMethod struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	BrewTime    int    `yaml:"brew_time" json:"brew_time"`     // Seconds, > 0
	Temperature int    `yaml:"temperature" json:"temperature"` // Celsius
	Icon        string `yaml:"icon" json:"icon"`
}

// Details returns the "180s • 92°C" line shown under a method.
func (p PreparationMethod) Details() string {
	return fmt.Sprintf("%ds • %d°C", p.BrewTime, p.Temperature)
}

// Topping is an optional addition with its own price.
type Topping struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category Category `yaml:"category" json:"category"`
	Price    float64  `yaml:"price" json:"price"` // Dollars, >= 0
	Color    string   `yaml:"color" json:"color"`
	Icon     string   `yaml:"icon" json:"icon"`
}

// ToppingGroup is one category's worth of toppings, in catalog order.
type ToppingGroup struct {
	Category Category
	Toppings []Topping
}

// Package game implements the conveyor sorting rules: spawning items,
// resolving sort attempts, missed items, power-ups and score/lives
// bookkeeping. It knows nothing about terminals, sound devices or storage;
// those are reached through the Renderer and AudioPlayer collaborators.
package game

import "fmt"

// Category is the kind of an item and of the bin that accepts it.
type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryTech      Category = "tech"
	CategoryDefective Category = "defective"
)

// Categories lists every category in bin order.
var Categories = []Category{CategoryFruit, CategoryTech, CategoryDefective}

// ParseCategory converts a bin or item name into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryFruit, CategoryTech, CategoryDefective:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string { return string(c) }

// Variant is a named item within a category.
type Variant struct {
	Name  string
	Glyph string
}

var catalog = map[Category][]Variant{
	CategoryFruit: {
		{Name: "apple", Glyph: "🍎"},
		{Name: "banana", Glyph: "🍌"},
		{Name: "orange", Glyph: "🍊"},
		{Name: "strawberry", Glyph: "🍓"},
		{Name: "grapes", Glyph: "🍇"},
	},
	CategoryTech: {
		{Name: "phone", Glyph: "📱"},
		{Name: "laptop", Glyph: "💻"},
		{Name: "headphones", Glyph: "🎧"},
		{Name: "smartwatch", Glyph: "⌚"},
		{Name: "mouse", Glyph: "🖱️"},
	},
	CategoryDefective: {
		{Name: "defective apple", Glyph: "🍎⚠️"},
		{Name: "defective phone", Glyph: "📱⚠️"},
		{Name: "defective banana", Glyph: "🍌⚠️"},
		{Name: "defective laptop", Glyph: "💻⚠️"},
	},
}

// Variants returns the fixed catalog of a category.
func Variants(c Category) []Variant {
	return catalog[c]
}

// Category draw thresholds over a uniform value in [0,1).
const (
	defectiveThreshold = 0.10
	fruitThreshold     = 0.55
)

// categoryFor maps a uniform draw in [0,1) to a category:
// defective [0,0.10), fruit [0.10,0.55), tech [0.55,1).
func categoryFor(r float64) Category {
	switch {
	case r < defectiveThreshold:
		return CategoryDefective
	case r < fruitThreshold:
		return CategoryFruit
	default:
		return CategoryTech
	}
}

package domain

import "math"

// SizeCategory buckets deals by value.
type SizeCategory string

const (
	SizeSmall      SizeCategory = "Small"
	SizeMedium     SizeCategory = "Medium"
	SizeLarge      SizeCategory = "Large"
	SizeEnterprise SizeCategory = "Enterprise"
)

// SizeCategories lists the buckets from smallest to largest.
var SizeCategories = []SizeCategory{SizeSmall, SizeMedium, SizeLarge, SizeEnterprise}

// SizeBounds is an inclusive value range.
type SizeBounds struct {
	Min float64
	Max float64
}

// ParseSizeCategory returns ok=false for names outside the fixed table.
func ParseSizeCategory(name string) (SizeCategory, bool) {
	c := SizeCategory(name)
	if _, ok := c.Bounds(); !ok {
		return "", false
	}
	return c, true
}

// Bounds returns the inclusive value range of the category.
func (c SizeCategory) Bounds() (SizeBounds, bool) {
	switch c {
	case SizeSmall:
		return SizeBounds{Min: 0, Max: 10000}, true
	case SizeMedium:
		return SizeBounds{Min: 10001, Max: 50000}, true
	case SizeLarge:
		return SizeBounds{Min: 50001, Max: 200000}, true
	case SizeEnterprise:
		return SizeBounds{Min: 200001, Max: math.Inf(1)}, true
	default:
		return SizeBounds{}, false
	}
}

// Contains reports whether value falls inside the category.
func (c SizeCategory) Contains(value float64) bool {
	b, ok := c.Bounds()
	if !ok {
		return false
	}
	return value >= b.Min && value <= b.Max
}

// Package catalog holds the public, read-only product catalog and the shop query over it.
package catalog

import "slices"

// Wildcard is the filter value meaning "no constraint on this dimension".
const Wildcard = "all"

// Product is a catalog entry. Catalog products are immutable once loaded.
type Product struct {
	ID       string   `json:"id"       yaml:"id"`
	Name     string   `json:"name"     yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Color    string   `json:"color"    yaml:"color"`
	Sizes    []string `json:"sizes"    yaml:"sizes"`
	// Price is expressed in whole currency units.
	Price int64 `json:"price" yaml:"price"`
	// PriceFormatted is entered together with Price and is never recomputed.
	PriceFormatted string   `json:"priceFormatted" yaml:"priceFormatted"`
	Description    string   `json:"description"    yaml:"description"`
	Images         []string `json:"images"         yaml:"images"`
}

// PrimaryImage returns the image at position 0, or "" when there is none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) clone() Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Images = slices.Clone(p.Images)
	return p
}

// FilterOption is one selectable value of a filter dimension.
type FilterOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Options lists the selectable values of every filter dimension.
// Each list conventionally starts with the Wildcard option.
type Options struct {
	Categories   []FilterOption `json:"categories"   yaml:"categories"`
	Colors       []FilterOption `json:"colors"       yaml:"colors"`
	Sizes        []FilterOption `json:"sizes"        yaml:"sizes"`
	PriceBuckets []FilterOption `json:"priceBuckets" yaml:"priceBuckets"`
}

func (o Options) clone() Options {
	return Options{
		Categories:   slices.Clone(o.Categories),
		Colors:       slices.Clone(o.Colors),
		Sizes:        slices.Clone(o.Sizes),
		PriceBuckets: slices.Clone(o.PriceBuckets),
	}
}

func hasValue(opts []FilterOption, value string) bool {
	return slices.ContainsFunc(opts, func(o FilterOption) bool { return o.Value == value })
}

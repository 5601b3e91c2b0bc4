// Package cms is the admin-managed product collection, mirrored into a blob store.
package cms

import (
	"slices"
	"strings"
)

// Product is a record managed from the admin panel.
// Price is free-form text as typed by the editor.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	Description  string   `json:"description"`
	Sizes        []string `json:"sizes"`
	Images       []string `json:"images"`
	IsBestseller bool     `json:"isBestseller"`
}

func (p Product) clone() Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Images = slices.Clone(p.Images)
	return p
}

// Draft is the uncommitted state of the admin form. It has no identity.
type Draft struct {
	Name         string   `json:"name"         validate:"required"`
	Category     string   `json:"category"     validate:"required"`
	Price        string   `json:"price"        validate:"required"`
	Description  string   `json:"description"`
	Sizes        []string `json:"sizes"`
	Images       []string `json:"images"       validate:"min=1,dive,required"`
	IsBestseller bool     `json:"isBestseller"`
}

// DraftOf returns an editable draft holding p's values.
func DraftOf(p Product) Draft {
	return Draft{
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		Description:  p.Description,
		Sizes:        slices.Clone(p.Sizes),
		Images:       slices.Clone(p.Images),
		IsBestseller: p.IsBestseller,
	}
}

func (d Draft) apply(p *Product) {
	p.Name = d.Name
	p.Category = d.Category
	p.Price = d.Price
	p.Description = d.Description
	p.Sizes = slices.Clone(d.Sizes)
	p.Images = slices.Clone(d.Images)
	p.IsBestseller = d.IsBestseller
}

// ToggleSize appends size when absent and removes it when present.
func (d *Draft) ToggleSize(size string) {
	if i := slices.Index(d.Sizes, size); i >= 0 {
		d.Sizes = slices.Delete(slices.Clone(d.Sizes), i, i+1)
		return
	}
	d.Sizes = append(slices.Clone(d.Sizes), size)
}

// AddImage appends the trimmed url. Blank urls are ignored and reported with false.
func (d *Draft) AddImage(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	d.Images = append(slices.Clone(d.Images), url)
	return true
}

// RemoveImage drops the image at i. Out-of-range indices are ignored.
func (d *Draft) RemoveImage(i int) {
	if i < 0 || i >= len(d.Images) {
		return
	}
	d.Images = slices.Delete(slices.Clone(d.Images), i, i+1)
}

func (d *Draft) MoveImage(from, to int) {
	d.Images = MoveElement(d.Images, from, to)
}

func (d *Draft) MoveImageUp(i int) {
	d.Images = MoveUp(d.Images, i)
}

func (d *Draft) MoveImageDown(i int) {
	d.Images = MoveDown(d.Images, i)
}

var availableSizes = []string{"XS", "S", "M", "L", "XL", "34", "36", "38", "40", "42", "ONE SIZE"}

// AvailableSizes is the size palette offered by the admin form.
func AvailableSizes() []string {
	return slices.Clone(availableSizes)
}

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// Catalog is the loaded, immutable shop dataset.
type Catalog struct {
	products []Product
	byID     map[string]int
	options  Options
	locale   language.Tag
}

type document struct {
	Options  `yaml:",inline"`
	Products []Product `yaml:"products"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// LoadFile reads a YAML catalog from path. An empty path selects the embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(doc.Products, doc.Options)
}

// New validates products against opts and builds a Catalog holding its own copies of both.
func New(products []Product, opts Options) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		options:  opts.clone(),
		locale:   DefaultLocale,
	}
	for _, b := range opts.PriceBuckets {
		if _, err := ParsePriceBucket(b.Value); err != nil {
			return nil, fmt.Errorf("invalid price bucket option: %w", err)
		}
	}
	var errs []error
	for i, p := range products {
		if err := validateProduct(p, opts); err != nil {
			errs = append(errs, fmt.Errorf("product #%d (%q): %w", i, p.ID, err))
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product #%d: duplicate id %q", i, p.ID))
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// WithLocale returns a copy of c that orders names using the given language.
func (c *Catalog) WithLocale(tag language.Tag) *Catalog {
	cp := *c
	cp.locale = tag
	return &cp
}

func validateProduct(p Product, opts Options) error {
	switch {
	case p.ID == "":
		return errors.New("id is required")
	case p.Name == "":
		return errors.New("name is required")
	case p.Category == "" || p.Category == Wildcard:
		return errors.New("category is required")
	case len(opts.Categories) > 0 && !hasValue(opts.Categories, p.Category):
		return fmt.Errorf("category %q is not a known option", p.Category)
	case len(p.Sizes) == 0:
		return errors.New("at least one size is required")
	case p.Price < 0:
		return errors.New("price must not be negative")
	case len(p.Images) == 0:
		return errors.New("at least one image is required")
	}
	return nil
}

// Products returns a copy of every product in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) FindByID(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", catalogerrors.ErrProductNotFound, id)
	}
	return c.products[i].clone(), nil
}

// Query runs the shop filter over the catalog. Criteria without a locale use the catalog locale.
func (c *Catalog) Query(cr Criteria) []Product {
	if cr.Locale == language.Und {
		cr.Locale = c.locale
	}
	result := Query(c.products, cr)
	for i := range result {
		result[i] = result[i].clone()
	}
	return result
}

func (c *Catalog) FilterOptions() Options {
	return c.options.clone()
}

// ParsePriceBucket resolves a bucket name offered by this catalog.
func (c *Catalog) ParsePriceBucket(name string) (PriceBucket, error) {
	if name != "" && name != Wildcard && len(c.options.PriceBuckets) > 0 && !hasValue(c.options.PriceBuckets, name) {
		return PriceBucket{}, fmt.Errorf("%w: %q", catalogerrors.ErrUnknownPriceBucket, name)
	}
	return ParsePriceBucket(name)
}

package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale drives name ordering when Criteria.Locale is not set.
var DefaultLocale = language.Polish

// SortOrder selects the ordering of a query result.
type SortOrder string

const (
	// SortNewest keeps catalog order.
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	// SortName orders by name using locale collation.
	SortName SortOrder = "name"
)

// ParseSortOrder maps a request value to a SortOrder. An empty value means SortNewest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc, SortPriceDesc, SortName:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("%w: %q", catalogerrors.ErrUnknownSortOrder, s)
	}
}

// PriceMatcher decides whether a price passes the price filter.
type PriceMatcher interface {
	MatchPrice(price int64) bool
}

// PriceRange is a continuous, inclusive [Min, Max] price filter.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// DefaultPriceRange covers the whole catalog price domain.
var DefaultPriceRange = PriceRange{Min: 0, Max: 3000}

func (r PriceRange) MatchPrice(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// PriceBucket is a named discrete price interval such as "1000-1500" or "2000+".
// A bucket excludes its lower bound unless that bound is 0 and includes its upper bound.
type PriceBucket struct {
	Name      string
	Min       int64
	Max       int64
	Unbounded bool
	any       bool
}

// ParsePriceBucket parses "all", "<min>-<max>" or "<min>+". An empty name means "all".
func ParsePriceBucket(name string) (PriceBucket, error) {
	if name == "" || name == Wildcard {
		return PriceBucket{Name: Wildcard, any: true}, nil
	}
	if lo, ok := strings.CutSuffix(name, "+"); ok {
		minPrice, err := strconv.ParseInt(lo, 10, 64)
		if err != nil || minPrice < 0 {
			return PriceBucket{}, fmt.Errorf("%w: %q", catalogerrors.ErrUnknownPriceBucket, name)
		}
		return PriceBucket{Name: name, Min: minPrice, Unbounded: true}, nil
	}
	lo, hi, ok := strings.Cut(name, "-")
	if !ok {
		return PriceBucket{}, fmt.Errorf("%w: %q", catalogerrors.ErrUnknownPriceBucket, name)
	}
	minPrice, errMin := strconv.ParseInt(lo, 10, 64)
	maxPrice, errMax := strconv.ParseInt(hi, 10, 64)
	if errMin != nil || errMax != nil || minPrice < 0 || maxPrice < minPrice {
		return PriceBucket{}, fmt.Errorf("%w: %q", catalogerrors.ErrUnknownPriceBucket, name)
	}
	return PriceBucket{Name: name, Min: minPrice, Max: maxPrice}, nil
}

func (b PriceBucket) MatchPrice(price int64) bool {
	if b.any {
		return true
	}
	if b.Min == 0 {
		if price < 0 {
			return false
		}
	} else if price <= b.Min {
		return false
	}
	return b.Unbounded || price <= b.Max
}

// Criteria is the set of shop filters. Zero values and Wildcard disable a dimension.
type Criteria struct {
	Category string
	Color    string
	Size     string
	// Search is matched case-insensitively against name and category.
	Search string
	// Price is either a PriceRange or a PriceBucket. Nil matches every price.
	Price  PriceMatcher
	SortBy SortOrder
	Locale language.Tag
}

// Query returns the products matching every active filter of c, ordered by c.SortBy.
// The result is never nil. The input slice is not modified.
func Query(products []Product, c Criteria) []Product {
	search := strings.ToLower(c.Search)
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if c.matches(p, search) {
			result = append(result, p)
		}
	}
	sortProducts(result, c.SortBy, c.Locale)
	return result
}

func (c Criteria) matches(p Product, search string) bool {
	return matchesExact(c.Category, p.Category) &&
		matchesExact(c.Color, p.Color) &&
		matchesSize(c.Size, p.Sizes) &&
		matchesPrice(c.Price, p.Price) &&
		matchesSearch(search, p)
}

func isWildcard(v string) bool {
	return v == "" || v == Wildcard
}

func matchesExact(selected, actual string) bool {
	return isWildcard(selected) || selected == actual
}

func matchesSize(selected string, sizes []string) bool {
	return isWildcard(selected) || slices.Contains(sizes, selected)
}

func matchesPrice(m PriceMatcher, price int64) bool {
	return m == nil || m.MatchPrice(price)
}

func matchesSearch(lowered string, p Product) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Category), lowered)
}

func sortProducts(products []Product, order SortOrder, locale language.Tag) {
	switch order {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortName:
		if locale == language.Und {
			locale = DefaultLocale
		}
		// collate.Collator is not safe for concurrent use, one per call.
		col := collate.New(locale)
		slices.SortStableFunc(products, func(a, b Product) int { return col.CompareString(a.Name, b.Name) })
	}
}

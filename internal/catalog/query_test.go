package catalog

import (
	"slices"
	"strings"
	"testing"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func fixture() []Product {
	return []Product{
		{ID: "1", Name: "Kaszmirowy Sweter Essential", Category: "swetry", Color: "kremowy", Sizes: []string{"XS", "S", "M", "L"}, Price: 1890},
		{ID: "2", Name: "Jedwabna Bluzka Atelier", Category: "bluzki", Color: "biały", Sizes: []string{"XS", "S", "M"}, Price: 1290},
		{ID: "3", Name: "Wełniane Spodnie Tailored", Category: "spodnie", Color: "czarny", Sizes: []string{"34", "36", "38"}, Price: 1590},
		{ID: "4", Name: "Oversized Blazer Cream", Category: "marynarki", Color: "kremowy", Sizes: []string{"S", "M", "L"}, Price: 2490},
		{ID: "5", Name: "Skórzana Torebka Minimal", Category: "akcesoria", Color: "czarny", Sizes: []string{"ONE SIZE"}, Price: 2890},
		{ID: "6", Name: "Wełniany Szal Heritage", Category: "akcesoria", Color: "kremowy", Sizes: []string{"ONE SIZE"}, Price: 690},
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func mustBucket(t *testing.T, name string) PriceBucket {
	t.Helper()
	b, err := ParsePriceBucket(name)
	require.NoError(t, err)
	return b
}

func TestQuery_Filters(t *testing.T) {
	testCases := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{name: "no filters", criteria: Criteria{}, expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "wildcards", criteria: Criteria{Category: Wildcard, Color: Wildcard, Size: Wildcard, Price: mustBucket(t, Wildcard)}, expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "category", criteria: Criteria{Category: "akcesoria"}, expected: []string{"5", "6"}},
		{name: "category and range", criteria: Criteria{Category: "akcesoria", Price: PriceRange{Min: 0, Max: 1000}}, expected: []string{"6"}},
		{name: "color", criteria: Criteria{Color: "kremowy"}, expected: []string{"1", "4", "6"}},
		{name: "size anywhere in list", criteria: Criteria{Size: "L"}, expected: []string{"1", "4"}},
		{name: "search by name is case-insensitive", criteria: Criteria{Search: "WEŁ"}, expected: []string{"3", "6"}},
		{name: "search by category", criteria: Criteria{Search: "marynar"}, expected: []string{"4"}},
		{name: "default range keeps everything", criteria: Criteria{Price: DefaultPriceRange}, expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "range bounds are inclusive", criteria: Criteria{Price: PriceRange{Min: 1290, Max: 1890}}, expected: []string{"1", "2", "3"}},
		{name: "bucket 0-1000", criteria: Criteria{Price: mustBucket(t, "0-1000")}, expected: []string{"6"}},
		{name: "bucket 1500-2000", criteria: Criteria{Price: mustBucket(t, "1500-2000")}, expected: []string{"1", "3"}},
		{name: "bucket 2000+", criteria: Criteria{Price: mustBucket(t, "2000+")}, expected: []string{"4", "5"}},
		{name: "conjunction", criteria: Criteria{Color: "kremowy", Size: "S", Search: "blazer"}, expected: []string{"4"}},
		{name: "nothing matches", criteria: Criteria{Category: "swetry", Color: "czarny"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			result := Query(fixture(), tc.criteria)
			// then
			require.NotNil(t, result)
			assert.Equal(t, tc.expected, ids(result))
		})
	}
}

func TestQuery_Conjunction(t *testing.T) {
	// given
	products := fixture()
	categories := []string{Wildcard, "akcesoria", "swetry", "nope"}
	colors := []string{Wildcard, "kremowy", "czarny"}
	sizes := []string{Wildcard, "S", "ONE SIZE"}
	searches := []string{"", "wEł", "a"}
	prices := []PriceMatcher{nil, PriceRange{Min: 1000, Max: 2500}, mustBucket(t, "0-1000")}

	for _, category := range categories {
		for _, color := range colors {
			for _, size := range sizes {
				for _, search := range searches {
					for _, price := range prices {
						c := Criteria{Category: category, Color: color, Size: size, Search: search, Price: price}
						// when
						result := Query(products, c)
						// then
						for _, p := range products {
							expected := (category == Wildcard || p.Category == category) &&
								(color == Wildcard || p.Color == color) &&
								(size == Wildcard || slices.Contains(p.Sizes, size)) &&
								(price == nil || price.MatchPrice(p.Price)) &&
								(search == "" || containsFold(p.Name, search) || containsFold(p.Category, search))
							assert.Equal(t, expected, slices.ContainsFunc(result, func(r Product) bool { return r.ID == p.ID }),
								"product %s with %+v", p.ID, c)
						}
					}
				}
			}
		}
	}
}

func TestQuery_DoesNotModifyInput(t *testing.T) {
	// given
	products := fixture()
	// when
	_ = Query(products, Criteria{SortBy: SortPriceDesc})
	// then
	assert.Equal(t, fixture(), products)
}

func TestQuery_EmptyInput(t *testing.T) {
	// when
	result := Query(nil, Criteria{SortBy: SortName})
	// then
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestQuery_Sort(t *testing.T) {
	testCases := []struct {
		name     string
		order    SortOrder
		expected []string
	}{
		{name: "newest keeps input order", order: SortNewest, expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "empty order keeps input order", order: "", expected: []string{"1", "2", "3", "4", "5", "6"}},
		{name: "price ascending", order: SortPriceAsc, expected: []string{"6", "2", "3", "1", "4", "5"}},
		{name: "price descending", order: SortPriceDesc, expected: []string{"5", "4", "1", "3", "2", "6"}},
		{name: "name", order: SortName, expected: []string{"2", "1", "4", "5", "3", "6"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			result := Query(fixture(), Criteria{SortBy: tc.order})
			// then
			assert.Equal(t, tc.expected, ids(result))
		})
	}
}

func TestQuery_SortIsStable(t *testing.T) {
	// given
	products := []Product{
		{ID: "a", Name: "Same", Price: 100},
		{ID: "b", Name: "Same", Price: 50},
		{ID: "c", Name: "Same", Price: 100},
		{ID: "d", Name: "Same", Price: 50},
	}
	// when
	asc := Query(products, Criteria{SortBy: SortPriceAsc})
	desc := Query(products, Criteria{SortBy: SortPriceDesc})
	byName := Query(products, Criteria{SortBy: SortName})
	// then
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(asc))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(desc))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(byName))
}

func TestQuery_SortByNameUsesCollation(t *testing.T) {
	// given
	products := []Product{
		{ID: "m", Name: "Mapa"},
		{ID: "ł", Name: "Łódź"},
		{ID: "l", Name: "Lato"},
	}
	// when
	result := Query(products, Criteria{SortBy: SortName, Locale: language.Polish})
	// then
	assert.Equal(t, []string{"l", "ł", "m"}, ids(result))
}

func TestParseSortOrder(t *testing.T) {
	testCases := []struct {
		input    string
		expected SortOrder
		err      error
	}{
		{input: "", expected: SortNewest},
		{input: "newest", expected: SortNewest},
		{input: "price-asc", expected: SortPriceAsc},
		{input: "price-desc", expected: SortPriceDesc},
		{input: "name", expected: SortName},
		{input: "popular", err: catalogerrors.ErrUnknownSortOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			// when
			order, err := ParseSortOrder(tc.input)
			// then
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, order)
		})
	}
}

func TestPriceBucket_MatchPrice(t *testing.T) {
	testCases := []struct {
		bucket string
		price  int64
		match  bool
	}{
		{bucket: "all", price: 0, match: true},
		{bucket: "0-1000", price: 0, match: true},
		{bucket: "0-1000", price: 1000, match: true},
		{bucket: "0-1000", price: 1001, match: false},
		{bucket: "1000-1500", price: 1000, match: false},
		{bucket: "1000-1500", price: 1001, match: true},
		{bucket: "1000-1500", price: 1500, match: true},
		{bucket: "1500-2000", price: 1500, match: false},
		{bucket: "1500-2000", price: 2000, match: true},
		{bucket: "2000+", price: 2000, match: false},
		{bucket: "2000+", price: 2001, match: true},
		{bucket: "2000+", price: 1_000_000, match: true},
	}

	for _, tc := range testCases {
		t.Run(tc.bucket, func(t *testing.T) {
			// given
			b := mustBucket(t, tc.bucket)
			// when
			match := b.MatchPrice(tc.price)
			// then
			assert.Equal(t, tc.match, match, "price %d", tc.price)
		})
	}
}

func TestParsePriceBucket_Rejects(t *testing.T) {
	for _, name := range []string{"cheap", "1000", "-5", "200-100", "x+", "a-b"} {
		t.Run(name, func(t *testing.T) {
			// when
			_, err := ParsePriceBucket(name)
			// then
			assert.ErrorIs(t, err, catalogerrors.ErrUnknownPriceBucket)
		})
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

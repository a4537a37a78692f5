package catalog

import (
	"sort"

	"cwarett/models"
	"cwarett/utils"
)

// CategoryAll matches every category.
const CategoryAll = "all"

type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// FilterCriteria holds one round of listing filters. Values are only
// meaningful against the product collection they were built for.
type FilterCriteria struct {
	CategorySlug string  // CategoryAll or empty matches everything
	MinPrice     float64 // inclusive
	MaxPrice     float64 // inclusive; <= 0 means no upper bound
	Query        string  // free text, optional
	Sort         SortKey
}

// RepresentativePrice is the cheapest plan price, or the base price when the
// product carries no plans. Recomputed on every call; plan lists are tiny.
func RepresentativePrice(p models.Product) float64 {
	if len(p.Subscriptions) == 0 {
		return p.Price
	}
	lowest := p.Subscriptions[0].Price
	for _, plan := range p.Subscriptions[1:] {
		if plan.Price < lowest {
			lowest = plan.Price
		}
	}
	return lowest
}

// FilterAndSort applies the category, price and search predicates (ANDed)
// and orders the survivors by the requested sort key. The input slice is
// never modified.
func FilterAndSort(products []models.Product, c FilterCriteria) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if !matchesCategory(p, c.CategorySlug) {
			continue
		}
		price := RepresentativePrice(p)
		if price < c.MinPrice || (c.MaxPrice > 0 && price > c.MaxPrice) {
			continue
		}
		if !matchesQuery(p, c.Query) {
			continue
		}
		out = append(out, p)
	}

	switch c.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return RepresentativePrice(out[i]) < RepresentativePrice(out[j])
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return RepresentativePrice(out[i]) > RepresentativePrice(out[j])
		})
	case SortName:
		coll := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortPopular:
		// popular first, original order within each group
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Popular && !out[j].Popular
		})
	}

	return out
}

func matchesCategory(p models.Product, slug string) bool {
	if slug == "" || slug == CategoryAll {
		return true
	}
	return Slugify(p.Category) == slug
}

func matchesQuery(p models.Product, query string) bool {
	if query == "" {
		return true
	}
	if utils.ContainsIgnoreCase(p.Name, query) ||
		utils.ContainsIgnoreCase(p.Description, query) ||
		utils.ContainsIgnoreCase(p.Category, query) {
		return true
	}
	for _, f := range p.Features {
		if utils.ContainsIgnoreCase(f, query) {
			return true
		}
	}
	return false
}

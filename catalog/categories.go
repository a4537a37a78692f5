package catalog

import (
	"sort"
	"strings"

	"cwarett/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collators are not safe for concurrent use; each call gets its own
func newCollator() *collate.Collator {
	return collate.New(language.French)
}

// Slugify turns a display label into a URL-safe slug: lowercased, with
// runs of whitespace collapsed to a single hyphen.
func Slugify(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

// DeriveCategories groups products by normalized category slug and counts
// them. The display name of a category is taken from the first product seen
// with that slug; the result is sorted alphabetically by name.
func DeriveCategories(products []models.Product) []models.Category {
	index := make(map[string]int)
	categories := []models.Category{}

	for _, p := range products {
		if p.Category == "" {
			continue
		}
		slug := Slugify(p.Category)
		if i, ok := index[slug]; ok {
			categories[i].Count++
			continue
		}
		index[slug] = len(categories)
		categories = append(categories, models.Category{
			Slug:  slug,
			Name:  p.Category,
			Count: 1,
		})
	}

	coll := newCollator()
	sort.SliceStable(categories, func(i, j int) bool {
		return coll.CompareString(categories[i].Name, categories[j].Name) < 0
	})

	return categories
}

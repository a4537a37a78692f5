package catalog

import (
	"testing"

	"cwarett/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "netflix", Slugify("Netflix"))
	assert.Equal(t, "net-flix", Slugify("Net flix"))
	assert.Equal(t, "streaming-divertissement", Slugify("Streaming   Divertissement"))
	assert.Equal(t, "ai", Slugify("  AI  "))
	assert.Equal(t, "", Slugify("   "))
}

func TestDeriveCategoriesMergesCaseVariants(t *testing.T) {
	products := []models.Product{
		{ProductID: "1", Category: "Netflix"},
		{ProductID: "2", Category: "netflix"},
		{ProductID: "3", Category: "NETFLIX"},
	}

	categories := DeriveCategories(products)
	require.Len(t, categories, 1)
	assert.Equal(t, "netflix", categories[0].Slug)
	assert.Equal(t, "Netflix", categories[0].Name) // first occurrence wins
	assert.Equal(t, 3, categories[0].Count)
}

func TestDeriveCategoriesWhitespaceVariantIsDistinct(t *testing.T) {
	products := []models.Product{
		{ProductID: "1", Category: "Netflix"},
		{ProductID: "2", Category: "Net flix"},
	}

	categories := DeriveCategories(products)
	require.Len(t, categories, 2)
	slugs := []string{categories[0].Slug, categories[1].Slug}
	assert.Contains(t, slugs, "netflix")
	assert.Contains(t, slugs, "net-flix")
}

func TestDeriveCategoriesSortedByName(t *testing.T) {
	products := []models.Product{
		{ProductID: "1", Category: "Streaming"},
		{ProductID: "2", Category: "AI"},
		{ProductID: "3", Category: "Musique"},
		{ProductID: "4", Category: "Streaming"},
	}

	categories := DeriveCategories(products)
	require.Len(t, categories, 3)
	assert.Equal(t, "AI", categories[0].Name)
	assert.Equal(t, "Musique", categories[1].Name)
	assert.Equal(t, "Streaming", categories[2].Name)
	assert.Equal(t, 2, categories[2].Count)
}

func TestDeriveCategoriesSkipsEmptyLabelsAndInput(t *testing.T) {
	assert.Empty(t, DeriveCategories(nil))

	categories := DeriveCategories([]models.Product{
		{ProductID: "1", Category: ""},
		{ProductID: "2", Category: "Streaming"},
	})
	require.Len(t, categories, 1)
	assert.Equal(t, 1, categories[0].Count)
}

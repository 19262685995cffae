package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientsCSV(t *testing.T) {
	input := "name,measurement_unit\nabricot,g\n\"salt, sea\",pinch\n"

	seeds, err := ParseIngredients(strings.NewReader(input), SeedFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []domain.IngredientSeed{
		{Name: "abricot", MeasurementUnit: "g"},
		{Name: "salt, sea", MeasurementUnit: "pinch"},
	}, seeds)
}

func TestParseIngredientsCSVWrongColumns(t *testing.T) {
	_, err := ParseIngredients(strings.NewReader("flour,g,extra\n"), SeedFormatCSV)
	assert.Error(t, err)
}

func TestParseIngredientsJSON(t *testing.T) {
	input := `[{"name":"flour","measurement_unit":"g"},{"name":"egg","measurement_unit":"pc"}]`

	seeds, err := ParseIngredients(strings.NewReader(input), SeedFormatJSON)
	require.NoError(t, err)
	assert.Len(t, seeds, 2)
	assert.Equal(t, "pc", seeds[1].MeasurementUnit)
}

func TestParseIngredientsUnknownFormat(t *testing.T) {
	_, err := ParseIngredients(strings.NewReader(""), SeedFormat("ingredients.xml"))
	assert.ErrorIs(t, err, ErrUnknownSeedFormat)
}

func TestParseTags(t *testing.T) {
	input := `
- name: Breakfast
  color: "#E26C2D"
  slug: breakfast
- name: Dinner
  color: "#49B64E"
  slug: dinner
`
	seeds, err := ParseTags(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.TagSeed{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}, seeds)
}

func TestImportIngredientsSkipsExisting(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateIngredient(t, db, "flour", "g")
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute)

	added, err := svc.ImportIngredients(context.Background(), []domain.IngredientSeed{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "kg"},
		{Name: "egg", MeasurementUnit: "pc"},
		{Name: "egg", MeasurementUnit: "pc"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), added)

	var count int64
	require.NoError(t, db.Model(&entities.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestImportIngredientsRejectsBlankUnit(t *testing.T) {
	svc := NewCatalogService(NewCatalogRepository(testdb.New(t)), time.Minute)

	_, err := svc.ImportIngredients(context.Background(), []domain.IngredientSeed{{Name: "flour"}})
	assert.Error(t, err)
}

func TestGetIngredientsPrefixSearch(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateIngredient(t, db, "Sugar", "g")
	testdb.CreateIngredient(t, db, "sunflower oil", "ml")
	testdb.CreateIngredient(t, db, "salt", "g")
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute)
	ctx := context.Background()

	res, err := svc.GetIngredients(ctx, "su")
	require.NoError(t, err)
	names := make([]string, 0, len(res))
	for _, ing := range res {
		names = append(names, ing.Name)
	}
	assert.ElementsMatch(t, []string{"Sugar", "sunflower oil"}, names)

	all, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := svc.GetIngredients(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestImportRefreshesCachedCatalog(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute)
	ctx := context.Background()

	before, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = svc.ImportIngredients(ctx, []domain.IngredientSeed{{Name: "milk", MeasurementUnit: "ml"}})
	require.NoError(t, err)

	after, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, after, 1)

	found, err := svc.GetIngredient(ctx, after[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "milk", found.Name)
}

func TestCachedCatalogExpires(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute).(*catalogService)
	clock := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	before, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, before)

	// written by another process, so this service's cache is not dropped
	testdb.CreateIngredient(t, db, "salt", "g")

	stale, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stale)

	clock = clock.Add(time.Minute)
	fresh, err := svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "salt", fresh[0].Name)
}

func TestImportTagsUpdatesBySlug(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateTag(t, db, "lunch")
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute)
	ctx := context.Background()

	_, err := svc.ImportTags(ctx, []domain.TagSeed{
		{Name: "Lunch", Color: "#111111", Slug: "lunch"},
		{Name: "Dinner", Color: "#222222", Slug: "dinner"},
	})
	require.NoError(t, err)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "dinner", tags[0].Slug)
	assert.Equal(t, "Lunch", tags[1].Name)
	assert.Equal(t, "#111111", tags[1].Color)
}

func TestGetTagMissing(t *testing.T) {
	svc := NewCatalogService(NewCatalogRepository(testdb.New(t)), time.Minute)

	_, err := svc.GetTag(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = svc.GetTag(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestGetTagFromCache(t *testing.T) {
	db := testdb.New(t)
	tag := testdb.CreateTag(t, db, "breakfast")
	svc := NewCatalogService(NewCatalogRepository(db), time.Minute)

	res, err := svc.GetTag(context.Background(), tag.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "breakfast", res.Slug)
}

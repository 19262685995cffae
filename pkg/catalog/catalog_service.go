package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

const (
	tagsCacheKey        = "tags"
	ingredientsCacheKey = "ingredients"
	cacheSize           = 16
)

type (
	CatalogService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTag(ctx context.Context, id string) (domain.Tag, error)
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id string) (domain.Ingredient, error)
		ImportIngredients(ctx context.Context, seeds []domain.IngredientSeed) (int64, error)
		ImportTags(ctx context.Context, seeds []domain.TagSeed) (int64, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		cache             *lru.Cache
		ttl               time.Duration
		now               func() time.Time
	}

	cacheEntry struct {
		value    any
		loadedAt time.Time
	}
)

// NewCatalogService caches the tag and ingredient catalogs after their first
// load. Cached copies expire after ttl so imports run by another process
// become visible; a ttl <= 0 keeps them until an import through this
// service drops them.
func NewCatalogService(catalogRepository CatalogRepository, ttl time.Duration) CatalogService {
	cache, _ := lru.New(cacheSize)
	return &catalogService{
		catalogRepository: catalogRepository,
		cache:             cache,
		ttl:               ttl,
		now:               time.Now,
	}
}

func (s *catalogService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags(ctx)
}

func (s *catalogService) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	tagID, err := uuid.Parse(id)
	if err != nil {
		return domain.Tag{}, domain.ErrTagNotFound
	}

	tags, err := s.tags(ctx)
	if err != nil {
		return domain.Tag{}, err
	}
	for _, tag := range tags {
		if tag.ID == tagID.String() {
			return tag, nil
		}
	}

	// the catalog may have grown since it was cached
	tag, err := s.catalogRepository.GetTagByID(ctx, tagID)
	if err != nil {
		return domain.Tag{}, err
	}
	s.cache.Remove(tagsCacheKey)
	return toTag(tag), nil
}

// GetIngredients returns ingredients whose name starts with namePrefix,
// ignoring case. An empty prefix returns the whole catalog.
func (s *catalogService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredients(ctx)
	if err != nil {
		return nil, err
	}

	prefix := strings.ToLower(strings.TrimSpace(namePrefix))
	if prefix == "" {
		return ingredients, nil
	}

	res := make([]domain.Ingredient, 0)
	for _, ing := range ingredients {
		if strings.HasPrefix(strings.ToLower(ing.Name), prefix) {
			res = append(res, ing)
		}
	}
	return res, nil
}

func (s *catalogService) GetIngredient(ctx context.Context, id string) (domain.Ingredient, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.Ingredient{}, domain.ErrIngredientNotFound
	}

	ingredients, err := s.ingredients(ctx)
	if err != nil {
		return domain.Ingredient{}, err
	}
	for _, ing := range ingredients {
		if ing.ID == ingredientID.String() {
			return ing, nil
		}
	}

	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		return domain.Ingredient{}, err
	}
	s.cache.Remove(ingredientsCacheKey)
	return toIngredient(ingredient), nil
}

func (s *catalogService) ImportIngredients(ctx context.Context, seeds []domain.IngredientSeed) (int64, error) {
	type key struct{ name, unit string }
	seen := make(map[key]bool, len(seeds))

	ingredients := make([]*entities.Ingredient, 0, len(seeds))
	for i, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		unit := strings.TrimSpace(seed.MeasurementUnit)
		if name == "" || unit == "" {
			return 0, fmt.Errorf("ingredient %d: name and measurement unit are required", i+1)
		}
		k := key{name, unit}
		if seen[k] {
			continue
		}
		seen[k] = true
		ingredients = append(ingredients, &entities.Ingredient{Name: name, MeasurementUnit: unit})
	}

	added, err := s.catalogRepository.InsertIngredients(ctx, ingredients)
	if err != nil {
		return 0, fmt.Errorf("insert ingredients: %w", err)
	}
	s.cache.Remove(ingredientsCacheKey)

	log.Infow("ingredients imported", "submitted", len(seeds), "added", added)
	return added, nil
}

func (s *catalogService) ImportTags(ctx context.Context, seeds []domain.TagSeed) (int64, error) {
	bySlug := make(map[string]int, len(seeds))
	tags := make([]*entities.Tag, 0, len(seeds))
	for i, seed := range seeds {
		slug := strings.TrimSpace(seed.Slug)
		if slug == "" || strings.TrimSpace(seed.Name) == "" {
			return 0, fmt.Errorf("tag %d: name and slug are required", i+1)
		}
		tag := &entities.Tag{Name: strings.TrimSpace(seed.Name), Color: strings.TrimSpace(seed.Color), Slug: slug}
		// a later entry for the same slug wins
		if idx, ok := bySlug[slug]; ok {
			tags[idx] = tag
			continue
		}
		bySlug[slug] = len(tags)
		tags = append(tags, tag)
	}

	n, err := s.catalogRepository.UpsertTags(ctx, tags)
	if err != nil {
		return 0, fmt.Errorf("upsert tags: %w", err)
	}
	s.cache.Remove(tagsCacheKey)

	log.Infow("tags imported", "submitted", len(seeds), "written", n)
	return n, nil
}

func (s *catalogService) tags(ctx context.Context) ([]domain.Tag, error) {
	if cached, ok := s.cached(tagsCacheKey); ok {
		return cached.([]domain.Tag), nil
	}

	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		res = append(res, toTag(tag))
	}
	s.store(tagsCacheKey, res)
	return res, nil
}

func (s *catalogService) ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	if cached, ok := s.cached(ingredientsCacheKey); ok {
		return cached.([]domain.Ingredient), nil
	}

	ingredients, err := s.catalogRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		res = append(res, toIngredient(ing))
	}
	s.store(ingredientsCacheKey, res)
	return res, nil
}

func (s *catalogService) cached(key string) (any, bool) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := raw.(cacheEntry)
	if s.ttl > 0 && s.now().Sub(entry.loadedAt) >= s.ttl {
		s.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (s *catalogService) store(key string, value any) {
	s.cache.Add(key, cacheEntry{value: value, loadedAt: s.now()})
}

func toTag(t *entities.Tag) domain.Tag {
	return domain.Tag{ID: t.ID.String(), Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func toIngredient(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{ID: i.ID.String(), Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

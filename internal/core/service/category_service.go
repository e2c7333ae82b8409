package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/kids-stock/internal/core/domain"
	"github.com/rl1809/kids-stock/internal/port"
)

// CategoriesCacheKey holds the whole catalog; there are no filters.
const CategoriesCacheKey = "clothing_categories"

type CategoryService struct {
	repo   port.CategoryRepository
	cache  port.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewCategoryService(repo port.CategoryRepository, cache port.CacheRepository, ttl time.Duration, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// ListCategories returns the catalog ordered by sort_order. Cache errors
// are logged and the database is used instead.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.ClothingCategory, error) {
	data, ok, err := s.cache.Get(ctx, CategoriesCacheKey)
	if err != nil {
		s.logger.Warn("category cache read failed", zap.Error(err))
	} else if ok {
		var categories []domain.ClothingCategory
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
		s.logger.Warn("category cache entry is corrupt", zap.Error(err))
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.ClothingCategory{}
	}

	data, err = json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	if err := s.cache.Set(ctx, CategoriesCacheKey, data, s.ttl); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}

	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*domain.ClothingCategory, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// InvalidateCategories must be called after the catalog table changes.
func (s *CategoryService) InvalidateCategories(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx, CategoriesCacheKey); err != nil {
		return fmt.Errorf("invalidate categories: %w", err)
	}
	return nil
}

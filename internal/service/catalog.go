// File: internal/service/catalog.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"library-catalog/internal/apperror"
	"library-catalog/internal/cache"
	"library-catalog/internal/database"
	"library-catalog/internal/metrics"
	"library-catalog/internal/model"
	"library-catalog/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// 分頁預設值與上限
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// 測試可覆寫
var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// Catalog 處理館藏 CRUD；單筆查詢走 Redis read-through 快取
// 快取鍵帶有館藏世代號，每次異動遞增世代號，舊世代的內容不再被讀取
type Catalog struct {
	db       database.DB
	cache    cache.Cache
	cacheTTL time.Duration
	log      *logrus.Entry
}

// NewCatalog c 為 nil 時停用快取
func NewCatalog(db database.DB, c cache.Cache, cacheTTL time.Duration, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Catalog{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      logger.WithField("component", "catalog"),
	}
}

func itemGenerationKey(id int) string {
	return fmt.Sprintf("library_item:%d:gen", id)
}

func itemCacheKey(id int, gen int64) string {
	return fmt.Sprintf("library_item:%d:v%d", id, gen)
}

// NormalizeFilter 套用分頁預設值並檢查範圍
func NormalizeFilter(f model.LibraryItemFilter) (model.LibraryItemFilter, error) {
	if f.Skip < 0 {
		return f, fmt.Errorf("skip must be >= 0: %w", apperror.ErrValidation)
	}
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit < 1 || f.Limit > MaxListLimit {
		return f, fmt.Errorf("limit must be between 1 and %d: %w", MaxListLimit, apperror.ErrValidation)
	}
	return f, nil
}

func validateItem(it *model.LibraryItem) error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("title is required: %w", apperror.ErrValidation)
	}
	if strings.TrimSpace(it.Author) == "" {
		return fmt.Errorf("author is required: %w", apperror.ErrValidation)
	}
	if it.AvailableCopies < 0 {
		return fmt.Errorf("available_copies must be >= 0: %w", apperror.ErrValidation)
	}
	return nil
}

func (s *Catalog) Create(ctx context.Context, it *model.LibraryItem) (*model.LibraryItem, error) {
	if err := validateItem(it); err != nil {
		return nil, err
	}
	return store.CreateLibraryItem(ctx, s.db, it)
}

func (s *Catalog) Get(ctx context.Context, id int) (*model.LibraryItem, error) {
	// 世代號須在讀取資料庫之前取得
	gen, cacheable := s.itemGeneration(ctx, id)
	if cacheable {
		if it, ok := s.cachedItem(ctx, id, gen); ok {
			return it, nil
		}
	}
	it, err := store.GetLibraryItem(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.storeItem(ctx, gen, it)
	}
	return it, nil
}

func (s *Catalog) List(ctx context.Context, f model.LibraryItemFilter) ([]model.LibraryItem, error) {
	f, err := NormalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return store.ListLibraryItems(ctx, s.db, f)
}

func (s *Catalog) Update(ctx context.Context, id int, patch model.LibraryItemPatch) (*model.LibraryItem, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("title cannot be empty: %w", apperror.ErrValidation)
	}
	if patch.Author != nil && strings.TrimSpace(*patch.Author) == "" {
		return nil, fmt.Errorf("author cannot be empty: %w", apperror.ErrValidation)
	}
	if patch.AvailableCopies != nil && *patch.AvailableCopies < 0 {
		return nil, fmt.Errorf("available_copies must be >= 0: %w", apperror.ErrValidation)
	}

	it, err := store.UpdateLibraryItem(ctx, s.db, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return it, nil
}

func (s *Catalog) Delete(ctx context.Context, id int) error {
	if err := store.DeleteLibraryItem(ctx, s.db, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// itemGeneration 回傳目前世代號；快取停用或故障時 ok 為 false
func (s *Catalog) itemGeneration(ctx context.Context, id int) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Get(ctx, itemGenerationKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		metrics.RecordCacheLookup("error")
		s.log.WithError(err).WithField("item_id", id).Warn("cache generation failed")
		return 0, false
	}
	return gen, true
}

// 快取錯誤只記錄，不影響回應
func (s *Catalog) cachedItem(ctx context.Context, id int, gen int64) (*model.LibraryItem, bool) {
	data, err := s.cache.Get(ctx, itemCacheKey(id, gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheLookup("miss")
		} else {
			metrics.RecordCacheLookup("error")
			s.log.WithError(err).WithField("item_id", id).Warn("cache get failed")
		}
		return nil, false
	}

	var it model.LibraryItem
	if err := jsonUnmarshal(data, &it); err != nil {
		metrics.RecordCacheLookup("error")
		s.log.WithError(err).WithField("item_id", id).Warn("cache entry corrupt")
		return nil, false
	}
	metrics.RecordCacheLookup("hit")
	return &it, true
}

func (s *Catalog) storeItem(ctx context.Context, gen int64, it *model.LibraryItem) {
	data, err := jsonMarshal(it)
	if err != nil {
		s.log.WithError(err).WithField("item_id", it.ID).Warn("cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, itemCacheKey(it.ID, gen), data, s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).WithField("item_id", it.ID).Warn("cache set failed")
	}
}

// invalidate 遞增世代號；世代號不設過期，刪除後也保留
func (s *Catalog) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, itemGenerationKey(id)).Err(); err != nil {
		s.log.WithError(err).WithField("item_id", id).Warn("cache invalidate failed")
	}
}

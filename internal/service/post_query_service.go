package service

import (
	"errors"
	"strings"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PostQueryService wraps read-only queries over generated posts.
type PostQueryService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing generated posts.
type PostFilter struct {
	UserID string
	Limit  int
	Offset int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts   []db.GeneratedPost
	Total   int64
	Limit   int
	Offset  int
	HasMore bool
}

// NewPostQueryService creates a PostQueryService instance.
func NewPostQueryService(gdb *gorm.DB) *PostQueryService {
	return &PostQueryService{db: gdb}
}

// List 返回按创建时间倒序的一页生成记录。limit/offset 非法时回退到默认值，
// 相同时间戳用 id 兜底排序，保证同样的数据返回同样的顺序。
func (s *PostQueryService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Limit: filter.Limit, Offset: filter.Offset}
	if result.Limit <= 0 {
		result.Limit = defaultPageLimit
	}
	if result.Limit > maxPageLimit {
		result.Limit = maxPageLimit
	}
	if result.Offset < 0 {
		result.Offset = 0
	}

	countQuery := s.applyFilter(s.db.Model(&db.GeneratedPost{}), filter)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, classifyStoreError(s.db, "count generated posts", err)
	}

	var posts []db.GeneratedPost
	dataQuery := s.applyFilter(s.db.Model(&db.GeneratedPost{}), filter)
	if err := dataQuery.
		Order("created_at desc, id desc").
		Limit(result.Limit).
		Offset(result.Offset).
		Find(&posts).Error; err != nil {
		return nil, classifyStoreError(s.db, "list generated posts", err)
	}

	result.Posts = posts
	result.HasMore = int64(result.Offset+result.Limit) < result.Total
	return result, nil
}

// Get fetches a generated post by id.
func (s *PostQueryService) Get(id string) (*db.GeneratedPost, error) {
	var post db.GeneratedPost
	if err := s.db.First(&post, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, classifyStoreError(s.db, "load generated post", err)
	}
	return &post, nil
}

func (s *PostQueryService) applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if userID := strings.TrimSpace(filter.UserID); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	return query
}

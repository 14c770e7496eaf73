package repository

import (
	"context"

	"go-sales-territory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	FindArticles(ctx context.Context) ([]model.Article, error)
	FindArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Article, error)
	UpdateArticlePrice(ctx context.Context, id uuid.UUID, price int64, updatedBy string) error
	CreatePack(ctx context.Context, pack *model.Pack) error
	FindPacks(ctx context.Context) ([]model.Pack, error)
	// FindPackByID preloads items and their articles at current prices.
	FindPackByID(ctx context.Context, id uuid.UUID) (*model.Pack, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

func (r *catalogRepo) CreateArticle(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *catalogRepo) FindArticles(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.WithContext(ctx).Order("name ASC").Find(&articles).Error
	return articles, err
}

func (r *catalogRepo) FindArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Article, error) {
	var articles []model.Article
	if len(ids) == 0 {
		return articles, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error
	return articles, err
}

// UpdateArticlePrice changes the current price only. Recorded sales keep the
// price they were admitted with.
func (r *catalogRepo) UpdateArticlePrice(ctx context.Context, id uuid.UUID, price int64, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"price":      price,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreatePack inserts the pack and its items. Items carry ArticleID only.
func (r *catalogRepo) CreatePack(ctx context.Context, pack *model.Pack) error {
	return r.db.WithContext(ctx).Create(pack).Error
}

func (r *catalogRepo) FindPacks(ctx context.Context) ([]model.Pack, error) {
	var packs []model.Pack
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Article").Order("name ASC").Find(&packs).Error
	return packs, err
}

func (r *catalogRepo) FindPackByID(ctx context.Context, id uuid.UUID) (*model.Pack, error) {
	var pack model.Pack
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Article").First(&pack, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

package repository

import (
	"context"
	"time"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository has no update or delete: recorded sales are immutable.
type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindAll(ctx context.Context, scope access.SaleScope) ([]model.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID, scope access.SaleScope) (*model.Sale, error)
	Summary(ctx context.Context, scope access.SaleScope) (*SalesSummary, error)
	FindAmountsSince(ctx context.Context, scope access.SaleScope, since time.Time) ([]SaleAmount, error)
	TotalsByRepresentative(ctx context.Context) ([]RepresentativeTotals, error)
}

// SalesSummary is the count and revenue (centimes) over a set of sales
type SalesSummary struct {
	SalesCount   int64 `json:"sales_count"`
	RevenueTotal int64 `json:"revenue_total"`
}

// SaleAmount is one sale reduced to what movement charts need
type SaleAmount struct {
	CreatedAt  time.Time
	TotalPrice int64
}

// RepresentativeTotals is a SalesSummary for one representative
type RepresentativeTotals struct {
	RepresentativeID uuid.UUID `json:"representative_id"`
	SalesCount       int64     `json:"sales_count"`
	RevenueTotal     int64     `json:"revenue_total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Omit("Client", "Representative", "Pack").Create(sale).Error
}

func (r *saleRepo) FindAll(ctx context.Context, scope access.SaleScope) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Scopes(saleScope(scope)).
		Preload("Client").
		Preload("Pack").
		Preload("Representative").
		Order("sales.created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID, scope access.SaleScope) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Scopes(saleScope(scope)).
		Preload("Client").
		Preload("Pack").
		Preload("Representative").
		First(&sale, "sales.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) Summary(ctx context.Context, scope access.SaleScope) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Scopes(saleScope(scope)).
		Select("COUNT(*) AS sales_count, COALESCE(SUM(total_price), 0) AS revenue_total").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *saleRepo) FindAmountsSince(ctx context.Context, scope access.SaleScope, since time.Time) ([]SaleAmount, error) {
	var rows []SaleAmount
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Scopes(saleScope(scope)).
		Select("created_at, total_price").
		Where("sales.created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) TotalsByRepresentative(ctx context.Context) ([]RepresentativeTotals, error) {
	var rows []RepresentativeTotals
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("representative_id, COUNT(*) AS sales_count, COALESCE(SUM(total_price), 0) AS revenue_total").
		Group("representative_id").
		Scan(&rows).Error
	return rows, err
}

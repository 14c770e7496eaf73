package repository

import (
	"context"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindAll(ctx context.Context, scope access.ClientScope) ([]model.Client, error)
	Count(ctx context.Context, scope access.ClientScope) (int64, error)
	// FindByKey matches on the canonical business key, unscoped.
	FindByKey(ctx context.Context, key model.ClientKey) (*model.Client, error)
	// FindByKeyForUpdate is FindByKey holding a row lock until the
	// surrounding transaction ends.
	FindByKeyForUpdate(ctx context.Context, key model.ClientKey) (*model.Client, error)
	UpdateWilaya(ctx context.Context, id uuid.UUID, wilaya string) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepo) FindAll(ctx context.Context, scope access.ClientScope) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Scopes(clientScope(scope)).
		Order("clients.full_name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Count(ctx context.Context, scope access.ClientScope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Client{}).Scopes(clientScope(scope)).Count(&n).Error
	return n, err
}

func (r *clientRepo) FindByKey(ctx context.Context, key model.ClientKey) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, "client_id = ?", key.String()).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) FindByKeyForUpdate(ctx context.Context, key model.ClientKey) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Scopes(forUpdate).First(&client, "client_id = ?", key.String()).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) UpdateWilaya(ctx context.Context, id uuid.UUID, wilaya string) error {
	return r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", id).Update("wilaya", wilaya).Error
}

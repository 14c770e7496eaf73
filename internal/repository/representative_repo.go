package repository

import (
	"context"

	"go-sales-territory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepresentativeRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.Representative, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Representative, error)
	FindAll(ctx context.Context) ([]model.Representative, error)
	Create(ctx context.Context, rep *model.Representative) error
	Update(ctx context.Context, rep *model.Representative) error
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	UpdateSession(ctx context.Context, id uuid.UUID, tokenVersion string) error
	UpdateWilaya(ctx context.Context, id uuid.UUID, wilaya string) error
}

type representativeRepo struct {
	db *gorm.DB
}

func NewRepresentativeRepo(db *gorm.DB) RepresentativeRepository {
	return &representativeRepo{db}
}

func (r *representativeRepo) withRole(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Role").Preload("Role.Privileges")
}

func (r *representativeRepo) FindByUsername(ctx context.Context, username string) (*model.Representative, error) {
	var rep model.Representative
	if err := r.withRole(ctx).Where("username = ?", username).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *representativeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Representative, error) {
	var rep model.Representative
	if err := r.withRole(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *representativeRepo) FindAll(ctx context.Context) ([]model.Representative, error) {
	var reps []model.Representative
	if err := r.withRole(ctx).Order("username ASC").Find(&reps).Error; err != nil {
		return nil, err
	}
	return reps, nil
}

func (r *representativeRepo) Create(ctx context.Context, rep *model.Representative) error {
	return r.db.WithContext(ctx).Omit("Role").Create(rep).Error
}

func (r *representativeRepo) Update(ctx context.Context, rep *model.Representative) error {
	return r.db.WithContext(ctx).Omit("Role").Save(rep).Error
}

func (r *representativeRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Representative{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Representative{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *representativeRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.Representative{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

// UpdateSession rotates the token version and stamps the login time
func (r *representativeRepo) UpdateSession(ctx context.Context, id uuid.UUID, tokenVersion string) error {
	return r.db.WithContext(ctx).Model(&model.Representative{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token_version": tokenVersion,
		"last_login_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}).Error
}

func (r *representativeRepo) UpdateWilaya(ctx context.Context, id uuid.UUID, wilaya string) error {
	return r.db.WithContext(ctx).Model(&model.Representative{}).Where("id = ?", id).Update("wilaya", wilaya).Error
}

package service

import (
	"context"
	"errors"
	"fmt"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/repository"
	"go-sales-territory/internal/territory"
	"go-sales-territory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUsernameExists = fmt.Errorf("username %w", ErrConflict)
	ErrRoleNotFound   = fmt.Errorf("role %w", ErrNotFound)
	ErrDeleteSelf     = errors.New("cannot delete your own account")
)

// RepresentativeService administers representatives. Every operation
// requires an admin principal.
type RepresentativeService interface {
	CreateRepresentative(ctx context.Context, p access.Principal, req *CreateRepresentativeRequest) (*model.RepresentativeResponse, error)
	UpdateRepresentative(ctx context.Context, p access.Principal, id uuid.UUID, req *UpdateRepresentativeRequest) (*model.RepresentativeResponse, error)
	DeleteRepresentative(ctx context.Context, p access.Principal, id uuid.UUID) error
	GetAllRepresentatives(ctx context.Context, p access.Principal) ([]model.RepresentativeResponse, error)
	GetRepresentativeByID(ctx context.Context, p access.Principal, id uuid.UUID) (*model.RepresentativeResponse, error)
	GetAllRoles(ctx context.Context) ([]model.Role, error)
	GetAllPrivileges(ctx context.Context) ([]model.Privilege, error)
}

type CreateRepresentativeRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	City        string `json:"city"`
	Wilaya      string `json:"wilaya" validate:"required,wilaya"`
	PhoneNumber string `json:"phone_number"`
	RoleCode    string `json:"role_code" validate:"required,oneof=ADMIN DELEGATE"`
}

// UpdateRepresentativeRequest leaves nil fields unchanged
type UpdateRepresentativeRequest struct {
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=1"`
	City        *string `json:"city,omitempty"`
	Wilaya      *string `json:"wilaya,omitempty" validate:"omitempty,wilaya"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	RoleCode    *string `json:"role_code,omitempty" validate:"omitempty,oneof=ADMIN DELEGATE"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type representativeService struct {
	store *repository.Store
}

func NewRepresentativeService(store *repository.Store) RepresentativeService {
	return &representativeService{store: store}
}

// canonicalWilaya stores new values in canonical form so that territory
// filters match them exactly.
func canonicalWilaya(raw string) (string, error) {
	w, err := territory.Parse(raw)
	if err != nil {
		return "", validationError(err)
	}
	return w.String(), nil
}

func (s *representativeService) findRole(ctx context.Context, code string) (*model.Role, error) {
	role, err := s.store.Roles.FindByCode(ctx, code)
	if err != nil {
		return nil, storeError("find role", err, ErrRoleNotFound)
	}
	return role, nil
}

func (s *representativeService) CreateRepresentative(ctx context.Context, p access.Principal, req *CreateRepresentativeRequest) (*model.RepresentativeResponse, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	wilaya, err := canonicalWilaya(req.Wilaya)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Representatives.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("find representative", err, nil)
	}

	role, err := s.findRole(ctx, req.RoleCode)
	if err != nil {
		return nil, err
	}

	rep := &model.Representative{
		Username:    req.Username,
		FullName:    req.FullName,
		City:        req.City,
		Wilaya:      wilaya,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		IsActive:    true,
	}
	rep.CreatedBy = p.ID.String()
	rep.UpdatedBy = p.ID.String()

	if err := rep.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.store.Representatives.Create(ctx, rep); err != nil {
		return nil, storeError("create representative", err, nil)
	}
	return s.GetRepresentativeByID(ctx, p, rep.ID)
}

func (s *representativeService) UpdateRepresentative(ctx context.Context, p access.Principal, id uuid.UUID, req *UpdateRepresentativeRequest) (*model.RepresentativeResponse, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if err := validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	rep, err := s.store.Representatives.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find representative", err, ErrRepresentativeNotFound)
	}

	if req.Wilaya != nil {
		wilaya, err := canonicalWilaya(*req.Wilaya)
		if err != nil {
			return nil, err
		}
		rep.Wilaya = wilaya
	}
	if req.RoleCode != nil {
		role, err := s.findRole(ctx, *req.RoleCode)
		if err != nil {
			return nil, err
		}
		rep.RoleID = &role.ID
		rep.Role = nil
	}
	if req.FullName != nil {
		rep.FullName = *req.FullName
	}
	if req.City != nil {
		rep.City = *req.City
	}
	if req.PhoneNumber != nil {
		rep.PhoneNumber = *req.PhoneNumber
	}
	if req.IsActive != nil {
		rep.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := rep.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
		// a new password ends the current session
		rep.TokenVersion = uuid.NewString()
	}
	rep.UpdatedBy = p.ID.String()

	if err := s.store.Representatives.Update(ctx, rep); err != nil {
		return nil, storeError("update representative", err, nil)
	}
	return s.GetRepresentativeByID(ctx, p, id)
}

func (s *representativeService) DeleteRepresentative(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if id == p.ID {
		return validationError(ErrDeleteSelf)
	}
	if err := s.store.Representatives.Delete(ctx, id, p.ID.String()); err != nil {
		return storeError("delete representative", err, ErrRepresentativeNotFound)
	}
	return nil
}

func (s *representativeService) GetAllRepresentatives(ctx context.Context, p access.Principal) ([]model.RepresentativeResponse, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	reps, err := s.store.Representatives.FindAll(ctx)
	if err != nil {
		return nil, storeError("list representatives", err, nil)
	}

	responses := make([]model.RepresentativeResponse, len(reps))
	for i, rep := range reps {
		responses[i] = rep.ToResponse()
	}
	return responses, nil
}

func (s *representativeService) GetRepresentativeByID(ctx context.Context, p access.Principal, id uuid.UUID) (*model.RepresentativeResponse, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	rep, err := s.store.Representatives.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("find representative", err, ErrRepresentativeNotFound)
	}
	response := rep.ToResponse()
	return &response, nil
}

func (s *representativeService) GetAllRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.store.Roles.FindAll(ctx)
	if err != nil {
		return nil, storeError("list roles", err, nil)
	}
	return roles, nil
}

func (s *representativeService) GetAllPrivileges(ctx context.Context) ([]model.Privilege, error) {
	privileges, err := s.store.Privileges.FindAll(ctx)
	if err != nil {
		return nil, storeError("list privileges", err, nil)
	}
	return privileges, nil
}

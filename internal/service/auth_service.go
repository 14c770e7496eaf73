package service

import (
	"context"
	"errors"
	"fmt"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/repository"
	"go-sales-territory/pkg/jwt"
	"go-sales-territory/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactive           = errors.New("representative account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResponse, error)
	ResetPassword(ctx context.Context, username, oldPassword, newPassword string) error
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	// Authenticate verifies a bearer token against the stored session and
	// returns the normalized principal with its privilege codes.
	Authenticate(ctx context.Context, tokenString string) (access.Principal, []string, error)
}

type LoginResponse struct {
	Token          string                       `json:"token"`
	Representative model.RepresentativeResponse `json:"representative"`
	Principal      access.Principal             `json:"principal"`
	TerritoryValid bool                         `json:"territory_valid"`
	Privileges     []string                     `json:"privileges"`
}

type TokenValidationResponse struct {
	Representative model.RepresentativeResponse `json:"representative"`
	Principal      access.Principal             `json:"principal"`
	TerritoryValid bool                         `json:"territory_valid"`
	Privileges     []string                     `json:"privileges"`
}

type authService struct {
	store *repository.Store
}

func NewAuthService(store *repository.Store) AuthService {
	return &authService{store: store}
}

func principalOf(rep *model.Representative) (access.Principal, error) {
	return access.NormalizePrincipal(access.RawIdentity{
		ID:       rep.ID,
		Username: rep.Username,
		RoleCode: rep.RoleCode(),
		Wilaya:   rep.Wilaya,
	})
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	rep, err := s.store.Representatives.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeError("find representative", err, ErrInvalidCredentials)
	}

	if !rep.IsActive {
		return nil, ErrInactive
	}

	if !rep.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	principal, err := principalOf(rep)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if !principal.HasValidTerritory() && !principal.IsAdmin() {
		logger.Get().Warn("representative logged in with invalid wilaya",
			zap.String("username", rep.Username),
			zap.String("wilaya", rep.Wilaya))
	}

	// Single session: a new token version invalidates earlier tokens
	tokenVersion := uuid.NewString()
	if err := s.store.Representatives.UpdateSession(ctx, rep.ID, tokenVersion); err != nil {
		return nil, storeError("update session", err, nil)
	}

	token, err := jwt.GenerateToken(rep.ID, rep.Username, rep.RoleCode(), rep.Wilaya, rep.GetPrivilegeCodes(), tokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:          token,
		Representative: rep.ToResponse(),
		Principal:      principal,
		TerritoryValid: principal.HasValidTerritory(),
		Privileges:     rep.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, username, oldPassword, newPassword string) error {
	rep, err := s.store.Representatives.FindByUsername(ctx, username)
	if err != nil {
		return storeError("find representative", err, ErrRepresentativeNotFound)
	}

	if !rep.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := rep.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	if err := s.store.Representatives.UpdatePassword(ctx, rep.ID, rep.Password); err != nil {
		return storeError("update password", err, nil)
	}

	// Invalidate existing sessions
	if err := s.store.Representatives.UpdateSession(ctx, rep.ID, uuid.NewString()); err != nil {
		return storeError("update session", err, nil)
	}
	return nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	principal, privileges, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	rep, err := s.store.Representatives.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, storeError("find representative", err, ErrRepresentativeNotFound)
	}

	return &TokenValidationResponse{
		Representative: rep.ToResponse(),
		Principal:      principal,
		TerritoryValid: principal.HasValidTerritory(),
		Privileges:     privileges,
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (access.Principal, []string, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return access.Principal{}, nil, err
	}

	rep, err := s.store.Representatives.FindByID(ctx, claims.RepresentativeID)
	if err != nil {
		return access.Principal{}, nil, storeError("find representative", err, ErrRepresentativeNotFound)
	}

	if !rep.IsActive {
		return access.Principal{}, nil, ErrInactive
	}

	if rep.TokenVersion != claims.TokenVersion {
		return access.Principal{}, nil, ErrSessionReplaced
	}

	principal, err := principalOf(rep)
	if err != nil {
		return access.Principal{}, nil, err
	}
	return principal, rep.GetPrivilegeCodes(), nil
}

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

	"gorm.io/gorm"
)

type ClientService interface {
	ListClients(ctx context.Context, p access.Principal) ([]model.Client, error)
	GetClient(ctx context.Context, p access.Principal, key model.ClientKey) (*model.Client, error)
	CreateClient(ctx context.Context, p access.Principal, req *CreateClientRequest) (*model.Client, error)
}

type CreateClientRequest struct {
	ClientID model.ClientKey `json:"client_id" validate:"required"`
	FullName string          `json:"full_name" validate:"required"`
	City     string          `json:"city"`
	Wilaya   string          `json:"wilaya" validate:"required,wilaya"`
	Phone    string          `json:"phone"`
	Location string          `json:"location"`
}

type clientService struct {
	store *repository.Store
}

func NewClientService(store *repository.Store) ClientService {
	return &clientService{store: store}
}

func (s *clientService) ListClients(ctx context.Context, p access.Principal) ([]model.Client, error) {
	scope, err := access.ResolveClientScope(p)
	if err != nil {
		return nil, err
	}
	clients, err := s.store.Clients.FindAll(ctx, scope)
	if err != nil {
		return nil, storeError("list clients", err, nil)
	}
	return clients, nil
}

// GetClient reports a client of another territory as not found
func (s *clientService) GetClient(ctx context.Context, p access.Principal, key model.ClientKey) (*model.Client, error) {
	scope, err := access.ResolveClientScope(p)
	if err != nil {
		return nil, err
	}
	client, err := s.store.Clients.FindByKey(ctx, key)
	if err != nil {
		return nil, storeError("find client", err, ErrClientNotFound)
	}
	if !scope.AllowsClient(client.Wilaya) {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// CreateClient stores the wilaya in canonical form. A delegate may only
// create clients of their own territory.
func (s *clientService) CreateClient(ctx context.Context, p access.Principal, req *CreateClientRequest) (*model.Client, error) {
	if err := validator.Validate(req); err != nil {
		return nil, validationError(err)
	}
	key, err := model.ParseClientKey(req.ClientID.String())
	if err != nil {
		return nil, validationError(err)
	}
	w, err := territory.Parse(req.Wilaya)
	if err != nil {
		return nil, validationError(err)
	}

	if err := access.CanServe(p, w.String()); err != nil {
		return nil, err
	}

	_, err = s.store.Clients.FindByKey(ctx, key)
	if err == nil {
		return nil, fmt.Errorf("client %s %w", key, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("find client", err, nil)
	}

	client := &model.Client{
		ClientID: key.String(),
		FullName: req.FullName,
		City:     req.City,
		Wilaya:   w.String(),
		Phone:    req.Phone,
		Location: req.Location,
	}
	client.CreatedBy = p.ID.String()
	client.UpdatedBy = p.ID.String()

	if err := s.store.Clients.Create(ctx, client); err != nil {
		return nil, storeError("create client", err, nil)
	}
	return client, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/metrics"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/report"
	"go-sales-territory/internal/repository"
	"go-sales-territory/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// SaleNotifier pushes a committed sale to live subscribers
type SaleNotifier interface {
	NotifySale(representativeID uuid.UUID, payload []byte)
}

// SaleEventPublisher emits a committed sale to the event stream
type SaleEventPublisher interface {
	PublishSaleRecorded(ctx context.Context, event *model.SaleRecordedEvent) error
}

type SaleService interface {
	// RecordSale admits a sale of pack to the client identified by key. The
	// client lookup, territory check, price snapshot and insert run in one
	// transaction: either the sale row exists with its price or nothing does.
	RecordSale(ctx context.Context, p access.Principal, key model.ClientKey, packID uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, p access.Principal) ([]model.Sale, error)
	GetSale(ctx context.Context, p access.Principal, id uuid.UUID) (*model.Sale, error)
	ExportSales(ctx context.Context, p access.Principal) ([]byte, error)
}

type saleService struct {
	store     *repository.Store
	notifier  SaleNotifier
	publisher SaleEventPublisher
}

// NewSaleService accepts nil notifier or publisher.
func NewSaleService(store *repository.Store, notifier SaleNotifier, publisher SaleEventPublisher) SaleService {
	return &saleService{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
	}
}

func (s *saleService) RecordSale(ctx context.Context, p access.Principal, key model.ClientKey, packID uuid.UUID) (*model.Sale, error) {
	if p.ID == uuid.Nil {
		return nil, validationError(errors.New("representative is required"))
	}
	if key == "" {
		return nil, validationError(model.ErrInvalidClientKey)
	}
	if packID == uuid.Nil {
		return nil, validationError(errors.New("pack_id is required"))
	}

	var (
		sale   *model.Sale
		client *model.Client
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		client, err = tx.Clients.FindByKeyForUpdate(ctx, key)
		if err != nil {
			return storeError("find client", err, ErrClientNotFound)
		}

		if err := access.CanServe(p, client.Wilaya); err != nil {
			return err
		}

		// Pack and articles are read unlocked. All article prices come from one
		// statement, so the total matches a single committed catalog state.
		pack, err := tx.Catalog.FindPackByID(ctx, packID)
		if err != nil {
			return storeError("find pack", err, ErrPackNotFound)
		}

		total, err := pack.Price()
		if err != nil {
			return validationError(err)
		}

		sale = &model.Sale{
			ClientKey:        client.ClientID,
			RepresentativeID: p.ID,
			PackID:           pack.ID,
			TotalPrice:       total,
		}
		sale.CreatedBy = p.ID.String()
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return storeError("create sale", err, nil)
		}
		return nil
	})
	if err != nil {
		err = classify("record sale", err)
		metrics.SalesRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		logger.Get().Info("sale rejected",
			zap.String("username", p.Username),
			zap.String("client_id", key.String()),
			zap.String("pack_id", packID.String()),
			zap.Error(err))
		return nil, err
	}

	metrics.SalesRecordedTotal.Inc()
	metrics.SalesRevenueCentimesTotal.Add(float64(sale.TotalPrice))
	logger.Get().Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("username", p.Username),
		zap.String("client_id", sale.ClientKey),
		zap.Int64("total_price", sale.TotalPrice))

	s.announce(p, sale, client)
	return sale, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, access.ErrTerritoryMismatch):
		return "territory_mismatch"
	case errors.Is(err, access.ErrScopeUnresolved):
		return "scope_unresolved"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	}
	return "store"
}

// announce runs after commit only, so a rolled back sale is never published
func (s *saleService) announce(p access.Principal, sale *model.Sale, client *model.Client) {
	if s.notifier != nil {
		payload := map[string]interface{}{
			"type":   "sale_recorded",
			"action": "sale_created",
			"sale": map[string]interface{}{
				"id":          sale.ID,
				"client_id":   sale.ClientKey,
				"client_name": client.FullName,
				"wilaya":      client.Wilaya,
				"pack_id":     sale.PackID,
				"total_price": sale.TotalPrice,
			},
			"user": map[string]interface{}{
				"id":       p.ID,
				"username": p.Username,
			},
			"message": fmt.Sprintf("%s sold to %s for %s DZD", p.Username, client.FullName, report.FormatDZD(sale.TotalPrice)),
		}
		msg, err := json.Marshal(payload)
		if err == nil {
			s.notifier.NotifySale(sale.RepresentativeID, msg)
		}
	}

	if s.publisher != nil {
		event := model.NewSaleRecordedEvent(sale, client.Wilaya)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := s.publisher.PublishSaleRecorded(ctx, event); err != nil {
				logger.Get().Error("failed to publish sale event",
					zap.String("sale_id", event.SaleID.String()),
					zap.Error(err))
			}
		}()
	}
}

func (s *saleService) ListSales(ctx context.Context, p access.Principal) ([]model.Sale, error) {
	sales, err := s.store.Sales.FindAll(ctx, access.ResolveSaleScope(p))
	if err != nil {
		return nil, storeError("list sales", err, nil)
	}
	return sales, nil
}

// GetSale reports a sale outside the caller's scope as not found
func (s *saleService) GetSale(ctx context.Context, p access.Principal, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.store.Sales.FindByID(ctx, id, access.ResolveSaleScope(p))
	if err != nil {
		return nil, storeError("find sale", err, ErrSaleNotFound)
	}
	return sale, nil
}

func (s *saleService) ExportSales(ctx context.Context, p access.Principal) ([]byte, error) {
	sales, err := s.ListSales(ctx, p)
	if err != nil {
		return nil, err
	}
	data, err := report.SalesWorkbook(sales)
	if err != nil {
		return nil, fmt.Errorf("render sales workbook: %w", err)
	}
	return data, nil
}

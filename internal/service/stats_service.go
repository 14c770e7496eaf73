package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/metrics"
	"go-sales-territory/internal/repository"
	"go-sales-territory/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMovementDays = 7
	MaxMovementDays     = 365
)

type StatsService interface {
	// PersonalStatistics fails as a whole when the client scope cannot be
	// resolved; it never returns a partial result.
	PersonalStatistics(ctx context.Context, p access.Principal) (*PersonalStats, error)
	SalesSummary(ctx context.Context, p access.Principal) (*repository.SalesSummary, error)
	TerritoryClientCount(ctx context.Context, p access.Principal) (int64, error)
	SalesMovement(ctx context.Context, p access.Principal, days int) ([]MovementPoint, error)
	DelegateBreakdown(ctx context.Context, p access.Principal) (*DelegateBreakdown, error)
}

// PersonalStats amounts are in centimes
type PersonalStats struct {
	SalesCount           int64 `json:"sales_count"`
	RevenueTotal         int64 `json:"revenue_total"`
	TerritoryClientCount int64 `json:"territory_client_count"`
}

type MovementPoint struct {
	Date       string `json:"date"`
	SalesCount int64  `json:"sales_count"`
	Revenue    int64  `json:"revenue"`
}

type DelegateStats struct {
	RepresentativeID uuid.UUID `json:"representative_id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	Wilaya           string    `json:"wilaya"`
	SalesCount       int64     `json:"sales_count"`
	RevenueTotal     int64     `json:"revenue_total"`
}

type DelegateBreakdown struct {
	Delegates    []DelegateStats `json:"delegates"`
	SalesCount   int64           `json:"sales_count"`
	RevenueTotal int64           `json:"revenue_total"`
}

type statsService struct {
	store *repository.Store
	now   func() time.Time
}

func NewStatsService(store *repository.Store) StatsService {
	return &statsService{store: store, now: time.Now}
}

func (s *statsService) clientScope(p access.Principal) (access.ClientScope, error) {
	scope, err := access.ResolveClientScope(p)
	if errors.Is(err, access.ErrScopeUnresolved) {
		metrics.ScopeUnresolvedTotal.Inc()
		logger.Get().Warn("client scope unresolved",
			zap.String("username", p.Username),
			zap.String("wilaya", p.RawTerritory))
	}
	return scope, err
}

func (s *statsService) PersonalStatistics(ctx context.Context, p access.Principal) (*PersonalStats, error) {
	clientScope, err := s.clientScope(p)
	if err != nil {
		return nil, err
	}
	saleScope := access.ResolveSaleScope(p)

	var stats PersonalStats
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		summary, err := tx.Sales.Summary(ctx, saleScope)
		if err != nil {
			return storeError("sales summary", err, nil)
		}
		count, err := tx.Clients.Count(ctx, clientScope)
		if err != nil {
			return storeError("count clients", err, nil)
		}
		stats = PersonalStats{
			SalesCount:           summary.SalesCount,
			RevenueTotal:         summary.RevenueTotal,
			TerritoryClientCount: count,
		}
		return nil
	})
	if err != nil {
		return nil, classify("personal statistics", err)
	}
	return &stats, nil
}

// SalesSummary depends on identity only and succeeds whatever the
// representative's wilaya.
func (s *statsService) SalesSummary(ctx context.Context, p access.Principal) (*repository.SalesSummary, error) {
	summary, err := s.store.Sales.Summary(ctx, access.ResolveSaleScope(p))
	if err != nil {
		return nil, storeError("sales summary", err, nil)
	}
	return summary, nil
}

func (s *statsService) TerritoryClientCount(ctx context.Context, p access.Principal) (int64, error) {
	scope, err := s.clientScope(p)
	if err != nil {
		return 0, err
	}
	count, err := s.store.Clients.Count(ctx, scope)
	if err != nil {
		return 0, storeError("count clients", err, nil)
	}
	return count, nil
}

// SalesMovement returns one point per calendar day, oldest first, today
// included. Days without sales are present with zero values.
func (s *statsService) SalesMovement(ctx context.Context, p access.Principal, days int) ([]MovementPoint, error) {
	if days <= 0 {
		days = DefaultMovementDays
	}
	if days > MaxMovementDays {
		days = MaxMovementDays
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(days - 1))

	amounts, err := s.store.Sales.FindAmountsSince(ctx, access.ResolveSaleScope(p), since)
	if err != nil {
		return nil, storeError("sales movement", err, nil)
	}

	points := make([]MovementPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		points[i].Date = date
		index[date] = i
	}
	for _, a := range amounts {
		i, ok := index[a.CreatedAt.In(now.Location()).Format("2006-01-02")]
		if !ok {
			continue
		}
		points[i].SalesCount++
		points[i].Revenue += a.TotalPrice
	}
	return points, nil
}

func (s *statsService) DelegateBreakdown(ctx context.Context, p access.Principal) (*DelegateBreakdown, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	var breakdown DelegateBreakdown
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		totals, err := tx.Sales.TotalsByRepresentative(ctx)
		if err != nil {
			return storeError("totals by representative", err, nil)
		}
		reps, err := tx.Representatives.FindAll(ctx)
		if err != nil {
			return storeError("list representatives", err, nil)
		}

		byID := make(map[uuid.UUID]*DelegateStats, len(reps))
		for _, rep := range reps {
			byID[rep.ID] = &DelegateStats{
				RepresentativeID: rep.ID,
				Username:         rep.Username,
				FullName:         rep.FullName,
				Wilaya:           rep.Wilaya,
			}
		}
		for _, t := range totals {
			ds, ok := byID[t.RepresentativeID]
			if !ok {
				// sales of a since deleted representative still count
				ds = &DelegateStats{RepresentativeID: t.RepresentativeID}
				byID[t.RepresentativeID] = ds
			}
			ds.SalesCount = t.SalesCount
			ds.RevenueTotal = t.RevenueTotal
			breakdown.SalesCount += t.SalesCount
			breakdown.RevenueTotal += t.RevenueTotal
		}

		breakdown.Delegates = make([]DelegateStats, 0, len(byID))
		for _, ds := range byID {
			breakdown.Delegates = append(breakdown.Delegates, *ds)
		}
		sort.Slice(breakdown.Delegates, func(i, j int) bool {
			a, b := breakdown.Delegates[i], breakdown.Delegates[j]
			if a.RevenueTotal != b.RevenueTotal {
				return a.RevenueTotal > b.RevenueTotal
			}
			return a.Username < b.Username
		})
		return nil
	})
	if err != nil {
		return nil, classify("delegate breakdown", err)
	}
	return &breakdown, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalStatistics(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewStatsService(f.store)

	karim := testhelpers.CreateRepresentative(t, f.store, "karim", model.RoleDelegate, "batna")
	other := testhelpers.CreateClient(t, f.store, "2363", "Batna")

	testhelpers.CreateSale(t, f.store, f.ramzis, f.batna, f.pack, 1000)
	testhelpers.CreateSale(t, f.store, f.ramzis, other, f.pack, 500)
	testhelpers.CreateSale(t, f.store, karim, f.batna, f.pack, 250)
	testhelpers.CreateSale(t, f.store, f.setif, f.setifCli, f.pack, 4000)

	t.Run("delegates of one territory share clients, not sales", func(t *testing.T) {
		mine, err := svc.PersonalStatistics(ctx, principal(t, f.ramzis))
		require.NoError(t, err)
		assert.Equal(t, int64(2), mine.SalesCount)
		assert.Equal(t, int64(1500), mine.RevenueTotal)
		assert.Equal(t, int64(2), mine.TerritoryClientCount)

		theirs, err := svc.PersonalStatistics(ctx, principal(t, karim))
		require.NoError(t, err)
		assert.Equal(t, int64(1), theirs.SalesCount)
		assert.Equal(t, int64(250), theirs.RevenueTotal)
		assert.Equal(t, mine.TerritoryClientCount, theirs.TerritoryClientCount)
	})

	t.Run("admin sees everything regardless of own wilaya", func(t *testing.T) {
		stats, err := svc.PersonalStatistics(ctx, principal(t, f.admin))
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.SalesCount)
		assert.Equal(t, int64(5750), stats.RevenueTotal)
		assert.Equal(t, int64(3), stats.TerritoryClientCount)

		stray := testhelpers.CreateRepresentative(t, f.store, "root", model.RoleAdmin, "nowhere")
		same, err := svc.PersonalStatistics(ctx, principal(t, stray))
		require.NoError(t, err)
		assert.Equal(t, stats, same)
	})

	t.Run("invalid territory fails whole, sales summary still works", func(t *testing.T) {
		ghost := testhelpers.CreateRepresentative(t, f.store, "ghost", model.RoleDelegate, "Unknown")
		testhelpers.CreateSale(t, f.store, ghost, f.batna, f.pack, 70)
		p := principal(t, ghost)

		stats, err := svc.PersonalStatistics(ctx, p)
		assert.ErrorIs(t, err, access.ErrScopeUnresolved)
		assert.Nil(t, stats)

		_, err = svc.TerritoryClientCount(ctx, p)
		assert.ErrorIs(t, err, access.ErrScopeUnresolved)

		summary, err := svc.SalesSummary(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.SalesCount)
		assert.Equal(t, int64(70), summary.RevenueTotal)
	})

	t.Run("no sales yields zeros", func(t *testing.T) {
		idle := testhelpers.CreateRepresentative(t, f.store, "idle", model.RoleDelegate, "Oran")
		stats, err := svc.PersonalStatistics(ctx, principal(t, idle))
		require.NoError(t, err)
		assert.Equal(t, PersonalStats{}, *stats)
	})
}

func TestTerritoryClientCount(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewStatsService(f.store)

	n, err := svc.TerritoryClientCount(ctx, principal(t, f.ramzis))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.TerritoryClientCount(ctx, principal(t, f.admin))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSalesMovement(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewStatsService(f.store).(*statsService)
	testhelpers.CreateSale(t, f.store, f.ramzis, f.batna, f.pack, 300)
	testhelpers.CreateSale(t, f.store, f.ramzis, f.batna, f.pack, 200)
	testhelpers.CreateSale(t, f.store, f.setif, f.setifCli, f.pack, 900)

	points, err := svc.SalesMovement(ctx, principal(t, f.ramzis), 7)
	require.NoError(t, err)
	require.Len(t, points, 7)
	today := points[6]
	assert.Equal(t, time.Now().Format("2006-01-02"), today.Date)
	assert.Equal(t, int64(2), today.SalesCount)
	assert.Equal(t, int64(500), today.Revenue)
	for _, pt := range points[:6] {
		assert.Zero(t, pt.SalesCount)
	}

	points, err = svc.SalesMovement(ctx, principal(t, f.admin), 0)
	require.NoError(t, err)
	require.Len(t, points, DefaultMovementDays)
	assert.Equal(t, int64(1400), points[DefaultMovementDays-1].Revenue)

	points, err = svc.SalesMovement(ctx, principal(t, f.admin), 10000)
	require.NoError(t, err)
	assert.Len(t, points, MaxMovementDays)
}

func TestDelegateBreakdown(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewStatsService(f.store)
	testhelpers.CreateSale(t, f.store, f.ramzis, f.batna, f.pack, 300)
	testhelpers.CreateSale(t, f.store, f.setif, f.setifCli, f.pack, 900)
	testhelpers.CreateSale(t, f.store, f.setif, f.setifCli, f.pack, 100)

	_, err := svc.DelegateBreakdown(ctx, principal(t, f.ramzis))
	assert.ErrorIs(t, err, ErrAdminOnly)

	breakdown, err := svc.DelegateBreakdown(ctx, principal(t, f.admin))
	require.NoError(t, err)
	assert.Equal(t, int64(3), breakdown.SalesCount)
	assert.Equal(t, int64(1300), breakdown.RevenueTotal)
	require.Len(t, breakdown.Delegates, 3)

	assert.Equal(t, "nadia", breakdown.Delegates[0].Username)
	assert.Equal(t, int64(1000), breakdown.Delegates[0].RevenueTotal)
	assert.Equal(t, "ramzis", breakdown.Delegates[1].Username)
	assert.Equal(t, "admin", breakdown.Delegates[2].Username)
	assert.Zero(t, breakdown.Delegates[2].SalesCount)

	var sum int64
	for _, d := range breakdown.Delegates {
		sum += d.RevenueTotal
		assert.NotEqual(t, uuid.Nil, d.RepresentativeID)
	}
	assert.Equal(t, breakdown.RevenueTotal, sum)
}

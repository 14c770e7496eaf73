package service

import (
	"context"
	"testing"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListClients(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewClientService(f.store)

	clients, err := svc.ListClients(ctx, principal(t, f.ramzis))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "2362", clients[0].ClientID)

	clients, err = svc.ListClients(ctx, principal(t, f.admin))
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	ghost := testhelpers.CreateRepresentative(t, f.store, "ghost", model.RoleDelegate, "")
	_, err = svc.ListClients(ctx, principal(t, ghost))
	assert.ErrorIs(t, err, access.ErrScopeUnresolved)
}

func TestGetClient(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewClientService(f.store)

	client, err := svc.GetClient(ctx, principal(t, f.ramzis), "2362")
	require.NoError(t, err)
	assert.Equal(t, "Batna", client.Wilaya)

	_, err = svc.GetClient(ctx, principal(t, f.ramzis), "4100")
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = svc.GetClient(ctx, principal(t, f.admin), "4100")
	assert.NoError(t, err)

	_, err = svc.GetClient(ctx, principal(t, f.admin), "0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNonCanonicalClientWilaya(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	clients := NewClientService(f.store)
	stats := NewStatsService(f.store)
	sales := NewSaleService(f.store, nil, nil)
	p := principal(t, f.ramzis)

	testhelpers.CreateClient(t, f.store, "7000", "BATNA")

	visible := func() (listed bool, count int64, getErr, saleErr error) {
		list, err := clients.ListClients(ctx, p)
		require.NoError(t, err)
		for _, c := range list {
			if c.ClientID == "7000" {
				listed = true
			}
		}
		count, err = stats.TerritoryClientCount(ctx, p)
		require.NoError(t, err)
		_, getErr = clients.GetClient(ctx, p, "7000")
		_, saleErr = sales.RecordSale(ctx, p, "7000", f.pack.ID)
		return listed, count, getErr, saleErr
	}

	t.Run("hidden from reads and refused for writes", func(t *testing.T) {
		listed, count, getErr, saleErr := visible()
		assert.False(t, listed)
		assert.Equal(t, int64(1), count)
		assert.ErrorIs(t, getErr, ErrClientNotFound)
		assert.ErrorIs(t, saleErr, access.ErrTerritoryMismatch)
		assert.Equal(t, int64(0), testhelpers.CountSales(t, f.store))
	})

	t.Run("served once the wilaya is repaired", func(t *testing.T) {
		_, err := AuditTerritories(ctx, f.store, true)
		require.NoError(t, err)

		listed, count, getErr, saleErr := visible()
		assert.True(t, listed)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, getErr)
		assert.NoError(t, saleErr)
		assert.Equal(t, int64(1), testhelpers.CountSales(t, f.store))
	})
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture(t)
	svc := NewClientService(f.store)

	t.Run("wilaya is stored canonical", func(t *testing.T) {
		client, err := svc.CreateClient(ctx, principal(t, f.admin), &CreateClientRequest{
			ClientID: " 5001 ",
			FullName: "Pharmacie El Amel",
			Wilaya:   "sétif",
		})
		require.NoError(t, err)
		assert.Equal(t, "5001", client.ClientID)
		assert.Equal(t, "Setif", client.Wilaya)
		assert.Equal(t, f.admin.ID.String(), client.CreatedBy)
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, principal(t, f.admin), &CreateClientRequest{
			ClientID: "2362",
			FullName: "Duplicate",
			Wilaya:   "Batna",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown wilaya", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, principal(t, f.admin), &CreateClientRequest{
			ClientID: "7000",
			FullName: "Nowhere",
			Wilaya:   "Atlantis",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("delegate limited to own territory", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, principal(t, f.ramzis), &CreateClientRequest{
			ClientID: "7001",
			FullName: "Elsewhere",
			Wilaya:   "Oran",
		})
		assert.ErrorIs(t, err, access.ErrTerritoryMismatch)

		client, err := svc.CreateClient(ctx, principal(t, f.ramzis), &CreateClientRequest{
			ClientID: "7002",
			FullName: "Local",
			Wilaya:   "05",
		})
		require.NoError(t, err)
		assert.Equal(t, "Batna", client.Wilaya)
	})
}

package service

import (
	"context"
	"testing"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/testhelpers"
	"go-sales-territory/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	rep := testhelpers.CreateRepresentative(t, store, "ramzis", model.RoleDelegate, "batna")
	svc := NewAuthService(store)

	res, err := svc.Login(ctx, "ramzis", testhelpers.DefaultPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.TerritoryValid)
	assert.Equal(t, access.RoleDelegate, res.Principal.Role)
	assert.Equal(t, "Batna", res.Principal.Territory.String())
	assert.Contains(t, res.Privileges, "sale:create")
	assert.NotContains(t, res.Privileges, "representative:create")

	claims, err := jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, claims.RepresentativeID)

	_, err = svc.Login(ctx, "ramzis", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithInvalidTerritory(t *testing.T) {
	store := testhelpers.NewTestStore(t)
	testhelpers.CreateRepresentative(t, store, "ghost", model.RoleDelegate, "Unknown")

	res, err := NewAuthService(store).Login(context.Background(), "ghost", testhelpers.DefaultPassword)
	require.NoError(t, err)
	assert.False(t, res.TerritoryValid)
	assert.Equal(t, "Unknown", res.Principal.RawTerritory)
}

func TestLoginInactive(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	rep := testhelpers.CreateRepresentative(t, store, "ramzis", model.RoleDelegate, "Batna")
	rep.IsActive = false
	require.NoError(t, store.Representatives.Update(ctx, rep))

	_, err := NewAuthService(store).Login(ctx, "ramzis", testhelpers.DefaultPassword)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	rep := testhelpers.CreateRepresentative(t, store, "ramzis", model.RoleDelegate, "Batna")
	svc := NewAuthService(store)

	first, err := svc.Login(ctx, "ramzis", testhelpers.DefaultPassword)
	require.NoError(t, err)

	p, privileges, err := svc.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, p.ID)
	assert.Contains(t, privileges, "dashboard:view")

	t.Run("territory is reread from the store", func(t *testing.T) {
		require.NoError(t, store.Representatives.UpdateWilaya(ctx, rep.ID, "Setif"))
		p, _, err := svc.Authenticate(ctx, first.Token)
		require.NoError(t, err)
		assert.Equal(t, "Setif", p.Territory.String())
	})

	t.Run("second login replaces the session", func(t *testing.T) {
		second, err := svc.Login(ctx, "ramzis", testhelpers.DefaultPassword)
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, first.Token)
		assert.ErrorIs(t, err, ErrSessionReplaced)

		_, _, err = svc.Authenticate(ctx, second.Token)
		assert.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	testhelpers.CreateRepresentative(t, store, "admin", model.RoleAdmin, "Alger")
	svc := NewAuthService(store)

	res, err := svc.Login(ctx, "admin", testhelpers.DefaultPassword)
	require.NoError(t, err)

	v, err := svc.ValidateToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", v.Representative.Username)
	assert.True(t, v.Principal.IsAdmin())
	assert.Contains(t, v.Privileges, "representative:create")
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	testhelpers.CreateRepresentative(t, store, "ramzis", model.RoleDelegate, "Batna")
	svc := NewAuthService(store)

	res, err := svc.Login(ctx, "ramzis", testhelpers.DefaultPassword)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, "ramzis", "wrong", "newpass99")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ResetPassword(ctx, "ramzis", testhelpers.DefaultPassword, "newpass99"))

	_, _, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)

	_, err = svc.Login(ctx, "ramzis", "newpass99")
	assert.NoError(t, err)

	err = svc.ResetPassword(ctx, "nobody", "x", "newpass99")
	assert.ErrorIs(t, err, ErrRepresentativeNotFound)
}

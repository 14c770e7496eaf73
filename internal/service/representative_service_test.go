package service

import (
	"context"
	"testing"

	"go-sales-territory/internal/model"
	"go-sales-territory/internal/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepresentativeAdministration(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	svc := NewRepresentativeService(store)
	admin := principal(t, testhelpers.CreateRepresentative(t, store, "admin", model.RoleAdmin, "Alger"))
	delegate := principal(t, testhelpers.CreateRepresentative(t, store, "ramzis", model.RoleDelegate, "Batna"))

	created, err := svc.CreateRepresentative(ctx, admin, &CreateRepresentativeRequest{
		Username: "nadia",
		Password: "secret99",
		FullName: "Nadia B.",
		Wilaya:   "setif",
		RoleCode: model.RoleDelegate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Setif", created.Wilaya)
	require.NotNil(t, created.Role)
	assert.Equal(t, model.RoleDelegate, created.Role.Code)
	assert.Contains(t, created.Privileges, "sale:create")

	t.Run("only admins administer", func(t *testing.T) {
		_, err := svc.GetAllRepresentatives(ctx, delegate)
		assert.ErrorIs(t, err, ErrAdminOnly)

		_, err = svc.CreateRepresentative(ctx, delegate, &CreateRepresentativeRequest{})
		assert.ErrorIs(t, err, ErrAdminOnly)

		assert.ErrorIs(t, svc.DeleteRepresentative(ctx, delegate, created.ID), ErrAdminOnly)
	})

	t.Run("wilaya outside the enumeration is refused", func(t *testing.T) {
		_, err := svc.CreateRepresentative(ctx, admin, &CreateRepresentativeRequest{
			Username: "lost",
			Password: "secret99",
			FullName: "Lost",
			Wilaya:   "Unknown",
			RoleCode: model.RoleDelegate,
		})
		assert.ErrorIs(t, err, ErrValidation)

		bad := "Bat"
		_, err = svc.UpdateRepresentative(ctx, admin, created.ID, &UpdateRepresentativeRequest{Wilaya: &bad})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateRepresentative(ctx, admin, &CreateRepresentativeRequest{
			Username: "ramzis",
			Password: "secret99",
			FullName: "Again",
			Wilaya:   "Batna",
			RoleCode: model.RoleDelegate,
		})
		assert.ErrorIs(t, err, ErrUsernameExists)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("partial update", func(t *testing.T) {
		wilaya := "16"
		role := model.RoleAdmin
		updated, err := svc.UpdateRepresentative(ctx, admin, created.ID, &UpdateRepresentativeRequest{
			Wilaya:   &wilaya,
			RoleCode: &role,
		})
		require.NoError(t, err)
		assert.Equal(t, "Alger", updated.Wilaya)
		assert.Equal(t, model.RoleAdmin, updated.Role.Code)
		assert.Equal(t, "Nadia B.", updated.FullName)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.DeleteRepresentative(ctx, admin, admin.ID)
		assert.ErrorIs(t, err, ErrValidation)

		require.NoError(t, svc.DeleteRepresentative(ctx, admin, created.ID))
		_, err = svc.GetRepresentativeByID(ctx, admin, created.ID)
		assert.ErrorIs(t, err, ErrRepresentativeNotFound)

		err = svc.DeleteRepresentative(ctx, admin, uuid.New())
		assert.ErrorIs(t, err, ErrRepresentativeNotFound)
	})

	all, err := svc.GetAllRepresentatives(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	roles, err := svc.GetAllRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	privileges, err := svc.GetAllPrivileges(ctx)
	require.NoError(t, err)
	assert.Len(t, privileges, len(model.DefaultPrivileges))
}

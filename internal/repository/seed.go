package repository

import (
	"context"
	"errors"

	"go-sales-territory/internal/model"

	"gorm.io/gorm"
)

// SeedAccessControl creates the default privileges and roles and grants them:
// ADMIN gets every privilege, DELEGATE the model.DelegatePrivileges subset.
// Roles that already carry privileges are left alone.
func SeedAccessControl(ctx context.Context, s *Store) error {
	if err := s.Privileges.SeedDefaults(ctx); err != nil {
		return err
	}
	if err := s.Roles.SeedDefaults(ctx); err != nil {
		return err
	}

	allPrivileges, err := s.Privileges.FindAll(ctx)
	if err != nil {
		return err
	}

	adminRole, err := s.Roles.FindByCode(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if len(adminRole.Privileges) == 0 {
		if err := s.Roles.AssignPrivileges(ctx, adminRole, allPrivileges); err != nil {
			return err
		}
	}

	delegateRole, err := s.Roles.FindByCode(ctx, model.RoleDelegate)
	if err != nil {
		return err
	}
	if len(delegateRole.Privileges) == 0 {
		delegatePrivileges, err := s.Privileges.FindByCodes(ctx, model.DelegatePrivileges)
		if err != nil {
			return err
		}
		if err := s.Roles.AssignPrivileges(ctx, delegateRole, delegatePrivileges); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator when no representative with
// that username exists. It reports whether one was created.
func EnsureAdmin(ctx context.Context, s *Store, username, password, wilaya string) (bool, error) {
	_, err := s.Representatives.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	role, err := s.Roles.FindByCode(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}

	admin := &model.Representative{
		Username: username,
		FullName: "Administrator",
		Wilaya:   wilaya,
		RoleID:   &role.ID,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(password); err != nil {
		return false, err
	}
	if err := s.Representatives.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

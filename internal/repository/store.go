package repository

import (
	"context"

	"go-sales-territory/internal/access"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups the repositories sharing one gorm handle, so a service can run
// several of them inside a single transaction.
type Store struct {
	db *gorm.DB

	Representatives RepresentativeRepository
	Roles           RoleRepository
	Privileges      PrivilegeRepository
	Clients         ClientRepository
	Catalog         CatalogRepository
	Sales           SaleRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:              db,
		Representatives: NewRepresentativeRepo(db),
		Roles:           NewRoleRepo(db),
		Privileges:      NewPrivilegeRepo(db),
		Clients:         NewClientRepo(db),
		Catalog:         NewCatalogRepo(db),
		Sales:           NewSaleRepo(db),
	}
}

// DB returns the underlying gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates the schema for every model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// forUpdate takes a row lock where the dialect has one. SQLite locks the
// whole database for a write transaction instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func clientScope(s access.ClientScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.All {
			return db
		}
		return db.Where("clients.wilaya = ?", s.Wilaya.String())
	}
}

func saleScope(s access.SaleScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.All {
			return db
		}
		return db.Where("sales.representative_id = ?", s.RepresentativeID)
	}
}

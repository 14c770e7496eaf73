// Package testhelpers builds isolated databases and fixtures for tests.
package testhelpers

import (
	"context"
	"testing"

	"go-sales-territory/internal/model"
	"go-sales-territory/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPassword is the password of every fixture representative.
const DefaultPassword = "secret123"

// NewTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database alive for the whole test.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(tb, err)

	sqlDB, err := db.DB()
	require.NoError(tb, err)
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(tb, repository.AutoMigrate(db))
	return db
}

// NewTestStore returns a Store on a fresh database with roles and privileges seeded.
func NewTestStore(tb testing.TB) *repository.Store {
	tb.Helper()

	store := repository.NewStore(NewTestDB(tb))
	require.NoError(tb, repository.SeedAccessControl(context.Background(), store))
	return store
}

// CreateRepresentative stores a representative with the raw wilaya value given,
// bypassing validation so that legacy placeholders can be reproduced.
func CreateRepresentative(tb testing.TB, store *repository.Store, username, roleCode, wilaya string) *model.Representative {
	tb.Helper()
	ctx := context.Background()

	role, err := store.Roles.FindByCode(ctx, roleCode)
	require.NoError(tb, err)

	rep := &model.Representative{
		Username: username,
		FullName: username,
		Wilaya:   wilaya,
		RoleID:   &role.ID,
		IsActive: true,
	}
	require.NoError(tb, rep.SetPassword(DefaultPassword))
	require.NoError(tb, store.Representatives.Create(ctx, rep))

	loaded, err := store.Representatives.FindByID(ctx, rep.ID)
	require.NoError(tb, err)
	return loaded
}

func CreateClient(tb testing.TB, store *repository.Store, key, wilaya string) *model.Client {
	tb.Helper()

	client := &model.Client{
		ClientID: key,
		FullName: "Client " + key,
		City:     wilaya,
		Wilaya:   wilaya,
	}
	require.NoError(tb, store.Clients.Create(context.Background(), client))
	return client
}

func CreateArticle(tb testing.TB, store *repository.Store, name string, price int64) *model.Article {
	tb.Helper()

	article := &model.Article{Name: name, Price: price}
	require.NoError(tb, store.Catalog.CreateArticle(context.Background(), article))
	return article
}

// CreatePack stores a pack holding each article with the matching quantity.
func CreatePack(tb testing.TB, store *repository.Store, name string, articles []*model.Article, quantities []int) *model.Pack {
	tb.Helper()
	require.Len(tb, quantities, len(articles))

	pack := &model.Pack{Name: name}
	for i, a := range articles {
		pack.Items = append(pack.Items, model.PackItem{ArticleID: a.ID, Quantity: quantities[i]})
	}
	require.NoError(tb, store.Catalog.CreatePack(context.Background(), pack))
	return pack
}

// CreateSale inserts a sale row directly, without admission checks.
func CreateSale(tb testing.TB, store *repository.Store, rep *model.Representative, client *model.Client, pack *model.Pack, totalPrice int64) *model.Sale {
	tb.Helper()

	sale := &model.Sale{
		ClientKey:        client.ClientID,
		RepresentativeID: rep.ID,
		PackID:           pack.ID,
		TotalPrice:       totalPrice,
	}
	sale.CreatedBy = rep.ID.String()
	require.NoError(tb, store.Sales.Create(context.Background(), sale))
	return sale
}

// CountSales counts every sale row, ignoring scopes.
func CountSales(tb testing.TB, store *repository.Store) int64 {
	tb.Helper()

	var n int64
	require.NoError(tb, store.DB().Model(&model.Sale{}).Count(&n).Error)
	return n
}

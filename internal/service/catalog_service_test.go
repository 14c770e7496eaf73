package service

import (
	"context"
	"testing"

	"go-sales-territory/internal/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestStore(t)
	svc := NewCatalogService(store)
	admin := principal(t, testhelpers.CreateRepresentative(t, store, "admin", "ADMIN", "Alger"))

	a, err := svc.CreateArticle(ctx, admin, &CreateArticleRequest{Name: "Ibuprofen", Price: 1250})
	require.NoError(t, err)
	b, err := svc.CreateArticle(ctx, admin, &CreateArticleRequest{Name: "Aspirin", Price: 800})
	require.NoError(t, err)

	_, err = svc.CreateArticle(ctx, admin, &CreateArticleRequest{Name: "", Price: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateArticle(ctx, admin, &CreateArticleRequest{Name: "Neg", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateArticle(ctx, admin, &CreateArticleRequest{Name: "Huge", Price: 1 << 62})
	assert.ErrorIs(t, err, ErrValidation)

	articles, err := svc.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Aspirin", articles[0].Name)

	pack, err := svc.CreatePack(ctx, admin, &CreatePackRequest{
		Name: "Winter",
		Items: []PackItemRequest{
			{ArticleID: a.ID, Quantity: 4},
			{ArticleID: b.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4*1250+800), pack.CurrentPrice)
	assert.Len(t, pack.Items, 2)

	t.Run("pack validation", func(t *testing.T) {
		_, err := svc.CreatePack(ctx, admin, &CreatePackRequest{Name: "Empty"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreatePack(ctx, admin, &CreatePackRequest{
			Name:  "Zero",
			Items: []PackItemRequest{{ArticleID: a.ID, Quantity: 0}},
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreatePack(ctx, admin, &CreatePackRequest{
			Name:  "Bulk",
			Items: []PackItemRequest{{ArticleID: a.ID, Quantity: 100001}},
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreatePack(ctx, admin, &CreatePackRequest{
			Name:  "Twice",
			Items: []PackItemRequest{{ArticleID: a.ID, Quantity: 1}, {ArticleID: a.ID, Quantity: 2}},
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.CreatePack(ctx, admin, &CreatePackRequest{
			Name:  "Ghost",
			Items: []PackItemRequest{{ArticleID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrArticleNotFound)
	})

	t.Run("price change moves the current pack price", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateArticlePrice(ctx, admin, b.ID, 1<<62), ErrValidation)
		require.NoError(t, svc.UpdateArticlePrice(ctx, admin, b.ID, 1000))

		view, err := svc.GetPack(ctx, pack.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4*1250+1000), view.CurrentPrice)

		packs, err := svc.ListPacks(ctx)
		require.NoError(t, err)
		require.Len(t, packs, 1)
		assert.Equal(t, view.CurrentPrice, packs[0].CurrentPrice)
	})

	t.Run("unknown ids", func(t *testing.T) {
		err := svc.UpdateArticlePrice(ctx, admin, uuid.New(), 10)
		assert.ErrorIs(t, err, ErrArticleNotFound)

		err = svc.UpdateArticlePrice(ctx, admin, a.ID, -5)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.GetPack(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrPackNotFound)
	})
}

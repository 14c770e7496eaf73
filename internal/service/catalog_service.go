package service

import (
	"context"
	"errors"
	"fmt"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/repository"
	"go-sales-territory/pkg/logger"
	"go-sales-territory/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
	CreateArticle(ctx context.Context, p access.Principal, req *CreateArticleRequest) (*model.Article, error)
	UpdateArticlePrice(ctx context.Context, p access.Principal, id uuid.UUID, price int64) error
	ListPacks(ctx context.Context) ([]PackView, error)
	GetPack(ctx context.Context, id uuid.UUID) (*PackView, error)
	CreatePack(ctx context.Context, p access.Principal, req *CreatePackRequest) (*PackView, error)
}

// Prices are in centimes
type CreateArticleRequest struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0,lte=1000000000000"`
}

type PackItemRequest struct {
	ArticleID uuid.UUID `json:"article_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gt=0,lte=100000"`
}

type CreatePackRequest struct {
	Name  string            `json:"name" validate:"required"`
	Items []PackItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PackView is a pack with its price at current article prices. A recorded
// sale keeps its own snapshot and may differ.
type PackView struct {
	model.Pack
	CurrentPrice int64 `json:"current_price"`
}

type catalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListArticles(ctx context.Context) ([]model.Article, error) {
	articles, err := s.store.Catalog.FindArticles(ctx)
	if err != nil {
		return nil, storeError("list articles", err, nil)
	}
	return articles, nil
}

func (s *catalogService) CreateArticle(ctx context.Context, p access.Principal, req *CreateArticleRequest) (*model.Article, error) {
	if err := validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	article := &model.Article{Name: req.Name, Price: req.Price}
	article.CreatedBy = p.ID.String()
	article.UpdatedBy = p.ID.String()
	if err := s.store.Catalog.CreateArticle(ctx, article); err != nil {
		return nil, storeError("create article", err, nil)
	}
	return article, nil
}

func (s *catalogService) UpdateArticlePrice(ctx context.Context, p access.Principal, id uuid.UUID, price int64) error {
	if price < 0 || price > model.MaxArticlePrice {
		return validationError(fmt.Errorf("price must be between 0 and %d", model.MaxArticlePrice))
	}
	if err := s.store.Catalog.UpdateArticlePrice(ctx, id, price, p.ID.String()); err != nil {
		return storeError("update article price", err, ErrArticleNotFound)
	}
	logger.Get().Info("article price updated",
		zap.String("article_id", id.String()),
		zap.Int64("price", price),
		zap.String("username", p.Username))
	return nil
}

func packView(pack *model.Pack) PackView {
	// a pack without items, or whose total overflows, shows as zero and cannot be sold
	price, _ := pack.Price()
	return PackView{Pack: *pack, CurrentPrice: price}
}

func (s *catalogService) ListPacks(ctx context.Context) ([]PackView, error) {
	packs, err := s.store.Catalog.FindPacks(ctx)
	if err != nil {
		return nil, storeError("list packs", err, nil)
	}
	views := make([]PackView, len(packs))
	for i := range packs {
		views[i] = packView(&packs[i])
	}
	return views, nil
}

func (s *catalogService) GetPack(ctx context.Context, id uuid.UUID) (*PackView, error) {
	pack, err := s.store.Catalog.FindPackByID(ctx, id)
	if err != nil {
		return nil, storeError("find pack", err, ErrPackNotFound)
	}
	view := packView(pack)
	return &view, nil
}

func (s *catalogService) CreatePack(ctx context.Context, p access.Principal, req *CreatePackRequest) (*PackView, error) {
	if err := validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ArticleID] {
			return nil, validationError(errors.New("article listed twice in pack"))
		}
		seen[item.ArticleID] = true
		ids = append(ids, item.ArticleID)
	}

	var packID uuid.UUID
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		articles, err := tx.Catalog.FindArticlesByIDs(ctx, ids)
		if err != nil {
			return storeError("find articles", err, nil)
		}
		if len(articles) != len(ids) {
			return ErrArticleNotFound
		}

		pack := &model.Pack{Name: req.Name}
		pack.CreatedBy = p.ID.String()
		pack.UpdatedBy = p.ID.String()
		for _, item := range req.Items {
			pack.Items = append(pack.Items, model.PackItem{ArticleID: item.ArticleID, Quantity: item.Quantity})
		}
		if err := tx.Catalog.CreatePack(ctx, pack); err != nil {
			return storeError("create pack", err, nil)
		}
		packID = pack.ID
		return nil
	})
	if err != nil {
		return nil, classify("create pack", err)
	}
	return s.GetPack(ctx, packID)
}

package model

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

// Upper bounds accepted for catalog input. Keep in step with the lte
// validation tags on Article and the catalog requests.
const (
	MaxArticlePrice int64 = 1_000_000_000_000 // centimes, 10 billion DZD
	MaxPackQuantity int   = 100_000
)

var (
	ErrEmptyPack     = errors.New("pack has no articles")
	ErrPriceOverflow = errors.New("pack price overflows")
)

// Pack is a sellable bundle of articles.
type Pack struct {
	BaseModel
	Name  string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Items []PackItem `gorm:"foreignKey:PackID" json:"items"`
}

// PackItem is the pack/article pair with its quantity.
type PackItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PackID    uuid.UUID `gorm:"type:uuid;not null;index" json:"pack_id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null" json:"article_id"`
	Article   *Article  `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// Price sums article price × quantity over the items, using the articles as
// currently loaded. Items must have their Article preloaded.
func (p *Pack) Price() (int64, error) {
	if len(p.Items) == 0 {
		return 0, ErrEmptyPack
	}
	var total int64
	for _, item := range p.Items {
		if item.Article == nil {
			return 0, errors.New("pack item article not loaded")
		}
		price, qty := item.Article.Price, int64(item.Quantity)
		if price < 0 || qty <= 0 {
			return 0, errors.New("pack item has a negative price or no quantity")
		}
		if price > math.MaxInt64/qty {
			return 0, ErrPriceOverflow
		}
		line := price * qty
		if total > math.MaxInt64-line {
			return 0, ErrPriceOverflow
		}
		total += line
	}
	return total, nil
}

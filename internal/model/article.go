package model

// Article is a sellable product. Price is in centimes (1 DZD = 100).
type Article struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price int64  `gorm:"not null;default:0" json:"price" validate:"gte=0,lte=1000000000000"`
}

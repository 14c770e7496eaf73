package model

import "github.com/google/uuid"

// Sale is immutable once recorded. TotalPrice is the pack price snapshotted
// at admission, in centimes; later article price changes do not touch it.
type Sale struct {
	RecordModel
	ClientKey        string          `gorm:"column:client_id;type:varchar(50);not null;index" json:"client_id"` // Client.ClientID
	Client           *Client         `gorm:"foreignKey:ClientKey;references:ClientID" json:"client,omitempty"`
	RepresentativeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"representative_id"`
	Representative   *Representative `gorm:"foreignKey:RepresentativeID" json:"representative,omitempty"`
	PackID           uuid.UUID       `gorm:"type:uuid;not null" json:"pack_id"`
	Pack             *Pack           `gorm:"foreignKey:PackID" json:"pack,omitempty"`
	TotalPrice       int64           `gorm:"not null" json:"total_price"`
}

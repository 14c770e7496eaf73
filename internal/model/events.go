package model

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeSaleRecorded = "SALE_RECORDED"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleRecordedEvent is published once a sale is committed
type SaleRecordedEvent struct {
	BaseEvent
	SaleID           uuid.UUID `json:"sale_id"`
	ClientID         string    `json:"client_id"`
	RepresentativeID uuid.UUID `json:"representative_id"`
	PackID           uuid.UUID `json:"pack_id"`
	TotalPrice       int64     `json:"total_price"`
	Wilaya           string    `json:"wilaya"`
}

func NewSaleRecordedEvent(sale *Sale, wilaya string) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseEvent: BaseEvent{
			EventID:   uuid.NewString(),
			EventType: EventTypeSaleRecorded,
			Timestamp: time.Now().UTC(),
		},
		SaleID:           sale.ID,
		ClientID:         sale.ClientKey,
		RepresentativeID: sale.RepresentativeID,
		PackID:           sale.PackID,
		TotalPrice:       sale.TotalPrice,
		Wilaya:           wilaya,
	}
}

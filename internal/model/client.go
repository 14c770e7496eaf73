package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidClientKey = errors.New("invalid client business key")

// ClientKey is the canonical string form of a client's business key. Keys
// arrive both as "2362" and 2362; they are canonicalized once at the boundary
// and only ever compared as strings.
type ClientKey string

// ParseClientKey trims surrounding whitespace and rejects empty keys. Leading
// zeros are part of the key and are kept.
func ParseClientKey(raw string) (ClientKey, error) {
	k := strings.TrimSpace(raw)
	if k == "" {
		return "", ErrInvalidClientKey
	}
	return ClientKey(k), nil
}

func (k ClientKey) String() string {
	return string(k)
}

// UnmarshalJSON accepts a JSON string or an integral JSON number.
func (k *ClientKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrInvalidClientKey
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseClientKey(s)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidClientKey
	}
	*k = ClientKey(strconv.FormatInt(n, 10))
	return nil
}

// Client belongs to a territory, not to an individual representative.
type Client struct {
	BaseModel
	ClientID string `gorm:"column:client_id;type:varchar(50);uniqueIndex;not null" json:"client_id" validate:"required"`
	FullName string `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	Wilaya   string `gorm:"type:varchar(100);index;not null" json:"wilaya" validate:"required,wilaya"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Location string `gorm:"type:varchar(255)" json:"location"`
}

// Key returns the canonical business key.
func (c *Client) Key() ClientKey {
	return ClientKey(strings.TrimSpace(c.ClientID))
}

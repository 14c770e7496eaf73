package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientKeyAcceptsStringAndNumber(t *testing.T) {
	var fromString, fromNumber struct {
		Key ClientKey `json:"client_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"client_id":"2362"}`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"client_id":2362}`), &fromNumber))

	assert.Equal(t, ClientKey("2362"), fromString.Key)
	assert.Equal(t, fromString.Key, fromNumber.Key)
}

func TestClientKeyKeepsStringForm(t *testing.T) {
	var v struct {
		Key ClientKey `json:"client_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"client_id":" 02362 "}`), &v))
	assert.Equal(t, ClientKey("02362"), v.Key)
}

func TestClientKeyRejectsBadInput(t *testing.T) {
	for _, body := range []string{`{"client_id":""}`, `{"client_id":"   "}`, `{"client_id":null}`, `{"client_id":23.5}`, `{"client_id":true}`} {
		var v struct {
			Key ClientKey `json:"client_id"`
		}
		assert.Error(t, json.Unmarshal([]byte(body), &v), body)
	}
}

func TestPackPriceSumsItems(t *testing.T) {
	pack := Pack{Items: []PackItem{
		{ArticleID: uuid.New(), Quantity: 2, Article: &Article{Price: 150000}},
		{ArticleID: uuid.New(), Quantity: 3, Article: &Article{Price: 2550}},
	}}

	total, err := pack.Price()
	require.NoError(t, err)
	assert.Equal(t, int64(2*150000+3*2550), total)

	_, err = (&Pack{}).Price()
	assert.ErrorIs(t, err, ErrEmptyPack)
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packOf(prices []int64, quantities []int) *Pack {
	p := &Pack{Name: "test"}
	for i, price := range prices {
		p.Items = append(p.Items, PackItem{Article: &Article{Price: price}, Quantity: quantities[i]})
	}
	return p
}

func TestPackPrice(t *testing.T) {
	total, err := packOf([]int64{25000, 10000}, []int{2, 3}).Price()
	require.NoError(t, err)
	assert.Equal(t, int64(80000), total)

	_, err = (&Pack{}).Price()
	assert.ErrorIs(t, err, ErrEmptyPack)

	_, err = (&Pack{Items: []PackItem{{Quantity: 1}}}).Price()
	assert.Error(t, err)

	_, err = packOf([]int64{-1}, []int{1}).Price()
	assert.Error(t, err)
}

func TestPackPriceOverflow(t *testing.T) {
	_, err := packOf([]int64{1 << 62}, []int{4}).Price()
	assert.ErrorIs(t, err, ErrPriceOverflow)

	_, err = packOf([]int64{math.MaxInt64 - 10, 11}, []int{1, 1}).Price()
	assert.ErrorIs(t, err, ErrPriceOverflow)

	total, err := packOf([]int64{math.MaxInt64 - 10, 10}, []int{1, 1}).Price()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), total)

	total, err = packOf([]int64{MaxArticlePrice}, []int{MaxPackQuantity}).Price()
	require.NoError(t, err)
	assert.Equal(t, MaxArticlePrice*int64(MaxPackQuantity), total)
}

package repository

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%%", likePattern(""))
	assert.Equal(t, "%evil%", likePattern("evil"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, likePattern(`c:\dir`))
}

func TestMatchInvoice(t *testing.T) {
	rec := model.InvoiceRecord{
		Amount: 15795,
		Date:   time.Date(2022, 12, 6, 0, 0, 0, 0, time.UTC),
		Status: model.InvoiceStatusPending,
		Name:   "Evil Rabbit",
		Email:  "evil@rabbit.com",
	}

	for _, q := range []string{"", "evil", "rabbit.com", "157", "2022-12-06", "pend"} {
		assert.True(t, matchInvoice(rec, normalizeQuery(q)), q)
	}
	for _, q := range []string{"paid", "2023", "$157.95", " evil", "rabbit "} {
		assert.False(t, matchInvoice(rec, normalizeQuery(q)), q)
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		n, limit, offset int
		start, end       int
	}{
		{13, 6, 0, 0, 6},
		{13, 6, 12, 12, 13},
		{13, 6, 18, 13, 13},
		{0, 6, 0, 0, 0},
		{5, 6, -1, 0, 5},
		{13, math.MaxInt, 0, 0, 13},
		{13, math.MaxInt, math.MaxInt, 13, 13},
		{13, math.MaxInt, 12, 12, 13},
	}
	for _, tt := range tests {
		start, end := pageBounds(tt.n, tt.limit, tt.offset)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "two-sum", slugify("Two Sum"))
	assert.Equal(t, "lru-cache", slugify("LRU Cache"))
	assert.Equal(t, "best-time-to-buy-and-sell-stock-ii", slugify("Best Time to Buy and Sell Stock II"))
	assert.Equal(t, "3sum", slugify("3Sum"))
	assert.Equal(t, "a-b", slugify("  a  ++  b  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestParsePagination(t *testing.T) {
	page, size := parsePagination("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = parsePagination("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = parsePagination("-1", "500")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = parsePagination("abc", "0")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

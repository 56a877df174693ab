package algoutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	doubled := Map([]int{1, 2, 3}, func(x int) int { return 2 * x })
	assert.Equal(t, []int{2, 4, 6}, doubled)
	assert.Empty(t, Map(nil, func(x int) int { return x }))
}

func TestMapRange(t *testing.T) {
	squares := MapRange(2, 5, func(i int) int { return i * i })
	assert.Equal(t, []int{4, 9, 16}, squares)
}

func TestIndicesSortedBy(t *testing.T) {
	keys := []int{3, 1, 2, 1}
	got := IndicesSortedBy(len(keys), func(i int) int { return keys[i] })
	// equal keys keep their original relative order
	assert.Equal(t, []int{1, 3, 2, 0}, got)
	assert.Empty(t, IndicesSortedBy(0, func(int) int { return 0 }))
}

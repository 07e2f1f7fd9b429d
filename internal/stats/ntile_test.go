package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNtileEvenSplit(t *testing.T) {
	got := Ntile(10, 5)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5}, got)
}

func TestNtileRemainderGoesToFirstBuckets(t *testing.T) {
	// 7 rows over 5 buckets: first two buckets get 2 rows.
	got := Ntile(7, 5)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 4, 5}, got)
}

func TestNtileFewerRowsThanBuckets(t *testing.T) {
	got := Ntile(3, 5)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestNtileSingleRow(t *testing.T) {
	assert.Equal(t, []int{1}, Ntile(1, 5))
}

func TestNtileMonotone(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12, 100, 101, 104} {
		got := Ntile(n, 5)
		assert.Len(t, got, n)
		for i := 1; i < n; i++ {
			assert.GreaterOrEqual(t, got[i], got[i-1], "n=%d position %d", n, i)
		}
		assert.Equal(t, 1, got[0])
	}
}

func TestNtileDegenerateInput(t *testing.T) {
	assert.Nil(t, Ntile(0, 5))
	assert.Nil(t, Ntile(5, 0))
	assert.Nil(t, Ntile(-1, 5))
}

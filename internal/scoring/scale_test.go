package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScaleBounds(t *testing.T) {
	for _, tc := range []struct {
		value, min, max int
		expected        float64
	}{
		{1, 1, 5, 0},
		{5, 1, 5, 100},
		{3, 1, 5, 50},
		{0, 0, 10, 0},
		{10, 0, 10, 100},
		{7, 0, 10, 70},
		{2, 1, 5, 25},
	} {
		got, err := NormalizeScale(tc.value, tc.min, tc.max)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, got, "normalize(%d, %d, %d)", tc.value, tc.min, tc.max)
	}
}

func TestNormalizeScaleRange(t *testing.T) {
	// Every in-range value normalizes into [0,100].
	for min := 0; min < 3; min++ {
		for max := min + 1; max < min+8; max++ {
			for value := min; value <= max; value++ {
				got, err := NormalizeScale(value, min, max)
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}
}

func TestNormalizeScaleDegenerate(t *testing.T) {
	_, err := NormalizeScale(3, 3, 3)
	assert.ErrorIs(t, err, ErrDegenerateScale)

	_, err = NormalizeScale(3, 5, 1)
	assert.ErrorIs(t, err, ErrDegenerateScale)
}

func TestNormalizeScaleIdempotent(t *testing.T) {
	first, err := NormalizeScale(4, 1, 5)
	assert.NoError(t, err)
	second, err := NormalizeScale(4, 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

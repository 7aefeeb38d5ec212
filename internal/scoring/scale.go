// Package scoring implements the rating-scale computation pipeline: raw answers
// are normalized per question, rolled up per section and per attempt, and many
// attempts are aggregated into cohort and student reports. Everything here is
// pure; persistence and permissions live in the service layer.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateScale indicates a question whose scale has min >= max. This is an
// authoring-time configuration error; scoring refuses to divide by the zero span
// instead of producing NaN.
var ErrDegenerateScale = errors.New("scale min must be less than max")

// NormalizeScale rescales a raw answer on a [min,max] integer scale to [0,100].
func NormalizeScale(value, min, max int) (float64, error) {
	if min >= max {
		return 0, fmt.Errorf("normalize value %d on [%d,%d]: %w", value, min, max, ErrDegenerateScale)
	}
	return float64(value-min) / float64(max-min) * 100, nil
}

// round1 rounds to one decimal place. All percentages and ratings are rounded at
// the stage they are produced; downstream averages run over the rounded values.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

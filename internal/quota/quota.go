package quota

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lucasvr/synthetic-mine-maker/internal/random"
)

var (
	ErrInvalidArgument = errors.New("quota: invalid argument")
	ErrDistribution    = errors.New("quota: distribution precondition violated")
)

// Result is an ordered sequence of per-group quotas.
type Result []int

// Sum returns the total of all quotas.
func (r Result) Sum() int {
	total := 0
	for _, v := range r {
		total += v
	}
	return total
}

// SampleCount draws one value in [min, max) and truncates it toward zero.
func SampleCount(src random.Source, min, max float64) (int, error) {
	if err := checkBounds(min, max); err != nil {
		return 0, err
	}
	return int(math.Trunc(random.Uniform(src, min, max))), nil
}

// Distribute samples a total from [min, max) and splits it across groups.
func Distribute(src random.Source, min, max float64, groups int) (Result, error) {
	if groups < 1 {
		return nil, fmt.Errorf("%w: group count %d < 1", ErrInvalidArgument, groups)
	}
	total, err := SampleCount(src, min, max)
	if err != nil {
		return nil, err
	}
	return Split(src, total, groups)
}

// Split divides total across groups. The result always sums to total.
//
// If total >= groups every entry is at least 1. Otherwise the first
// groups-total entries are 0 and the rest are 1.
func Split(src random.Source, total, groups int) (Result, error) {
	if groups < 1 {
		return nil, fmt.Errorf("%w: group count %d < 1", ErrInvalidArgument, groups)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: sampled total %d is negative", ErrInvalidArgument, total)
	}

	excess := groups - total
	working := total
	if excess > 0 {
		working = groups
	}

	parts, err := Partition(src, working, groups)
	if err != nil {
		return nil, err
	}
	if excess > 0 {
		drain(parts, excess)
	}
	return parts, nil
}

// Partition cuts total into groups strictly positive parts.
func Partition(src random.Source, total, groups int) (Result, error) {
	if groups < 1 {
		return nil, fmt.Errorf("%w: group count %d < 1", ErrInvalidArgument, groups)
	}
	if total < groups {
		return nil, fmt.Errorf("%w: total %d cannot give %d groups one unit each", ErrDistribution, total, groups)
	}

	cuts := sampleDistinct(src, total-1, groups-1)
	slices.Sort(cuts)

	parts := make(Result, groups)
	prev := 0
	for i, cut := range cuts {
		parts[i] = cut - prev
		prev = cut
	}
	parts[groups-1] = total - prev
	return parts, nil
}

// sampleDistinct returns k distinct integers from {1, ..., n} using Floyd's
// algorithm. Requires 0 <= k <= n.
func sampleDistinct(src random.Source, n, k int) []int {
	chosen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k + 1; j <= n; j++ {
		t := 1 + src.IntN(j)
		if _, taken := chosen[t]; taken {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// drain removes units one at a time from positive entries, left to right,
// restarting the scan until units have been removed.
func drain(parts Result, units int) {
	removed := 0
	for removed < units {
		for i := range parts {
			if removed == units {
				break
			}
			if parts[i] > 0 {
				parts[i]--
				removed++
			}
		}
	}
}

// MaxBound is the largest bound magnitude accepted. Every integer up to it
// is exact in a float64, so truncated draws convert to int without loss.
const MaxBound = 1 << 53

func checkBounds(min, max float64) error {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return fmt.Errorf("%w: bounds must be finite (min=%v max=%v)", ErrInvalidArgument, min, max)
	}
	if math.Abs(min) > MaxBound || math.Abs(max) > MaxBound {
		return fmt.Errorf("%w: bounds must lie within ±%d (min=%v max=%v)", ErrInvalidArgument, int64(MaxBound), min, max)
	}
	if min > max {
		return fmt.Errorf("%w: min %v > max %v", ErrInvalidArgument, min, max)
	}
	return nil
}

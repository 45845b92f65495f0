// Package solver holds the small search routines used over ordered daily
// samples: bisection for lookups and bracketing for target crossings.
package solver

// CrossingType describes the direction a sampled value moves through a target.
type CrossingType int

const (
	// CrossingUp means the value is increasing through the target.
	CrossingUp CrossingType = iota
	// CrossingDown means the value is decreasing through the target.
	CrossingDown
	// CrossingAny accepts either direction.
	CrossingAny
)

// Bisect returns the smallest index i in [0, n) for which after(i) is true,
// or n if there is none. after must be false for a prefix of the indices
// and true for the rest.
func Bisect(n int, after func(i int) bool) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if after(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Crossing is a bracket [Index, Index+1] of consecutive samples between
// which the value passes through the target.
type Crossing struct {
	Index int
	Type  CrossingType
}

// FindCrossings scans values for brackets where value-target changes sign
// in the direction given by kind. Samples for which valid returns false
// break the scan: no bracket spans them.
func FindCrossings(values []float64, valid func(i int) bool, target float64, kind CrossingType) []Crossing {
	var out []Crossing
	prev := -1
	for i := range values {
		if valid != nil && !valid(i) {
			prev = -1
			continue
		}
		if prev >= 0 {
			a, b := values[prev]-target, values[i]-target
			if hasCrossing(a, b, CrossingUp) && kind != CrossingDown {
				out = append(out, Crossing{Index: prev, Type: CrossingUp})
			} else if hasCrossing(a, b, CrossingDown) && kind != CrossingUp {
				out = append(out, Crossing{Index: prev, Type: CrossingDown})
			}
		}
		prev = i
	}
	return out
}

func hasCrossing(a1, a2 float64, kind CrossingType) bool {
	switch kind {
	case CrossingUp:
		// a1 < 0, a2 >= 0
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		// a1 > 0, a2 <= 0
		return a1 > 0 && a2 <= 0
	default:
		// Generic sign change
		return a1*a2 <= 0
	}
}

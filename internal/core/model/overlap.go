package model

// RangeOverlaps reports whether the intervals [a1,a2] and [b1,b2] overlap.
// Requires a1 <= a2 and b1 <= b2. Intervals that only touch at a boundary
// point do not overlap, which also means two coincident zero-width intervals
// never overlap each other.
func RangeOverlaps(a1, a2, b1, b2 float64) bool {
	return a1 < b2 && b1 < a2
}

// CyclicRangeOverlaps is RangeOverlaps on a 360-degree circle. A range whose
// start exceeds its end crosses the antimeridian and is unwrapped by adding
// 360 to its end. Requires both ranges to be within [-180,180].
func CyclicRangeOverlaps(a1, a2, b1, b2 float64) bool {
	if a1 > a2 {
		a2 += 360
	}
	if b1 > b2 {
		b2 += 360
	}
	if RangeOverlaps(a1, a2, b1, b2) {
		return true
	}
	// The overlap may only be visible once the leftmost range is unwrapped
	// a full revolution past the other, eg [-170,-160] vs [160,210].
	if a1 < b1 {
		a1 += 360
		a2 += 360
	} else {
		b1 += 360
		b2 += 360
	}
	return RangeOverlaps(a1, a2, b1, b2)
}

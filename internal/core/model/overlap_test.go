package model

import "testing"

func TestRangeOverlaps_Basic(t *testing.T) {
	if !RangeOverlaps(0, 10, 5, 15) {
		t.Fatalf("[0,10] and [5,15] must overlap")
	}
	if RangeOverlaps(0, 10, 10, 20) {
		t.Fatalf("touching intervals must not overlap")
	}
	if RangeOverlaps(0, 10, 20, 30) {
		t.Fatalf("disjoint intervals must not overlap")
	}
	if !RangeOverlaps(0, 10, 2, 2) {
		t.Fatalf("interior point must overlap the containing interval")
	}
	if RangeOverlaps(0, 10, 10, 10) {
		t.Fatalf("degenerate interval on the boundary must not overlap")
	}
}

// Coincident zero-width intervals do not overlap. This mirrors the strict
// inequality in RangeOverlaps: a point never overlaps anything, itself
// included. Kept as-is so the filter's treatment of point geometries does
// not silently change.
func TestRangeOverlaps_CoincidentPoints(t *testing.T) {
	if RangeOverlaps(5, 5, 5, 5) {
		t.Fatalf("coincident zero-width intervals must not overlap")
	}
}

func TestCyclicRangeOverlaps_PlainRanges(t *testing.T) {
	if !CyclicRangeOverlaps(0, 10, 5, 15) {
		t.Fatalf("plain overlapping ranges must overlap")
	}
	if CyclicRangeOverlaps(0, 10, 20, 30) {
		t.Fatalf("plain disjoint ranges must not overlap")
	}
}

func TestCyclicRangeOverlaps_Antimeridian(t *testing.T) {
	// crossing query vs non-crossing envelope near the antimeridian
	if !CyclicRangeOverlaps(170, -170, 175, 178) {
		t.Fatalf("[170,-170] must overlap [175,178]")
	}
	if !CyclicRangeOverlaps(170, -170, -178, -175) {
		t.Fatalf("[170,-170] must overlap [-178,-175]")
	}
	if CyclicRangeOverlaps(170, -170, 10, 20) {
		t.Fatalf("[170,-170] must not overlap [10,20]")
	}
	// both crossing
	if !CyclicRangeOverlaps(170, -170, 160, -160) {
		t.Fatalf("two crossing ranges around the antimeridian must overlap")
	}
	// only visible after unwrapping the leftmost range a full revolution
	if !CyclicRangeOverlaps(-170, -160, 160, -150) {
		t.Fatalf("[-170,-160] must overlap [160,-150]")
	}
}

func TestCyclicRangeOverlaps_Symmetry(t *testing.T) {
	cases := [][4]float64{
		{0, 10, 5, 15},
		{0, 10, 20, 30},
		{170, -170, 175, 178},
		{170, -170, 10, 20},
		{-170, -160, 160, -150},
		{-180, 180, 0, 0},
		{12, 12, 12, 12},
	}
	for _, c := range cases {
		ab := CyclicRangeOverlaps(c[0], c[1], c[2], c[3])
		ba := CyclicRangeOverlaps(c[2], c[3], c[0], c[1])
		if ab != ba {
			t.Fatalf("asymmetric result for %v: ab=%v ba=%v", c, ab, ba)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	stored := Rect{W: 170, S: -10, E: 175, N: -5}
	if !stored.Intersects(Rect{W: 160, S: -20, E: 180, N: 0}) {
		t.Fatalf("overlapping rects must intersect")
	}
	if stored.Intersects(Rect{W: -10, S: 20, E: 10, N: 40}) {
		t.Fatalf("disjoint rects must not intersect")
	}
	// longitudes overlap but latitudes do not
	if stored.Intersects(Rect{W: 160, S: 20, E: 180, N: 40}) {
		t.Fatalf("rects disjoint in latitude must not intersect")
	}
}

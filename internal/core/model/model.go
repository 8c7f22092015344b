// Package model defines core domain types shared across the filter subsystem.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is a geographic bounding rectangle in degrees, W,S,E,N order.
// W > E is a valid state and means the rectangle crosses the antimeridian,
// wrapping east from W through +-180 to E.
type Rect struct {
	W, S, E, N float64
}

// String representation matching the W,S,E,N filter argument format
func (r Rect) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.W, r.S, r.E, r.N)
}

func (r Rect) CrossesAntimeridian() bool {
	return r.W > r.E
}

func (r Rect) Validate() error {
	for _, v := range [4]float64{r.W, r.S, r.E, r.N} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite coordinate %g", v)
		}
	}
	if r.S < -90 || r.S > 90 || r.N < -90 || r.N > 90 {
		return fmt.Errorf("latitude out of range [-90,90]: s=%g n=%g", r.S, r.N)
	}
	if r.S > r.N {
		return fmt.Errorf("south %g greater than north %g", r.S, r.N)
	}
	if r.W < -180 || r.W > 180 || r.E < -180 || r.E > 180 {
		return fmt.Errorf("longitude out of range [-180,180]: w=%g e=%g", r.W, r.E)
	}
	return nil
}

// ParseRect parses a "W,S,E,N" decimal-degrees string, the format of the
// host's spatial filter argument.
func ParseRect(spec string) (Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("parse value %d %q: %w", i+1, p, err)
		}
		vals[i] = v
	}
	r := Rect{W: vals[0], S: vals[1], E: vals[2], N: vals[3]}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// Intersects reports whether r and q overlap, treating longitude as cyclic
// and latitude as a plain interval.
func (r Rect) Intersects(q Rect) bool {
	return CyclicRangeOverlaps(r.W, r.E, q.W, q.E) &&
		RangeOverlaps(r.S, r.N, q.S, q.N)
}

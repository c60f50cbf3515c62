package main

import "github.com/paulmach/orb"

// Manhattan returns the sum of absolute coordinate differences
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AxisAligned reports whether a and b share a row or a column
func AxisAligned(a, b Position) bool {
	return a.X == b.X || a.Y == b.Y
}

// stepToward returns the unit direction from a to b. a and b must be
// axis-aligned and distinct.
func stepToward(a, b Position) Direction {
	switch {
	case b.X < a.X:
		return Left
	case b.X > a.X:
		return Right
	case b.Y < a.Y:
		return Up
	default:
		return Down
	}
}

// SegmentCells expands an axis-aligned segment into every cell it covers,
// both endpoints included
func SegmentCells(a, b Position) []Position {
	if a == b {
		return []Position{a}
	}
	if !AxisAligned(a, b) {
		return nil
	}
	d := stepToward(a, b)
	n := Manhattan(a, b)
	cells := make([]Position, 0, n+1)
	for i := 0; i <= n; i++ {
		cells = append(cells, a.Add(d, i))
	}
	return cells
}

// toOrbPoint maps a pixel position onto a planar orb point. Pixel centres
// are used so rendered lines sit in the middle of a cell.
func toOrbPoint(p Position) orb.Point {
	return orb.Point{float64(p.X) + 0.5, float64(p.Y) + 0.5}
}

func fromOrbPoint(pt orb.Point) Position {
	return Position{X: int(pt[0]), Y: int(pt[1])}
}

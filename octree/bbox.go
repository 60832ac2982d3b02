package octree

import "github.com/golang/geo/r3"

// BBox is an axis-aligned bounding box: Lo <= Hi componentwise.
type BBox struct {
	Lo, Hi r3.Vector
}

// NewBBox builds a BBox from two corners, without assuming ordering.
func NewBBox(a, b r3.Vector) BBox {
	return BBox{
		Lo: r3.Vector{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Hi: r3.Vector{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Center returns the midpoint of the box.
func (b BBox) Center() r3.Vector {
	return b.Lo.Add(b.Hi).Mul(0.5)
}

// Diameter returns the per-axis width of the box.
func (b BBox) Diameter() r3.Vector {
	return b.Hi.Sub(b.Lo)
}

// Contains reports whether other lies entirely within b, componentwise.
func (b BBox) Contains(other BBox) bool {
	return other.Lo.X >= b.Lo.X && other.Lo.Y >= b.Lo.Y && other.Lo.Z >= b.Lo.Z &&
		other.Hi.X <= b.Hi.X && other.Hi.Y <= b.Hi.Y && other.Hi.Z <= b.Hi.Z
}

// ContainsPoint reports whether p lies within b, componentwise inclusive.
func (b BBox) ContainsPoint(p r3.Vector) bool {
	return p.X >= b.Lo.X && p.X <= b.Hi.X &&
		p.Y >= b.Lo.Y && p.Y <= b.Hi.Y &&
		p.Z >= b.Lo.Z && p.Z <= b.Hi.Z
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

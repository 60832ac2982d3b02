package spatialmath

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collidercore/octree"
)

// Geometry is a shape primitive: sphere, cylinder, or ellipsoid. The
// collision resolver type-switches on these three concrete types instead of
// dispatching through a virtual table; any other implementation of Geometry
// is treated there as an unsupported shape.
type Geometry interface {
	// BoundingBox returns the shape's axis-aligned bounding box, centered at
	// the origin in the shape's own local frame.
	BoundingBox() octree.BBox

	// ParametricToCartesian converts the shape's native parametric
	// coordinates to cartesian local coordinates.
	ParametricToCartesian(p r3.Vector) r3.Vector

	// CartesianToParametric converts cartesian local coordinates to the
	// shape's native parametric coordinates. Returns ErrMathDomain when v is
	// the zero vector and the conversion requires dividing by its norm; the
	// cylinder also returns it for any point on its axis.
	CartesianToParametric(v r3.Vector) (r3.Vector, error)

	// HullFromCartesian projects direction v onto the shape's hull and
	// returns the hit point in local cartesian coordinates.
	HullFromCartesian(v r3.Vector) r3.Vector

	// HullFromParametric is HullFromCartesian starting from a parametric
	// direction.
	HullFromParametric(p r3.Vector) r3.Vector

	// Label names the shape kind for diagnostics.
	Label() string
}

// ShapeKind enumerates the supported shape primitives, matching the
// controller-facing integer enum.
type ShapeKind int

const (
	KindSphere ShapeKind = iota
	KindCylinder
	KindEllipsoid
	KindUnknown
)

// ParseShapeKind maps a raw integer shape-kind value to a ShapeKind,
// returning KindUnknown for anything else.
func ParseShapeKind(v int) ShapeKind {
	switch v {
	case 0:
		return KindSphere
	case 1:
		return KindCylinder
	case 2:
		return KindEllipsoid
	default:
		return KindUnknown
	}
}

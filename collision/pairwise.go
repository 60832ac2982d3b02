package collision

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collidercore/simobj"
	"go.viam.com/collidercore/spatialmath"
)

// PairwiseDistance returns the signed distance between a and b's global
// shapes (negative or zero means intersecting) and whether they intersect.
// For sphere-sphere and sphere-cylinder pairs the distance is computed even
// when not colliding, so callers can rank non-colliding candidates by how
// close they came; the unsupported pairs (cylinder-cylinder and any pair with
// an ellipsoid) report +Inf.
func PairwiseDistance(a, b *simobj.Agent) (float64, bool, error) {
	switch sa := a.Shape.(type) {
	case *spatialmath.Sphere:
		switch sb := b.Shape.(type) {
		case *spatialmath.Sphere:
			d := sphereSphere(a.GlobalPosition(), sa.Radius, b.GlobalPosition(), sb.Radius)
			return d, d <= 0, nil
		case *spatialmath.Cylinder:
			d, coll := sphereCylinder(a.GlobalPosition(), sa.Radius, b.GlobalPose(), sb.Radius, sb.Length)
			return d, coll, nil
		default:
			return math.Inf(1), false, nil
		}
	case *spatialmath.Cylinder:
		switch sb := b.Shape.(type) {
		case *spatialmath.Sphere:
			d, coll := sphereCylinder(b.GlobalPosition(), sb.Radius, a.GlobalPose(), sa.Radius, sa.Length)
			return d, coll, nil
		case *spatialmath.Cylinder:
			d, coll := cylinderCylinder()
			return d, coll, nil
		default:
			return math.Inf(1), false, nil
		}
	default:
		// Ellipsoid pairs are unsupported: skip and report no collision.
		return math.Inf(1), false, nil
	}
}

// sphereSphere returns ||p1-p2|| - (r1+r2); collision iff <= 0.
func sphereSphere(p1 r3.Vector, r1 float64, p2 r3.Vector, r2 float64) float64 {
	return p1.Sub(p2).Norm() - (r1 + r2)
}

// sphereCylinder decomposes spherePos relative to the cylinder's pose into
// an axial component (along the cylinder's local z-axis) and a perpendicular
// one, checking the perpendicular (radial) bound first: a sphere whose
// radial excess alone clears the combined radii cannot be colliding
// regardless of its axial position, so its radial excess is reported as the
// ranking distance directly. Only when the radial check passes is the axial
// cap (cylinder half-length + sphere radius) evaluated and returned.
func sphereCylinder(spherePos r3.Vector, sphereRadius float64, cylPose spatialmath.Pose, cylRadius, cylLength float64) (float64, bool) {
	v := spherePos.Sub(cylPose.Point())
	zHat := spatialmath.Rotate(cylPose.Orientation(), r3.Vector{Z: 1})
	axial := v.Dot(zHat)
	perp := v.Sub(zHat.Mul(axial))
	dPerp := perp.Norm() - (sphereRadius + cylRadius)
	if dPerp > 0 {
		return dPerp, false
	}
	dAxial := math.Abs(axial) - (cylLength/2 + sphereRadius)
	return dAxial, dAxial <= 0
}

// cylinderCylinder is a stub: cylinder-cylinder intersection is not
// implemented. It always reports no collision.
func cylinderCylinder() (float64, bool) {
	return math.Inf(1), false
}

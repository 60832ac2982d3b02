package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/octree"
)

// Ellipsoid is a shape primitive with independent radii along each axis,
// centered at the origin. Its parametric coordinates are scaled spherical
// angles (rho, theta, phi) where rho runs [0,1] at the surface rather than
// in absolute length units.
type Ellipsoid struct {
	RX, RY, RZ float64
}

// NewEllipsoid validates the three radii and returns an *Ellipsoid.
func NewEllipsoid(rx, ry, rz float64) (*Ellipsoid, error) {
	if rx <= 0 || ry <= 0 || rz <= 0 {
		return nil, errors.Wrapf(cerrors.ErrInvalidShape, "ellipsoid radii %v/%v/%v must be positive", rx, ry, rz)
	}
	return &Ellipsoid{RX: rx, RY: ry, RZ: rz}, nil
}

// BoundingBox implements Geometry.
func (e *Ellipsoid) BoundingBox() octree.BBox {
	return octree.BBox{
		Lo: r3.Vector{X: -e.RX, Y: -e.RY, Z: -e.RZ},
		Hi: r3.Vector{X: e.RX, Y: e.RY, Z: e.RZ},
	}
}

// ParametricToCartesian converts scaled-spherical (rho, theta, phi) to
// cartesian, scaling the unit sphere point by each axis's radius.
func (e *Ellipsoid) ParametricToCartesian(p r3.Vector) r3.Vector {
	rho, theta, phi := p.X, p.Y, p.Z
	return r3.Vector{
		X: rho * e.RX * math.Sin(theta) * math.Cos(phi),
		Y: rho * e.RY * math.Sin(theta) * math.Sin(phi),
		Z: rho * e.RZ * math.Cos(theta),
	}
}

// CartesianToParametric converts cartesian to scaled-spherical coordinates
// by first unscaling each axis back onto the unit sphere.
func (e *Ellipsoid) CartesianToParametric(v r3.Vector) (r3.Vector, error) {
	u := r3.Vector{X: v.X / e.RX, Y: v.Y / e.RY, Z: v.Z / e.RZ}
	rho := u.Norm()
	if rho == 0 {
		return r3.Vector{}, errors.Wrap(cerrors.ErrMathDomain, "ellipsoid: cannot parametrize the zero vector")
	}
	theta := math.Acos(u.Z / rho)
	phi := math.Atan2(u.Y, u.X)
	return r3.Vector{X: rho, Y: theta, Z: phi}, nil
}

// HullFromCartesian projects v onto the ellipsoid's hull by setting rho=1.
func (e *Ellipsoid) HullFromCartesian(v r3.Vector) r3.Vector {
	p, err := e.CartesianToParametric(v)
	if err != nil {
		return r3.Vector{X: e.RX}
	}
	p.X = 1
	return e.ParametricToCartesian(p)
}

// HullFromParametric is HullFromCartesian starting from a parametric
// pointer.
func (e *Ellipsoid) HullFromParametric(p r3.Vector) r3.Vector {
	p.X = 1
	return e.ParametricToCartesian(p)
}

// Label implements Geometry.
func (e *Ellipsoid) Label() string { return "ellipsoid" }

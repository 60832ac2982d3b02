package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/octree"
)

// Sphere is a shape primitive of radius Radius, centered at the origin.
type Sphere struct {
	Radius float64
}

// NewSphere validates radius and returns a *Sphere.
func NewSphere(radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, errors.Wrapf(cerrors.ErrInvalidShape, "sphere radius %v must be positive", radius)
	}
	return &Sphere{Radius: radius}, nil
}

// BoundingBox implements Geometry.
func (s *Sphere) BoundingBox() octree.BBox {
	return octree.BBox{
		Lo: r3.Vector{X: -s.Radius, Y: -s.Radius, Z: -s.Radius},
		Hi: r3.Vector{X: s.Radius, Y: s.Radius, Z: s.Radius},
	}
}

// ParametricToCartesian converts spherical (rho, theta, phi) to cartesian.
func (s *Sphere) ParametricToCartesian(p r3.Vector) r3.Vector {
	rho, theta, phi := p.X, p.Y, p.Z
	return r3.Vector{
		X: rho * math.Sin(theta) * math.Cos(phi),
		Y: rho * math.Sin(theta) * math.Sin(phi),
		Z: rho * math.Cos(theta),
	}
}

// CartesianToParametric converts cartesian to spherical (rho, theta, phi).
func (s *Sphere) CartesianToParametric(v r3.Vector) (r3.Vector, error) {
	rho := v.Norm()
	if rho == 0 {
		return r3.Vector{}, errors.Wrap(cerrors.ErrMathDomain, "sphere: cannot parametrize the zero vector")
	}
	theta := math.Acos(v.Z / rho)
	phi := math.Atan2(v.Y, v.X)
	return r3.Vector{X: rho, Y: theta, Z: phi}, nil
}

// HullFromCartesian projects v onto the sphere's hull by setting rho=Radius.
// At v==0 (no direction) the projection is implementation-defined but
// finite: we return the +X pole.
func (s *Sphere) HullFromCartesian(v r3.Vector) r3.Vector {
	p, err := s.CartesianToParametric(v)
	if err != nil {
		return r3.Vector{X: s.Radius}
	}
	p.X = s.Radius
	return s.ParametricToCartesian(p)
}

// HullFromParametric is HullFromCartesian starting from a parametric pointer.
func (s *Sphere) HullFromParametric(p r3.Vector) r3.Vector {
	p.X = s.Radius
	return s.ParametricToCartesian(p)
}

// Label implements Geometry.
func (s *Sphere) Label() string { return "sphere" }

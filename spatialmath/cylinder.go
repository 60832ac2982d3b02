package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/octree"
)

// Cylinder is a shape primitive of radius Radius and axial Length, centered
// at the origin with its axis along Z.
type Cylinder struct {
	Radius, Length float64
}

// NewCylinder validates radius and length and returns a *Cylinder.
func NewCylinder(radius, length float64) (*Cylinder, error) {
	if radius <= 0 || length <= 0 {
		return nil, errors.Wrapf(cerrors.ErrInvalidShape, "cylinder radius %v / length %v must be positive", radius, length)
	}
	return &Cylinder{Radius: radius, Length: length}, nil
}

// BoundingBox implements Geometry.
func (c *Cylinder) BoundingBox() octree.BBox {
	return octree.BBox{
		Lo: r3.Vector{X: -c.Radius, Y: -c.Radius, Z: -c.Length / 2},
		Hi: r3.Vector{X: c.Radius, Y: c.Radius, Z: c.Length / 2},
	}
}

// ParametricToCartesian converts cylindrical (rho, phi, z) to cartesian.
func (c *Cylinder) ParametricToCartesian(p r3.Vector) r3.Vector {
	rho, phi, z := p.X, p.Y, p.Z
	return r3.Vector{X: rho * math.Cos(phi), Y: rho * math.Sin(phi), Z: z}
}

// CartesianToParametric converts cartesian to cylindrical (rho, phi, z).
func (c *Cylinder) CartesianToParametric(v r3.Vector) (r3.Vector, error) {
	rho := math.Hypot(v.X, v.Y)
	if rho == 0 {
		return r3.Vector{}, errors.Wrap(cerrors.ErrMathDomain, "cylinder: cannot parametrize a point on the axis")
	}
	phi := math.Atan2(v.Y, v.X)
	return r3.Vector{X: rho, Y: phi, Z: v.Z}, nil
}

// HullFromCartesian projects direction v onto the cylinder's hull, capping
// both radius (to Radius) and |z| (to Length/2), choosing whichever bound is
// hit first along the ray. Pure-axial directions return the nearer cap
// center; pure-radial directions return the side wall at z=0.
func (c *Cylinder) HullFromCartesian(v r3.Vector) r3.Vector {
	n := v.Normalize()
	if n.X == 0 && n.Y == 0 {
		if n.Z >= 0 {
			return r3.Vector{Z: c.Length / 2}
		}
		return r3.Vector{Z: -c.Length / 2}
	}
	if n.Z == 0 {
		return r3.Vector{X: c.Radius * n.X, Y: c.Radius * n.Y, Z: 0}
	}

	p, err := c.CartesianToParametric(n)
	if err != nil {
		return r3.Vector{X: c.Radius}
	}
	// Along the ray through n, z scales with rho: z = Radius * (n.z/rho).
	zAtRadius := c.Radius * (p.Z / p.X)
	if math.Abs(zAtRadius) > c.Length/2 {
		zCap := c.Length / 2
		if zAtRadius < 0 {
			zCap = -c.Length / 2
		}
		p.X = math.Abs(zCap / (p.Z / p.X))
		p.Z = zCap
	} else {
		p.X = c.Radius
		p.Z = zAtRadius
	}
	return c.ParametricToCartesian(p)
}

// HullFromParametric is HullFromCartesian starting from a parametric
// pointer, converted to cartesian first.
func (c *Cylinder) HullFromParametric(p r3.Vector) r3.Vector {
	return c.HullFromCartesian(c.ParametricToCartesian(p))
}

// Label implements Geometry.
func (c *Cylinder) Label() string { return "cylinder" }

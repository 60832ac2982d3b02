package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a position and an orientation, composed the
// same way cluster and local agent frames compose.
type Pose interface {
	Point() r3.Vector
	Orientation() quat.Number
}

type pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewZeroPose returns the identity pose: origin, no rotation.
func NewZeroPose() Pose {
	return pose{point: r3.Vector{}, orientation: quat.Number{Real: 1}}
}

// NewPoseFromPoint returns a pose at p with identity orientation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return pose{point: p, orientation: quat.Number{Real: 1}}
}

// NewPose returns a pose combining a position and an orientation.
func NewPose(p r3.Vector, o quat.Number) Pose {
	return pose{point: p, orientation: normalize(o)}
}

func (p pose) Point() r3.Vector       { return p.point }
func (p pose) Orientation() quat.Number { return p.orientation }

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Rotate applies q's rotation to vector v.
func Rotate(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// Compose returns the global pose of a child frame, given the parent's
// global pose and the child's pose expressed relative to the parent:
// global.Point = parent.Point + parent.Orientation * child.Point
// global.Orientation = parent.Orientation * child.Orientation
func Compose(parent, child Pose) Pose {
	rotated := Rotate(parent.Orientation(), child.Point())
	return NewPose(parent.Point().Add(rotated), quat.Mul(parent.Orientation(), child.Orientation()))
}

// QuaternionBetween returns the unit quaternion that rotates `from` onto `to`,
// using mathgl's vector-pair solver (mgl64.QuatBetweenVectors) and converting
// the result into the gonum quat.Number representation used by Pose.
func QuaternionBetween(from, to r3.Vector) quat.Number {
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{from.X, from.Y, from.Z}, mgl64.Vec3{to.X, to.Y, to.Z})
	return normalize(quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]})
}

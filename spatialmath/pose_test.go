package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestZeroPose(t *testing.T) {
	p := NewZeroPose()
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, p.Orientation(), test.ShouldResemble, quat.Number{Real: 1})
}

// Pose composition: global.Point = parent.Point + parent.Q*child.Point;
// global.Orientation = parent.Q * child.Q.
func TestComposeIdentityParent(t *testing.T) {
	child := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, quat.Number{Real: 1})
	global := Compose(NewZeroPose(), child)
	test.That(t, global.Point(), test.ShouldResemble, child.Point())
}

func TestComposeTranslatesThroughRotatedParent(t *testing.T) {
	// Rotate 90 degrees about Z: (1,0,0) -> (0,1,0).
	quarterTurnZ := quat.Number{Real: 0.7071067811865476, Kmag: 0.7071067811865475}
	parent := NewPose(r3.Vector{X: 10}, quarterTurnZ)
	child := NewPose(r3.Vector{X: 1}, quat.Number{Real: 1})

	global := Compose(parent, child)
	test.That(t, global.Point().X, test.ShouldAlmostEqual, 10.0)
	test.That(t, global.Point().Y, test.ShouldAlmostEqual, 1.0)
}

func TestRotateIdentityIsNoOp(t *testing.T) {
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	got := Rotate(quat.Number{Real: 1}, v)
	test.That(t, got, test.ShouldResemble, v)
}

func TestQuaternionBetweenParallelVectorsIsIdentity(t *testing.T) {
	q := QuaternionBetween(r3.Vector{X: 1}, r3.Vector{X: 1})
	rotated := Rotate(q, r3.Vector{X: 1})
	test.That(t, rotated.X, test.ShouldAlmostEqual, 1.0)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, 0.0)
	test.That(t, rotated.Z, test.ShouldAlmostEqual, 0.0)
}

func TestQuaternionBetweenOppositeVectors(t *testing.T) {
	q := QuaternionBetween(r3.Vector{X: 1}, r3.Vector{X: -1})
	rotated := Rotate(q, r3.Vector{X: 1})
	test.That(t, rotated.X, test.ShouldAlmostEqual, -1.0)
}

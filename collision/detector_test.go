package collision

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collidercore/simobj"
	"go.viam.com/collidercore/spatialmath"
)

func buildClusterOfSpheres(t *testing.T, ids []uint64, positions []r3.Vector, radius float64) *simobj.Cluster {
	t.Helper()
	cluster := simobj.NewCluster(1, "assembly")
	for i, id := range ids {
		shape, err := spatialmath.NewSphere(radius)
		test.That(t, err, test.ShouldBeNil)
		spec, err := simobj.NewAgentSpec("sphere", shape, nil)
		test.That(t, err, test.ShouldBeNil)
		agent, err := simobj.NewAgent(id, spec)
		test.That(t, err, test.ShouldBeNil)
		agent.Move(positions[i])
		cluster.AddAgent(agent)
	}
	return cluster
}

// A candidate co-located with one member of a two-sphere cluster collides with both.
func TestCheckForCollisionColocatedCandidate(t *testing.T) {
	cluster := buildClusterOfSpheres(t, []uint64{1, 2},
		[]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}, 1)

	candShape, err := spatialmath.NewSphere(1)
	test.That(t, err, test.ShouldBeNil)
	candSpec, err := simobj.NewAgentSpec("sphere", candShape, nil)
	test.That(t, err, test.ShouldBeNil)
	candidate, err := simobj.NewAgent(99, candSpec)
	test.That(t, err, test.ShouldBeNil)
	candidate.Move(r3.Vector{X: 1, Y: 1, Z: 0})

	d := NewDetector(golog.NewTestLogger(t))
	test.That(t, d.BuildTree(context.Background(), cluster), test.ShouldBeNil)

	// Both A (distance sqrt(2)-2) and B (co-located with the candidate,
	// distance -2) intersect; the detector reports the deepest (minimum
	// signed-distance) intersector among all intersecting pairs, not
	// whichever one the octree happens to return first (see DESIGN.md).
	result, err := d.CheckForCollision(cluster, map[uint64]struct{}{}, candidate)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Collision, test.ShouldBeTrue)
	test.That(t, *result.NearestID, test.ShouldEqual, uint64(2))
	test.That(t, result.NearestDistance, test.ShouldAlmostEqual, -2.0)

	result, err = d.CheckForCollision(cluster, map[uint64]struct{}{2: {}}, candidate)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Collision, test.ShouldBeTrue)
	test.That(t, *result.NearestID, test.ShouldEqual, uint64(1))
	test.That(t, result.NearestDistance, test.ShouldAlmostEqual, math.Sqrt2-2)

	result, err = d.CheckForCollision(cluster, map[uint64]struct{}{1: {}, 2: {}}, candidate)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Collision, test.ShouldBeFalse)
	test.That(t, math.IsInf(result.NearestDistance, 1), test.ShouldBeTrue)
}

// A candidate far from the cluster reports no collision.
func TestCheckForCollisionOutOfRange(t *testing.T) {
	cluster := buildClusterOfSpheres(t, []uint64{1, 2},
		[]r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}, 1)

	candShape, err := spatialmath.NewSphere(1)
	test.That(t, err, test.ShouldBeNil)
	candSpec, err := simobj.NewAgentSpec("sphere", candShape, nil)
	test.That(t, err, test.ShouldBeNil)
	candidate, err := simobj.NewAgent(99, candSpec)
	test.That(t, err, test.ShouldBeNil)
	candidate.Move(r3.Vector{X: 1, Y: 1, Z: 6})

	d := NewDetector(golog.NewTestLogger(t))
	test.That(t, d.BuildTree(context.Background(), cluster), test.ShouldBeNil)

	result, err := d.CheckForCollision(cluster, map[uint64]struct{}{}, candidate)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Collision, test.ShouldBeFalse)
}

func TestCheckForCollisionUnknownCluster(t *testing.T) {
	cluster := simobj.NewCluster(5, "assembly")
	shape, err := spatialmath.NewSphere(1)
	test.That(t, err, test.ShouldBeNil)
	spec, err := simobj.NewAgentSpec("sphere", shape, nil)
	test.That(t, err, test.ShouldBeNil)
	candidate, err := simobj.NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	d := NewDetector(golog.NewTestLogger(t))
	_, err = d.CheckForCollision(cluster, nil, candidate)
	test.That(t, err, test.ShouldNotBeNil)
}

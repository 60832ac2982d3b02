package simobj

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/collidercore/spatialmath"
)

func mustSphere(t *testing.T, r float64) spatialmath.Geometry {
	t.Helper()
	s, err := spatialmath.NewSphere(r)
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestAgentSpecRejectsDuplicateSiteIDs(t *testing.T) {
	shape := mustSphere(t, 1)
	sites := []SiteSpec{
		NewSiteSpec(0, "a", 1, 0, 0, CoordCartesianAbsolute),
		NewSiteSpec(0, "b", 0, 1, 0, CoordCartesianAbsolute),
	}
	_, err := NewAgentSpec("widget", shape, sites)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMetaSpecRejectsDuplicateAgentType(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, nil)
	test.That(t, err, test.ShouldBeNil)
	_, err = NewMetaSpec([]AgentSpec{spec, spec})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMetaSpecLookupUnknownType(t *testing.T) {
	meta, err := NewMetaSpec(nil)
	test.That(t, err, test.ShouldBeNil)
	_, err = meta.Lookup("nonexistent")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewAgentMaterializesSiteCoords(t *testing.T) {
	shape := mustSphere(t, 5)
	sites := []SiteSpec{
		NewSiteSpec(0, "cartAbs", 1, 2, 3, CoordCartesianAbsolute),
		NewSiteSpec(1, "hullPtr", 1, 0, 0, CoordCartesianPointerToHull),
	}
	spec, err := NewAgentSpec("widget", shape, sites)
	test.That(t, err, test.ShouldBeNil)

	agent, err := NewAgent(42, spec)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, agent.Sites[0].Local, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, agent.Sites[1].Local.Norm(), test.ShouldAlmostEqual, 5.0)
}

// Site global position equals
// agent.global.Point + agent.global.Orientation * site.Local.
func TestSiteGlobalPositionThroughCluster(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, []SiteSpec{
		NewSiteSpec(0, "s", 1, 0, 0, CoordCartesianAbsolute),
	})
	test.That(t, err, test.ShouldBeNil)

	agent, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	cluster := NewCluster(7, "assembly")
	cluster.Pose = spatialmath.NewPose(r3.Vector{X: 10, Y: 0, Z: 0}, quat.Number{Real: 1})
	cluster.AddAgent(agent)

	got := agent.Sites[0].GlobalPosition()
	test.That(t, got, test.ShouldResemble, r3.Vector{X: 11, Y: 0, Z: 0})
}

func TestClusterAddAgentIsIdempotent(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, nil)
	test.That(t, err, test.ShouldBeNil)
	agent, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	cluster := NewCluster(1, "assembly")
	cluster.AddAgent(agent)
	cluster.AddAgent(agent)
	test.That(t, len(cluster.Agents), test.ShouldEqual, 1)
}

func TestClusterAddAgentMovesOutOfPriorCluster(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, nil)
	test.That(t, err, test.ShouldBeNil)
	agent, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	c1 := NewCluster(1, "assembly")
	c2 := NewCluster(2, "assembly")
	c1.AddAgent(agent)
	c2.AddAgent(agent)

	test.That(t, len(c1.Agents), test.ShouldEqual, 0)
	test.That(t, len(c2.Agents), test.ShouldEqual, 1)
	test.That(t, agent.Cluster, test.ShouldEqual, c2)
}

func TestClusterMerge(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, nil)
	test.That(t, err, test.ShouldBeNil)

	a1, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)
	a2, err := NewAgent(2, spec)
	test.That(t, err, test.ShouldBeNil)

	c1 := NewCluster(1, "assembly")
	c2 := NewCluster(2, "assembly")
	c1.AddAgent(a1)
	c2.AddAgent(a2)

	c1.Merge(c2)
	test.That(t, len(c1.Agents), test.ShouldEqual, 2)
	test.That(t, len(c2.Agents), test.ShouldEqual, 0)
}

func TestSiteConnectFailsWhenAlreadyConnected(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, []SiteSpec{
		NewSiteSpec(0, "s", 1, 0, 0, CoordCartesianAbsolute),
		NewSiteSpec(1, "t", 0, 1, 0, CoordCartesianAbsolute),
	})
	test.That(t, err, test.ShouldBeNil)

	a, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	err = a.Sites[0].Connect(a.Sites[1])
	test.That(t, err, test.ShouldBeNil)

	other, err := NewAgent(2, spec)
	test.That(t, err, test.ShouldBeNil)
	err = a.Sites[0].Connect(other.Sites[0])
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAgentMoveAndRotate(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, nil)
	test.That(t, err, test.ShouldBeNil)
	a, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	a.Move(r3.Vector{X: 1, Y: 1, Z: 1})
	test.That(t, a.GlobalPosition(), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	a.Rotate(quat.Number{Real: 1})
	test.That(t, a.GlobalPose().Orientation(), test.ShouldResemble, quat.Number{Real: 1})
}

func TestEntityStringsAreInformational(t *testing.T) {
	shape := mustSphere(t, 1)
	spec, err := NewAgentSpec("widget", shape, []SiteSpec{
		NewSiteSpec(0, "s", 1, 0, 0, CoordCartesianAbsolute),
	})
	test.That(t, err, test.ShouldBeNil)
	agent, err := NewAgent(1, spec)
	test.That(t, err, test.ShouldBeNil)

	cluster := NewCluster(7, "assembly")
	cluster.AddAgent(agent)

	test.That(t, agent.String(), test.ShouldContainSubstring, `type="widget"`)
	test.That(t, agent.String(), test.ShouldContainSubstring, "cluster=7")
	test.That(t, agent.Sites[0].String(), test.ShouldContainSubstring, "unconnected")
	test.That(t, cluster.String(), test.ShouldContainSubstring, "agents=1")
}

func TestParseCoordKind(t *testing.T) {
	test.That(t, ParseCoordKind(0), test.ShouldEqual, CoordCartesianAbsolute)
	test.That(t, ParseCoordKind(3), test.ShouldEqual, CoordParametricPointerToHull)
	test.That(t, ParseCoordKind(42), test.ShouldEqual, CoordUnknown)
}

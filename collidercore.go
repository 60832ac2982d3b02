// Package collidercore is a thin façade binding agent/cluster specifications
// to built entities, per-cluster octrees, and collision queries: it is the
// single stateful entry point a host simulation drives.
package collidercore

import (
	"context"
	"fmt"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/collision"
	"go.viam.com/collidercore/simobj"
	"go.viam.com/collidercore/spatialmath"
)

// Controller owns every entity built from a MetaSpec, the clusters they
// belong to, and the collision detector registered against those clusters.
// All mutation is serial; callers must not drive one Controller from
// multiple goroutines concurrently.
type Controller struct {
	meta *simobj.MetaSpec

	agents   map[uint64]*simobj.Agent
	clusters map[uint64]*simobj.Cluster

	detector *collision.Detector

	logger golog.Logger
}

// NewController returns an empty Controller. Call CreateMetaSpec before
// CreateAgent.
func NewController(ctx context.Context, logger golog.Logger) *Controller {
	return &Controller{
		agents:   make(map[uint64]*simobj.Agent),
		clusters: make(map[uint64]*simobj.Cluster),
		detector: collision.NewDetector(logger),
		logger:   logger,
	}
}

// CreateShape builds a shape handle from kind and 1-3 dimension scalars:
// sphere takes (r), cylinder (r, length), ellipsoid (rx, ry, rz).
func (c *Controller) CreateShape(kind spatialmath.ShapeKind, a, b, cc float64) (spatialmath.Geometry, error) {
	switch kind {
	case spatialmath.KindSphere:
		return spatialmath.NewSphere(a)
	case spatialmath.KindCylinder:
		return spatialmath.NewCylinder(a, b)
	case spatialmath.KindEllipsoid:
		return spatialmath.NewEllipsoid(a, b, cc)
	default:
		return nil, errors.Wrapf(cerrors.ErrUnknownKind, "unknown shape kind %d", kind)
	}
}

// CreateSiteSpec builds a SiteSpec from raw scalars and a coord kind.
func (c *Controller) CreateSiteSpec(id uint64, typ string, a, b, cc float64, kind simobj.CoordKind) simobj.SiteSpec {
	return simobj.NewSiteSpec(id, typ, a, b, cc, kind)
}

// CreateAgentSpec builds an AgentSpec, failing on a duplicate site id.
func (c *Controller) CreateAgentSpec(typ string, shape spatialmath.Geometry, sites []simobj.SiteSpec) (simobj.AgentSpec, error) {
	return simobj.NewAgentSpec(typ, shape, sites)
}

// CreateMetaSpec registers the Controller's agent-type templates, failing
// on a duplicate agent type. Replaces any previously registered MetaSpec.
func (c *Controller) CreateMetaSpec(specs []simobj.AgentSpec) error {
	meta, err := simobj.NewMetaSpec(specs)
	if err != nil {
		return err
	}
	c.meta = meta
	return nil
}

// CreateAgent instantiates an agent of the named type from the registered
// MetaSpec, failing on a duplicate id or an unregistered type.
func (c *Controller) CreateAgent(id uint64, typ string) (*simobj.Agent, error) {
	if _, ok := c.agents[id]; ok {
		return nil, errors.Wrapf(cerrors.ErrDuplicateID, "duplicate agent id %d", id)
	}
	if c.meta == nil {
		return nil, errors.Wrapf(cerrors.ErrUnknownType, "no meta spec registered; unknown agent type %q", typ)
	}
	spec, err := c.meta.Lookup(typ)
	if err != nil {
		return nil, err
	}
	agent, err := simobj.NewAgent(id, spec)
	if err != nil {
		return nil, err
	}
	c.agents[id] = agent
	return agent, nil
}

// CreateAgentCluster creates an empty cluster with the given id and type,
// failing on a duplicate id.
func (c *Controller) CreateAgentCluster(id uint64, typ string) (*simobj.Cluster, error) {
	if _, ok := c.clusters[id]; ok {
		return nil, errors.Wrapf(cerrors.ErrDuplicateID, "duplicate cluster id %d", id)
	}
	cluster := simobj.NewCluster(id, typ)
	c.clusters[id] = cluster
	return cluster, nil
}

// AddAgentToCluster adds agentID to clusterID's membership. Idempotent when
// the agent already belongs to that same cluster.
func (c *Controller) AddAgentToCluster(agentID, clusterID uint64) error {
	agent, ok := c.agents[agentID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", agentID)
	}
	cluster, ok := c.clusters[clusterID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown cluster id %d", clusterID)
	}
	cluster.AddAgent(agent)
	return nil
}

// ConnectAgents binds site1 (on agent1) to site2 (on agent2), aligning
// agent2 in space so site2's global position coincides with site1's and its
// outward direction is anti-parallel to site1's:
//   - if neither agent is in a cluster, a fresh cluster is created holding both;
//   - if exactly one is in a cluster, the other is added to it;
//   - if both are in different clusters, the two clusters are merged into agent1's.
func (c *Controller) ConnectAgents(agent1ID, agent2ID, site1ID, site2ID uint64) error {
	a1, ok := c.agents[agent1ID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", agent1ID)
	}
	a2, ok := c.agents[agent2ID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", agent2ID)
	}
	s1, ok := a1.Sites[site1ID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown site id %d on agent %d", site1ID, agent1ID)
	}
	s2, ok := a2.Sites[site2ID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown site id %d on agent %d", site2ID, agent2ID)
	}

	if err := s1.Connect(s2); err != nil {
		return err
	}

	switch {
	case a1.Cluster == nil && a2.Cluster == nil:
		cluster := simobj.NewCluster(c.nextClusterID(), "autoCluster")
		c.clusters[cluster.ID] = cluster
		cluster.AddAgent(a1)
		cluster.AddAgent(a2)
	case a1.Cluster != nil && a2.Cluster == nil:
		a1.Cluster.AddAgent(a2)
	case a1.Cluster == nil && a2.Cluster != nil:
		a2.Cluster.AddAgent(a1)
	case a1.Cluster != a2.Cluster:
		a1.Cluster.Merge(a2.Cluster)
	}

	alignAgent(a1, s1, a2, s2)
	return nil
}

func (c *Controller) nextClusterID() uint64 {
	var max uint64
	for id := range c.clusters {
		if id >= max {
			max = id + 1
		}
	}
	return max
}

// alignAgent rotates and translates a2 so s2's global position coincides
// with s1's, and s2's outward direction points opposite s1's.
func alignAgent(a1 *simobj.Agent, s1 *simobj.Site, a2 *simobj.Agent, s2 *simobj.Site) {
	frame := quat.Number{Real: 1}
	if a2.Cluster != nil {
		frame = a2.Cluster.Pose.Orientation()
	}
	anchorOut := spatialmath.Rotate(a1.GlobalPose().Orientation(), s1.OutwardDirection())
	peerOut := spatialmath.Rotate(a2.GlobalPose().Orientation(), s2.OutwardDirection())

	// rot and delta are global; a2.Pose is relative to its cluster's frame.
	rot := spatialmath.QuaternionBetween(peerOut, anchorOut.Mul(-1))
	localRot := quat.Mul(quat.Mul(quat.Conj(frame), rot), frame)
	a2.Pose = spatialmath.NewPose(a2.Pose.Point(), quat.Mul(localRot, a2.Pose.Orientation()))

	s1Global := s1.GlobalPosition()
	s2GlobalAfterRotate := s2.GlobalPosition()
	delta := s1Global.Sub(s2GlobalAfterRotate)
	a2.Move(spatialmath.Rotate(quat.Conj(frame), delta))
}

// Move composes delta into the entity's local position; entity may be an
// *simobj.Agent or *simobj.Cluster.
func (c *Controller) Move(id uint64, delta r3.Vector) error {
	if agent, ok := c.agents[id]; ok {
		agent.Move(delta)
		return nil
	}
	if cluster, ok := c.clusters[id]; ok {
		cluster.Move(delta)
		return nil
	}
	return errors.Wrapf(cerrors.ErrUnknownID, "unknown entity id %d", id)
}

// Rotate composes q into the entity's local orientation; entity may be an
// *simobj.Agent or *simobj.Cluster.
func (c *Controller) Rotate(id uint64, q quat.Number) error {
	if agent, ok := c.agents[id]; ok {
		agent.Rotate(q)
		return nil
	}
	if cluster, ok := c.clusters[id]; ok {
		cluster.Rotate(q)
		return nil
	}
	return errors.Wrapf(cerrors.ErrUnknownID, "unknown entity id %d", id)
}

// SetInitialRootDiameter configures the octree root diameter used by the
// next AddAgentClusterToCollisionDetector call.
func (c *Controller) SetInitialRootDiameter(diameter float64) {
	c.detector.SetInitialTreeDiameter(diameter)
}

// SetMinimalLeafDiameter configures the octree minimum leaf diameter used by
// the next AddAgentClusterToCollisionDetector call.
func (c *Controller) SetMinimalLeafDiameter(diameter float64) {
	c.detector.SetMinimalCellDiameter(diameter)
}

// SetAllowRescaling configures whether the next built tree may expand its
// root on out-of-bounds insertion.
func (c *Controller) SetAllowRescaling(allow bool) {
	c.detector.SetAllowRescaling(allow)
}

// AddAgentClusterToCollisionDetector builds an octree for clusterID from its
// current agent membership and registers it with the collision detector.
func (c *Controller) AddAgentClusterToCollisionDetector(ctx context.Context, clusterID uint64) error {
	cluster, ok := c.clusters[clusterID]
	if !ok {
		return errors.Wrapf(cerrors.ErrUnknownID, "unknown cluster id %d", clusterID)
	}
	return c.detector.BuildTree(ctx, cluster)
}

// FindNearestToAgent returns the id of the agent in clusterID nearest to
// candidateID's global position, or candidateID itself if no other agent is
// found.
func (c *Controller) FindNearestToAgent(candidateID, clusterID uint64) (uint64, error) {
	candidate, ok := c.agents[candidateID]
	if !ok {
		return 0, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", candidateID)
	}
	cluster, ok := c.clusters[clusterID]
	if !ok {
		return 0, errors.Wrapf(cerrors.ErrUnknownID, "unknown cluster id %d", clusterID)
	}
	ignore := map[uint64]struct{}{candidateID: {}}
	result, err := c.detector.CheckForCollision(cluster, ignore, candidate)
	if err != nil {
		return 0, err
	}
	if result.NearestID == nil {
		return candidateID, nil
	}
	return *result.NearestID, nil
}

// CheckCollisionForAgentInCluster runs the octree-driven collision query
// directly, returning the full Result (collision flag, nearest id, nearest
// distance) rather than collapsing it to a bare id.
func (c *Controller) CheckCollisionForAgentInCluster(
	candidateID, clusterID uint64, ignore map[uint64]struct{},
) (collision.Result, error) {
	candidate, ok := c.agents[candidateID]
	if !ok {
		return collision.Result{}, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", candidateID)
	}
	cluster, ok := c.clusters[clusterID]
	if !ok {
		return collision.Result{}, errors.Wrapf(cerrors.ErrUnknownID, "unknown cluster id %d", clusterID)
	}
	return c.detector.CheckForCollision(cluster, ignore, candidate)
}

// CheckCollisionBetweenAgents is a direct pairwise test between two agents,
// bypassing the octree entirely.
func (c *Controller) CheckCollisionBetweenAgents(id1, id2 uint64) (bool, error) {
	a1, ok := c.agents[id1]
	if !ok {
		return false, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", id1)
	}
	a2, ok := c.agents[id2]
	if !ok {
		return false, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", id2)
	}
	_, collides, err := collision.PairwiseDistance(a1, a2)
	return collides, err
}

// DistanceBetweenAgents returns the direct pairwise signed distance between
// two agents' shapes.
func (c *Controller) DistanceBetweenAgents(id1, id2 uint64) (float64, error) {
	a1, ok := c.agents[id1]
	if !ok {
		return 0, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", id1)
	}
	a2, ok := c.agents[id2]
	if !ok {
		return 0, errors.Wrapf(cerrors.ErrUnknownID, "unknown agent id %d", id2)
	}
	dist, _, err := collision.PairwiseDistance(a1, a2)
	return dist, err
}

// String returns a human-readable (non-stable) summary of the Controller's
// current population, for diagnostics only.
func (c *Controller) String() string {
	return fmt.Sprintf("Controller{agents=%d clusters=%d}", len(c.agents), len(c.clusters))
}

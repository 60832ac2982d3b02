package simobj

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/spatialmath"
)

// Agent is a rigid compound body: a shape, a local pose, an optional
// cluster membership, and the sites attached to it.
type Agent struct {
	ID      uint64
	Type    string
	Shape   spatialmath.Geometry
	Pose    spatialmath.Pose
	Cluster *Cluster
	Sites   map[uint64]*Site
}

func newAgent(id uint64, typ string, shape spatialmath.Geometry) *Agent {
	return &Agent{
		ID:    id,
		Type:  typ,
		Shape: shape,
		Pose:  spatialmath.NewZeroPose(),
		Sites: make(map[uint64]*Site),
	}
}

// NewAgent materializes an Agent and its Sites from spec, converting each
// SiteSpec's raw coordinates into a local cartesian position per its Kind.
func NewAgent(id uint64, spec AgentSpec) (*Agent, error) {
	agent := newAgent(id, spec.Type, spec.Shape)
	for _, ss := range spec.Sites {
		if _, ok := agent.Sites[ss.ID]; ok {
			return nil, errors.Wrapf(cerrors.ErrDuplicateID, "duplicate site id %d on agent %d", ss.ID, id)
		}
		local, err := materializeSiteCoord(spec.Shape, ss.Coord, ss.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d site %d", id, ss.ID)
		}
		agent.Sites[ss.ID] = newSite(ss.ID, ss.Type, local, agent)
	}
	return agent, nil
}

func materializeSiteCoord(shape spatialmath.Geometry, coord r3.Vector, kind CoordKind) (r3.Vector, error) {
	switch kind {
	case CoordCartesianAbsolute:
		return coord, nil
	case CoordCartesianPointerToHull:
		return shape.HullFromCartesian(coord), nil
	case CoordParametricAbsolute:
		return shape.ParametricToCartesian(coord), nil
	case CoordParametricPointerToHull:
		return shape.HullFromParametric(coord), nil
	default:
		return r3.Vector{}, errors.Wrapf(cerrors.ErrUnknownKind, "unknown coord kind %d", kind)
	}
}

// GlobalPose is the agent's pose composed through its cluster, if any:
// clusterless agents report their local pose directly.
func (a *Agent) GlobalPose() spatialmath.Pose {
	if a.Cluster == nil {
		return a.Pose
	}
	return spatialmath.Compose(a.Cluster.Pose, a.Pose)
}

// GlobalPosition is a shorthand for GlobalPose().Point().
func (a *Agent) GlobalPosition() r3.Vector { return a.GlobalPose().Point() }

// Move composes delta into the agent's local position.
func (a *Agent) Move(delta r3.Vector) {
	a.Pose = spatialmath.NewPose(a.Pose.Point().Add(delta), a.Pose.Orientation())
}

// Rotate composes q into the agent's local orientation.
func (a *Agent) Rotate(q quat.Number) {
	a.Pose = spatialmath.NewPose(a.Pose.Point(), quat.Mul(a.Pose.Orientation(), q))
}

// String is an informational summary, not a stable format.
func (a *Agent) String() string {
	clusterID := "none"
	if a.Cluster != nil {
		clusterID = fmt.Sprintf("%d", a.Cluster.ID)
	}
	return fmt.Sprintf("Agent{id=%d type=%q shape=%s cluster=%s sites=%d globalPosition=%v}",
		a.ID, a.Type, a.Shape.Label(), clusterID, len(a.Sites), a.GlobalPosition())
}

package simobj

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/collidercore/spatialmath"
)

// Cluster is a connected assembly of agents sharing one frame of reference.
// An agent belongs to at most one cluster at a time.
type Cluster struct {
	ID     uint64
	Type   string
	Pose   spatialmath.Pose
	Agents map[uint64]*Agent
}

// NewCluster creates an empty Cluster at the zero pose.
func NewCluster(id uint64, typ string) *Cluster {
	return &Cluster{ID: id, Type: typ, Pose: spatialmath.NewZeroPose(), Agents: make(map[uint64]*Agent)}
}

// AddAgent makes a a member of c, moving it out of any prior cluster.
// Re-adding an agent already in c is a no-op (idempotent on repeat
// membership to the same cluster).
func (c *Cluster) AddAgent(a *Agent) {
	if a.Cluster == c {
		return
	}
	if a.Cluster != nil {
		delete(a.Cluster.Agents, a.ID)
	}
	a.Cluster = c
	c.Agents[a.ID] = a
}

// Merge moves every agent of other into c and leaves other empty.
func (c *Cluster) Merge(other *Cluster) {
	for _, a := range other.Agents {
		c.AddAgent(a)
	}
}

// Move composes delta into the cluster's position.
func (c *Cluster) Move(delta r3.Vector) {
	c.Pose = spatialmath.NewPose(c.Pose.Point().Add(delta), c.Pose.Orientation())
}

// Rotate composes q into the cluster's orientation.
func (c *Cluster) Rotate(q quat.Number) {
	c.Pose = spatialmath.NewPose(c.Pose.Point(), quat.Mul(c.Pose.Orientation(), q))
}

// String is an informational summary, not a stable format.
func (c *Cluster) String() string {
	return fmt.Sprintf("Cluster{id=%d type=%q agents=%d position=%v}",
		c.ID, c.Type, len(c.Agents), c.Pose.Point())
}

// Package collision implements the pairwise primitive-to-primitive distance
// and intersection tests, and the per-cluster octree registry that drives
// candidate lookup before running them.
package collision

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/octree"
	"go.viam.com/collidercore/simobj"
)

const (
	defaultInitialTreeDiameter = 100.0
	defaultMinimalCellDiameter = 0.1
	defaultAllowRescaling      = true
)

// Result is the outcome of CheckForCollision: whether candidate intersects
// any non-ignored agent in the queried cluster, which agent is nearest (by
// the octree's best-first search, not necessarily the intersector unless
// Collision is true), and the signed distance to it.
//
// NearestDistance is only meaningful when Collision is true: when no pair
// intersects, it is left at +Inf even though NearestID may still be
// populated with the non-ignored id in the returned leaf that has the
// smallest signed distance to candidate.
type Result struct {
	Collision       bool
	NearestID       *uint64
	NearestDistance float64
}

// Detector owns one Octree per registered cluster and answers nearest-agent
// and pairwise-collision queries against them.
type Detector struct {
	trees map[uint64]*octree.Octree

	initialTreeDiameter float64
	minimalCellDiameter float64
	allowRescaling      bool

	logger golog.Logger
}

// NewDetector returns a Detector with reasonable default tree-build knobs,
// all overridable before the first BuildTree call via the Set* methods.
func NewDetector(logger golog.Logger) *Detector {
	return &Detector{
		trees:               make(map[uint64]*octree.Octree),
		initialTreeDiameter: defaultInitialTreeDiameter,
		minimalCellDiameter: defaultMinimalCellDiameter,
		allowRescaling:      defaultAllowRescaling,
		logger:              logger,
	}
}

// SetInitialTreeDiameter configures the root diameter used by the next
// BuildTree call.
func (d *Detector) SetInitialTreeDiameter(diameter float64) { d.initialTreeDiameter = diameter }

// SetMinimalCellDiameter configures the minimum leaf diameter used by the
// next BuildTree call.
func (d *Detector) SetMinimalCellDiameter(diameter float64) { d.minimalCellDiameter = diameter }

// SetAllowRescaling configures whether the next built tree may expand its
// root on out-of-bounds insertion.
func (d *Detector) SetAllowRescaling(allow bool) { d.allowRescaling = allow }

// BuildTree constructs an octree for cluster, keyed by cluster.ID, and
// populates it with one symmetric cube per agent: centered at the agent's
// global position, with half-side equal to half the largest dimension of
// the agent's shape bounding box.
func (d *Detector) BuildTree(ctx context.Context, cluster *simobj.Cluster) error {
	tree, err := octree.NewUniform(ctx, d.initialTreeDiameter, d.minimalCellDiameter, d.logger)
	if err != nil {
		return errors.Wrapf(err, "building octree for cluster %d", cluster.ID)
	}
	tree.SetAllowResize(d.allowRescaling)

	for _, agent := range cluster.Agents {
		lo, up := agentCube(agent)
		if err := tree.Insert(agent.ID, lo, up); err != nil {
			d.logger.Warnw("octree insert did not fully resize to contain agent",
				"cluster", cluster.ID, "agent", agent.ID, "err", err)
		}
	}
	d.trees[cluster.ID] = tree
	return nil
}

func agentCube(agent *simobj.Agent) (lower, upper r3.Vector) {
	bbox := agent.Shape.BoundingBox()
	diam := bbox.Diameter()
	half := maxOf3(diam.X, diam.Y, diam.Z) / 2
	center := agent.GlobalPosition()
	return r3.Vector{X: center.X - half, Y: center.Y - half, Z: center.Z - half},
		r3.Vector{X: center.X + half, Y: center.Y + half, Z: center.Z + half}
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// CheckForCollision asks the octree registered for cluster for the leaf
// nearest to candidate's global position (ignoring ignore), then runs
// pairwise tests between candidate and every non-ignored agent the leaf
// contains, reporting the nearest intersection if any.
func (d *Detector) CheckForCollision(
	cluster *simobj.Cluster,
	ignore map[uint64]struct{},
	candidate *simobj.Agent,
) (Result, error) {
	tree, ok := d.trees[cluster.ID]
	if !ok {
		return Result{}, errors.Wrapf(cerrors.ErrUnknownID, "no tree registered for cluster %d", cluster.ID)
	}

	leaf := tree.GetNearestIgnoring(candidate.GlobalPosition(), ignore)

	var (
		nearestID       *uint64
		nearestDistance = math.Inf(1)
		closestMiss     = math.Inf(1)
		collided        bool
	)
	for id := range leaf.IDs() {
		if _, skip := ignore[id]; skip {
			continue
		}
		agent, ok := cluster.Agents[id]
		if !ok {
			continue
		}
		dist, isCollision, err := PairwiseDistance(candidate, agent)
		if err != nil {
			return Result{}, err
		}
		if isCollision && (!collided || dist < nearestDistance) {
			collided = true
			nearestDistance = dist
			id := id
			nearestID = &id
		} else if !collided && (nearestID == nil || dist < closestMiss) {
			closestMiss = dist
			id := id
			nearestID = &id
		}
	}

	if !collided {
		return Result{Collision: false, NearestID: nearestID, NearestDistance: math.Inf(1)}, nil
	}
	return Result{Collision: true, NearestID: nearestID, NearestDistance: nearestDistance}, nil
}


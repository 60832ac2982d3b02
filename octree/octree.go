// Package octree implements a spatial index over axis-aligned bounding boxes
// keyed by opaque uint64 identifiers, with dynamic root expansion and
// best-first nearest-box search under an ignore set.
package octree

import (
	"container/heap"
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collidercore/cerrors"
)

const maxResizeSteps = 10

// Octree divides real vector space into equally spaced sub-spaces (octants).
// A node may contain complete ids, or only the portion of an id's bounding
// box that overlaps the node's own box: one id may therefore occupy more
// than one leaf.
type Octree struct {
	nodes       []*octNode
	root        int
	minDiameter r3.Vector
	allowResize bool
	logger      golog.Logger
}

// New creates an Octree whose root spans [lower, upper], subdividing down to
// minDiameter. ctx and logger are threaded through for diagnostics and
// future cancellation; neither is used to suspend work today.
func New(ctx context.Context, lower, upper, minDiameter r3.Vector, logger golog.Logger) (*Octree, error) {
	if lower.X > upper.X || lower.Y > upper.Y || lower.Z > upper.Z {
		return nil, errors.New("error invalid root bounds: lower must not exceed upper")
	}
	t := &Octree{
		nodes:       make([]*octNode, 0, 1),
		minDiameter: minDiameter,
		logger:      logger,
	}
	root := newOctNode(lower, upper, noIndex)
	t.nodes = append(t.nodes, root)
	t.root = 0
	return t, nil
}

// NewSymmetric creates an Octree rooted at the origin with the given
// diameter, e.g. New(-diameter/2, diameter/2, minDiameter).
func NewSymmetric(ctx context.Context, diameter, minDiameter r3.Vector, logger golog.Logger) (*Octree, error) {
	half := diameter.Mul(0.5)
	return New(ctx, half.Mul(-1), half, minDiameter, logger)
}

// NewUniform creates a symmetric Octree with an equal diameter on every axis.
func NewUniform(ctx context.Context, treeDiameter, minCellDiameter float64, logger golog.Logger) (*Octree, error) {
	d := r3.Vector{X: treeDiameter, Y: treeDiameter, Z: treeDiameter}
	m := r3.Vector{X: minCellDiameter, Y: minCellDiameter, Z: minCellDiameter}
	return NewSymmetric(ctx, d, m, logger)
}

// SetAllowResize toggles whether Insert may expand the root to accommodate a
// box that currently lies outside it.
func (t *Octree) SetAllowResize(allow bool) {
	t.allowResize = allow
}

func (t *Octree) rootNode() *octNode { return t.nodes[t.root] }

// Insert adds id's bounding box [lower, upper] into the tree. An id whose box
// spans multiple children is added to every leaf it overlaps.
func (t *Octree) Insert(id uint64, lower, upper r3.Vector) error {
	var resizeErr error
	if t.allowResize && !t.rootNode().isInBounds(lower, upper) {
		resizeErr = t.resize(lower, upper)
	}
	t.insertInto(t.root, id, lower, upper)
	return resizeErr
}

func (t *Octree) insertInto(idx int, id uint64, lower, upper r3.Vector) {
	node := t.nodes[idx]
	d := node.diameter()
	if d.X <= t.minDiameter.X || d.Y <= t.minDiameter.Y || d.Z <= t.minDiameter.Z {
		node.addID(id)
		return
	}

	involved := involvedOctants(node.center, lower, upper)
	for oct := range involved {
		if oct == octNone {
			continue
		}
		if node.children[oct] == noIndex {
			lb, ub := childBounds(node.center, node.lower, node.upper, oct)
			t.makeChild(idx, oct, lb, ub)
		}
	}
	for oct := range involved {
		if oct == octNone {
			continue
		}
		clb, cub := partialBounds(node.center, node.lower, node.upper, oct, lower, upper)
		t.insertInto(node.children[oct], id, clb, cub)
	}
}

func (t *Octree) makeChild(parentIdx int, oct octant, lower, upper r3.Vector) int {
	child := newOctNode(lower, upper, parentIdx)
	t.nodes = append(t.nodes, child)
	idx := len(t.nodes) - 1
	t.nodes[parentIdx].children[oct] = idx
	t.nodes[parentIdx].leaf = false
	return idx
}

// resize doubles the root's half-extents about the origin, up to
// maxResizeSteps times, reparenting every existing child so its absolute
// position is preserved: the old octant-K subtree becomes the grandchild of
// the new octant-K child, nested at that child's *opposite* octant slot.
// Every octant maps to its own true diagonal opposite, including the
// eighth, rather than reusing an earlier slot.
func (t *Octree) resize(lower, upper r3.Vector) error {
	steps := 0
	for !t.rootNode().isInBounds(lower, upper) && steps < maxResizeSteps {
		steps++

		oldRootIdx := t.root
		oldChildren := t.nodes[oldRootIdx].children

		rl, ru := t.nodes[oldRootIdx].lower, t.nodes[oldRootIdx].upper
		newLower := r3.Vector{X: rl.X * 2, Y: rl.Y * 2, Z: rl.Z * 2}
		newUpper := r3.Vector{X: ru.X * 2, Y: ru.Y * 2, Z: ru.Z * 2}

		newRoot := newOctNode(newLower, newUpper, noIndex)
		t.nodes = append(t.nodes, newRoot)
		newRootIdx := len(t.nodes) - 1
		t.root = newRootIdx

		for oct := octant(octFirst); oct <= octEighth; oct++ {
			lb, ub := childBounds(newRoot.center, newLower, newUpper, oct)
			t.makeChild(newRootIdx, oct, lb, ub)
		}

		for oct := octant(octFirst); oct <= octEighth; oct++ {
			oldChild := oldChildren[oct]
			if oldChild == noIndex {
				continue
			}
			newChildIdx := t.nodes[newRootIdx].children[oct]
			t.nodes[oldChild].parent = newChildIdx
			t.nodes[newChildIdx].children[oct.opposite()] = oldChild
			t.nodes[newChildIdx].leaf = false
		}
	}
	if steps >= maxResizeSteps && !t.rootNode().isInBounds(lower, upper) {
		t.logger.Warnw("octree resize exceeded maximum iterations; inserted box may still be out of bounds",
			"steps", steps)
		return cerrors.ErrResizeExceeded
	}
	return nil
}

// Leaf is a read-only view of a leaf node returned by a nearest-box query.
type Leaf struct {
	ids   map[uint64]struct{}
	lower r3.Vector
	upper r3.Vector
}

// IDs returns the set of ids stored in this leaf.
func (l Leaf) IDs() map[uint64]struct{} { return l.ids }

// Bounds returns the leaf's bounding box.
func (l Leaf) Bounds() BBox { return BBox{Lo: l.lower, Hi: l.upper} }

func leafFromNode(n *octNode) *Leaf {
	return &Leaf{ids: n.ids, lower: n.lower, upper: n.upper}
}

// GetNearest returns the leaf whose box minimizes minDistance to q. If
// the tree has no matching leaf (degenerate/empty tree), the root is
// returned wrapped as a leaf view.
func (t *Octree) GetNearest(q r3.Vector) *Leaf {
	return t.getNearest(q, nil)
}

// GetNearestIgnoring is GetNearest but skips any leaf whose id set is a
// subset of ignore.
func (t *Octree) GetNearestIgnoring(q r3.Vector, ignore map[uint64]struct{}) *Leaf {
	return t.getNearest(q, ignore)
}

func (t *Octree) getNearest(q r3.Vector, ignore map[uint64]struct{}) *Leaf {
	pq := &nodeHeap{}
	heap.Init(pq)
	heap.Push(pq, heapItem{idx: t.root, dist: t.nodes[t.root].minDistance(q)})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(heapItem)
		node := t.nodes[item.idx]
		if node.leaf && !subsetOf(node.ids, ignore) {
			return leafFromNode(node)
		}
		for _, c := range node.children {
			if c == noIndex {
				continue
			}
			heap.Push(pq, heapItem{idx: c, dist: t.nodes[c].minDistance(q)})
		}
	}
	return leafFromNode(t.rootNode())
}

func subsetOf(ids, ignore map[uint64]struct{}) bool {
	if len(ignore) == 0 {
		return len(ids) == 0
	}
	for id := range ids {
		if _, ok := ignore[id]; !ok {
			return false
		}
	}
	return true
}

type heapItem struct {
	idx  int
	dist float64
}

// nodeHeap is a min-heap over heapItem.dist, implementing container/heap's
// interface directly: no third-party priority-queue library appears in the
// retrieved pack for this exact purpose (a sibling example, arx-os-arxos's
// spatial R-tree, hand-rolls the identical sort.Interface-based pattern
// rather than importing one), and container/heap is the idiomatic stdlib
// choice for a bounded best-first search like this one.
type nodeHeap []heapItem

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

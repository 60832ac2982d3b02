package octree

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// octNode is one arena element. Parent/child links are arena indices, not
// pointers, so node ownership is single (the Octree's node slice) and no
// reference cycle ever needs breaking.
type octNode struct {
	center, lower, upper r3.Vector
	parent               int
	children             [8]int
	ids                  map[uint64]struct{}
	leaf, empty          bool
}

const noIndex = -1

func newOctNode(lower, upper r3.Vector, parent int) *octNode {
	n := &octNode{
		lower:  lower,
		upper:  upper,
		parent: parent,
		leaf:   true,
		empty:  true,
	}
	n.center = lower.Add(upper).Mul(0.5)
	for i := range n.children {
		n.children[i] = noIndex
	}
	return n
}

func (n *octNode) isRoot() bool { return n.parent == noIndex }

func (n *octNode) diameter() r3.Vector {
	return r3.Vector{
		X: math.Abs(n.upper.X - n.lower.X),
		Y: math.Abs(n.upper.Y - n.lower.Y),
		Z: math.Abs(n.upper.Z - n.lower.Z),
	}
}

func (n *octNode) addID(id uint64) {
	if n.ids == nil {
		n.ids = make(map[uint64]struct{})
	}
	n.ids[id] = struct{}{}
	n.empty = false
}

func (n *octNode) isInBounds(lower, upper r3.Vector) bool {
	return lower.X >= n.lower.X && lower.Y >= n.lower.Y && lower.Z >= n.lower.Z &&
		upper.X <= n.upper.X && upper.Y <= n.upper.Y && upper.Z <= n.upper.Z
}

// minDistance is the Euclidean distance from p to this node's box surface,
// 0 when p lies inside.
func (n *octNode) minDistance(p r3.Vector) float64 {
	nearest := func(lo, hi, v float64) float64 {
		if v < lo || v > hi {
			if math.Abs(lo-v) <= math.Abs(hi-v) {
				return lo - v
			}
			return hi - v
		}
		return 0
	}
	dx := nearest(n.lower.X, n.upper.X, p.X)
	dy := nearest(n.lower.Y, n.upper.Y, p.Y)
	dz := nearest(n.lower.Z, n.upper.Z, p.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (n *octNode) String() string {
	return fmt.Sprintf(
		"octNode{leaf=%t empty=%t root=%t lower=%v upper=%v center=%v ids=%d}",
		n.leaf, n.empty, n.isRoot(), n.lower, n.upper, n.center, len(n.ids),
	)
}

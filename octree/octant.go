package octree

import "github.com/golang/geo/r3"

// octant identifies one of the 8 equally sized sectors of space around a
// node's center, or none when a box straddles the center along some axis.
type octant int

const (
	octFirst  octant = iota // (+,+,+)
	octSecond               // (-,+,+)
	octThird                // (-,-,+)
	octFourth               // (+,-,+)
	octFifth                // (+,+,-)
	octSixth                // (-,+,-)
	octSeventh              // (-,-,-)
	octEighth               // (+,-,-)
	octNone
)

// opposite returns the octant diagonally opposite o, used by the resize
// reparent rule so a doubled root hands each old child to its true
// sibling-opposite subtree.
func (o octant) opposite() octant {
	switch o {
	case octFirst:
		return octSeventh
	case octSecond:
		return octEighth
	case octThird:
		return octFifth
	case octFourth:
		return octSixth
	case octFifth:
		return octThird
	case octSixth:
		return octFourth
	case octSeventh:
		return octFirst
	case octEighth:
		return octSecond
	default:
		return octNone
	}
}

// octantOfPoint classifies a single point relative to center.
func octantOfPoint(center, p r3.Vector) octant {
	switch {
	case p.X >= center.X && p.Y >= center.Y && p.Z >= center.Z:
		return octFirst
	case p.X < center.X && p.Y >= center.Y && p.Z >= center.Z:
		return octSecond
	case p.X < center.X && p.Y < center.Y && p.Z >= center.Z:
		return octThird
	case p.X >= center.X && p.Y < center.Y && p.Z >= center.Z:
		return octFourth
	case p.X >= center.X && p.Y >= center.Y && p.Z < center.Z:
		return octFifth
	case p.X < center.X && p.Y >= center.Y && p.Z < center.Z:
		return octSixth
	case p.X < center.X && p.Y < center.Y && p.Z < center.Z:
		return octSeventh
	default:
		return octEighth
	}
}

// octantOfBounds classifies a box into the octant it fits entirely inside,
// or octNone if it straddles the center along any axis.
func octantOfBounds(center r3.Vector, lower, upper r3.Vector) octant {
	switch {
	case lower.X >= center.X && lower.Y >= center.Y && lower.Z >= center.Z:
		return octFirst
	case upper.X < center.X && lower.Y >= center.Y && lower.Z >= center.Z:
		return octSecond
	case upper.X < center.X && upper.Y < center.Y && lower.Z >= center.Z:
		return octThird
	case lower.X >= center.X && upper.Y < center.Y && lower.Z >= center.Z:
		return octFourth
	case lower.X >= center.X && lower.Y >= center.Y && upper.Z < center.Z:
		return octFifth
	case upper.X < center.X && lower.Y >= center.Y && upper.Z < center.Z:
		return octSixth
	case upper.X < center.X && upper.Y < center.Y && upper.Z < center.Z:
		return octSeventh
	case lower.X >= center.X && upper.Y < center.Y && upper.Z < center.Z:
		return octEighth
	default:
		return octNone
	}
}

// involvedOctants returns the distinct octants touched by the 8 corners of
// the box described by lower/upper, relative to center. Size is 1..8.
func involvedOctants(center, lower, upper r3.Vector) map[octant]struct{} {
	corners := [8]r3.Vector{
		{X: upper.X, Y: upper.Y, Z: upper.Z},
		{X: lower.X, Y: upper.Y, Z: upper.Z},
		{X: lower.X, Y: lower.Y, Z: upper.Z},
		{X: upper.X, Y: lower.Y, Z: upper.Z},
		{X: upper.X, Y: upper.Y, Z: lower.Z},
		{X: lower.X, Y: upper.Y, Z: lower.Z},
		{X: lower.X, Y: lower.Y, Z: lower.Z},
		{X: upper.X, Y: lower.Y, Z: lower.Z},
	}
	set := make(map[octant]struct{}, 8)
	for _, c := range corners {
		set[octantOfPoint(center, c)] = struct{}{}
	}
	return set
}

// childBounds returns the exact lower/upper bounds of the given octant's
// child region within a node spanning [lower, upper] around center.
func childBounds(center, lower, upper r3.Vector, o octant) (lb, ub r3.Vector) {
	switch o {
	case octFirst:
		return center, upper
	case octSecond:
		return r3.Vector{X: lower.X, Y: center.Y, Z: center.Z}, r3.Vector{X: center.X, Y: upper.Y, Z: upper.Z}
	case octThird:
		return r3.Vector{X: lower.X, Y: lower.Y, Z: center.Z}, r3.Vector{X: center.X, Y: center.Y, Z: upper.Z}
	case octFourth:
		return r3.Vector{X: center.X, Y: lower.Y, Z: center.Z}, r3.Vector{X: upper.X, Y: center.Y, Z: upper.Z}
	case octFifth:
		return r3.Vector{X: center.X, Y: center.Y, Z: lower.Z}, r3.Vector{X: upper.X, Y: upper.Y, Z: center.Z}
	case octSixth:
		return r3.Vector{X: lower.X, Y: center.Y, Z: lower.Z}, r3.Vector{X: center.X, Y: upper.Y, Z: center.Z}
	case octSeventh:
		return lower, center
	case octEighth:
		return r3.Vector{X: center.X, Y: lower.Y, Z: lower.Z}, r3.Vector{X: upper.X, Y: center.Y, Z: center.Z}
	default:
		return r3.Vector{}, r3.Vector{}
	}
}

// partialBounds clips [lower, upper] against the given child octant of a node
// spanning [nodeLower, nodeUpper] around center, yielding the sub-box the
// inserted box occupies inside that octant.
func partialBounds(center, nodeLower, nodeUpper r3.Vector, o octant, lower, upper r3.Vector) (lb, ub r3.Vector) {
	cLo, cHi := childBounds(center, nodeLower, nodeUpper, o)
	return r3.Vector{X: max(lower.X, cLo.X), Y: max(lower.Y, cLo.Y), Z: max(lower.Z, cLo.Z)},
		r3.Vector{X: min(upper.X, cHi.X), Y: min(upper.Y, cHi.Y), Z: min(upper.Z, cHi.Z)}
}

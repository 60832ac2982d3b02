// Package cerrors defines the sentinel error kinds surfaced by collidercore's
// subsystems. Callers match on these with errors.Is; wrapping is done with
// github.com/pkg/errors at each call boundary so stack traces survive.
package cerrors

import "github.com/pkg/errors"

var (
	// ErrInvalidShape is returned when a shape dimension is non-positive.
	ErrInvalidShape = errors.New("error shape dimension must be positive")

	// ErrDuplicateID is returned when an agent/cluster/site id clashes within its scope.
	ErrDuplicateID = errors.New("error duplicate id within scope")

	// ErrUnknownID is returned when an agent/cluster/site id cannot be resolved.
	ErrUnknownID = errors.New("error unknown id")

	// ErrUnknownType is returned when an agent type is not present in the meta spec.
	ErrUnknownType = errors.New("error unknown agent type")

	// ErrUnknownKind is returned for an unrecognized CoordKind/ShapeKind integer value.
	ErrUnknownKind = errors.New("error unknown kind")

	// ErrSiteAlreadyConnected is returned when connecting a site that already has a peer.
	ErrSiteAlreadyConnected = errors.New("error site is already connected")

	// ErrClusterMismatch names an operation spanning entities from incompatible clusters.
	// No function in this module returns it; it is exported for hosts to use.
	ErrClusterMismatch = errors.New("error agents belong to incompatible clusters")

	// ErrMathDomain is returned converting a zero-length vector (or, for a cylinder, any
	// point on its axis) to parametric coordinates.
	ErrMathDomain = errors.New("error math domain: zero-length vector has no parametric form")

	// ErrResizeExceeded is a non-fatal warning: the octree hit its resize iteration cap
	// and the inserted box may still lie outside the root.
	ErrResizeExceeded = errors.New("error octree resize exceeded maximum allowed iterations")
)

package simobj

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/spatialmath"
)

// SiteSpec describes one site to be materialized on an agent built from an
// AgentSpec. Coord's three scalars are interpreted according to Kind.
type SiteSpec struct {
	ID    uint64
	Type  string
	Coord r3.Vector
	Kind  CoordKind
}

// NewSiteSpec builds a SiteSpec from raw scalars, mirroring
// createSiteSpec(id, type, a, b, c, kind).
func NewSiteSpec(id uint64, typ string, a, b, c float64, kind CoordKind) SiteSpec {
	return SiteSpec{ID: id, Type: typ, Coord: r3.Vector{X: a, Y: b, Z: c}, Kind: kind}
}

// AgentSpec is a named template for building agents: a shape plus the sites
// that should be materialized on every agent instantiated from it.
type AgentSpec struct {
	Type  string
	Shape spatialmath.Geometry
	Sites []SiteSpec
}

// NewAgentSpec validates that Sites carries no duplicate site ids, returning
// a multierr aggregate of every duplicate found.
func NewAgentSpec(typ string, shape spatialmath.Geometry, sites []SiteSpec) (AgentSpec, error) {
	seen := make(map[uint64]struct{}, len(sites))
	var errs error
	for _, s := range sites {
		if _, ok := seen[s.ID]; ok {
			errs = multierr.Append(errs, errors.Wrapf(cerrors.ErrDuplicateID, "duplicate site id %d in agent spec %q", s.ID, typ))
			continue
		}
		seen[s.ID] = struct{}{}
	}
	if errs != nil {
		return AgentSpec{}, errs
	}
	return AgentSpec{Type: typ, Shape: shape, Sites: sites}, nil
}

// MetaSpec is a registry of AgentSpecs keyed by agent type name.
type MetaSpec struct {
	agents map[string]AgentSpec
}

// NewMetaSpec builds a MetaSpec from a list of AgentSpecs, failing (as a
// multierr aggregate) on any duplicate type name.
func NewMetaSpec(specs []AgentSpec) (*MetaSpec, error) {
	m := make(map[string]AgentSpec, len(specs))
	var errs error
	for _, s := range specs {
		if _, ok := m[s.Type]; ok {
			errs = multierr.Append(errs, errors.Wrapf(cerrors.ErrDuplicateID, "duplicate agent type %q", s.Type))
			continue
		}
		m[s.Type] = s
	}
	if errs != nil {
		return nil, errs
	}
	return &MetaSpec{agents: m}, nil
}

// Lookup returns the AgentSpec registered under typ.
func (m *MetaSpec) Lookup(typ string) (AgentSpec, error) {
	spec, ok := m.agents[typ]
	if !ok {
		return AgentSpec{}, errors.Wrapf(cerrors.ErrUnknownType, "unknown agent type %q", typ)
	}
	return spec, nil
}

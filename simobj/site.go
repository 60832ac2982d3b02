package simobj

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/collidercore/cerrors"
	"go.viam.com/collidercore/spatialmath"
)

// Site is an attachment point on an Agent, positioned in the agent's local
// frame. Two sites may be linked by Connect, at which point each becomes the
// other's Peer.
type Site struct {
	ID    uint64
	Type  string
	Local r3.Vector
	Owner *Agent
	Peer  *Site
}

func newSite(id uint64, typ string, local r3.Vector, owner *Agent) *Site {
	return &Site{ID: id, Type: typ, Local: local, Owner: owner}
}

// GlobalPosition composes the site's local offset through its owning agent's
// global pose.
func (s *Site) GlobalPosition() r3.Vector {
	global := s.Owner.GlobalPose()
	return global.Point().Add(spatialmath.Rotate(global.Orientation(), s.Local))
}

// OutwardDirection is the site's local position vector from the owning
// agent's center — already on, or pointing toward, the shape's hull.
func (s *Site) OutwardDirection() r3.Vector { return s.Local }

// String is an informational summary, not a stable format.
func (s *Site) String() string {
	connected := "unconnected"
	if s.Peer != nil {
		connected = fmt.Sprintf("peer=%d/%d", s.Peer.Owner.ID, s.Peer.ID)
	}
	return fmt.Sprintf("Site{id=%d type=%q owner=%d local=%v %s}",
		s.ID, s.Type, s.Owner.ID, s.Local, connected)
}

// Connect links s and other as mutual peers. Fails if either site is already
// connected.
func (s *Site) Connect(other *Site) error {
	if s.Peer != nil || other.Peer != nil {
		return cerrors.ErrSiteAlreadyConnected
	}
	s.Peer = other
	other.Peer = s
	return nil
}

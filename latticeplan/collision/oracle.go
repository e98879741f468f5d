// Package collision defines the collision-checking boundary the lattice planner consults
// during successor generation. Implementations own whatever world representation they need;
// the planner core only ever sees a boolean verdict.
package collision

import "context"

// Request describes the configuration to check: the active joint group and the joint
// values already pushed into the shared kinematics.Model (the collision oracle is assumed
// to read the same live robot state the kinematics model was just updated with).
type Request struct {
	GroupName string
}

// Result carries the verdict this core consults. Additional diagnostic fields a real
// implementation might report (contact points, penetration depth) are deliberately not
// part of this boundary; the planner only branches on InCollision.
type Result struct {
	InCollision bool
}

// Oracle is the collision-checking collaborator.
type Oracle interface {
	Check(ctx context.Context, req Request) (Result, error)
}

// Package fieldoracle is a small collision.Oracle that checks the tip link's current
// workspace voxel against a distfield.Field's clearance, for standalone demonstration and
// CLI use. It stands in for a real swept-volume or mesh-based collision checker the way
// linear.Model stands in for a real forward-kinematics solver.
package fieldoracle

import (
	"context"

	"github.com/motionlattice/planner/latticeplan/collision"
	"github.com/motionlattice/planner/latticeplan/distfield"
	"github.com/motionlattice/planner/latticeplan/kinematics"
)

// Oracle checks collision.Request by reading the tip link's current pose from kinModel
// (which the caller must have already pushed the configuration of interest into) and
// looking up the corresponding cell's clearance in field. A pose outside the grid, or a
// cell with zero clearance, is reported as in collision.
type Oracle struct {
	kinModel kinematics.Model
	field    distfield.Field
}

// New constructs an Oracle sharing kinModel with whatever else drives it (normally the same
// latticeplan.Environment this Oracle is registered with).
func New(kinModel kinematics.Model, field distfield.Field) *Oracle {
	return &Oracle{kinModel: kinModel, field: field}
}

func (o *Oracle) Check(ctx context.Context, req collision.Request) (collision.Result, error) {
	transform, err := o.kinModel.TipLinkTransform(req.GroupName)
	if err != nil {
		return collision.Result{}, err
	}
	x, y, z := transform[12], transform[13], transform[14]
	i, j, k, ok := o.field.WorldToGrid(x, y, z)
	if !ok {
		return collision.Result{InCollision: true}, nil
	}
	return collision.Result{InCollision: o.field.DistanceFromCell(i, j, k) <= 0}, nil
}

// Package kinematics defines the forward-kinematics boundary the lattice planner consults
// to find the workspace voxel of a candidate joint configuration. The planner core treats
// implementations as an opaque producer interface; it never computes forward kinematics
// itself.
package kinematics

import "github.com/go-gl/mathgl/mgl64"

// Model is the forward-kinematics collaborator: given a full joint vector for a named
// group, it reports the tip link's pose as a 4x4 affine transform.
type Model interface {
	// SetJointValues updates the model's internal joint state. v is ordered according to
	// GroupJointNames(group).
	SetJointValues(group string, v []float64) error

	// TipLinkTransform returns the current tip link pose as a 4x4 affine transform, world
	// frame, following the teacher's go-gl/mathgl convention for rigid transforms.
	TipLinkTransform(group string) (mgl64.Mat4, error)

	// GroupJointNames returns the ordered joint names belonging to group, or an error if
	// the group is unknown.
	GroupJointNames(group string) ([]string, error)
}

// Package inject provides an injectable fake of kinematics.Model for tests, following the
// rdk testutils/inject pattern: embed the real interface so the zero value already
// satisfies it, and override only the methods a given test cares about via Func fields.
package inject

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/motionlattice/planner/latticeplan/kinematics"
)

// Model is an injectable kinematics.Model.
type Model struct {
	kinematics.Model
	SetJointValuesFunc     func(group string, v []float64) error
	TipLinkTransformFunc   func(group string) (mgl64.Mat4, error)
	GroupJointNamesFunc    func(group string) ([]string, error)
}

// SetJointValues calls the injected SetJointValuesFunc or the embedded implementation.
func (m *Model) SetJointValues(group string, v []float64) error {
	if m.SetJointValuesFunc == nil {
		return m.Model.SetJointValues(group, v)
	}
	return m.SetJointValuesFunc(group, v)
}

// TipLinkTransform calls the injected TipLinkTransformFunc or the embedded implementation.
func (m *Model) TipLinkTransform(group string) (mgl64.Mat4, error) {
	if m.TipLinkTransformFunc == nil {
		return m.Model.TipLinkTransform(group)
	}
	return m.TipLinkTransformFunc(group)
}

// GroupJointNames calls the injected GroupJointNamesFunc or the embedded implementation.
func (m *Model) GroupJointNames(group string) ([]string, error) {
	if m.GroupJointNamesFunc == nil {
		return m.Model.GroupJointNames(group)
	}
	return m.GroupJointNamesFunc(group)
}

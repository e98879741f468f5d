// Package linear is a small analytic kinematics.Model for standalone demonstration and CLI
// use: the tip link's position is a fixed per-joint offset vector summed over the current
// joint values, translation-only, no orientation. It stands in for the real forward-
// kinematics stack (URDF/DH-chain solvers) a host would normally inject, the same way the
// teacher's kinmath package builds mgl64.Mat4 affine transforms from simpler primitives
// before a full referenceframe.Model is available.
package linear

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// JointOffset is one joint's contribution to the tip link's world position per unit of
// joint value.
type JointOffset struct {
	Name string
	X, Y, Z float64
}

// Model is a translation-only analytic kinematics.Model over a single joint group.
type Model struct {
	group   string
	offsets []JointOffset
	origin  mgl64.Vec3
	values  []float64
}

// New constructs a Model for group, with the tip link at origin when every joint is 0.
func New(group string, origin mgl64.Vec3, offsets []JointOffset) *Model {
	return &Model{
		group:   group,
		offsets: offsets,
		origin:  origin,
		values:  make([]float64, len(offsets)),
	}
}

func (m *Model) SetJointValues(group string, v []float64) error {
	if group != m.group {
		return errors.Errorf("linear: unknown joint group %q", group)
	}
	if len(v) != len(m.offsets) {
		return errors.Errorf("linear: expected %d joint values, got %d", len(m.offsets), len(v))
	}
	copy(m.values, v)
	return nil
}

func (m *Model) TipLinkTransform(group string) (mgl64.Mat4, error) {
	if group != m.group {
		return mgl64.Mat4{}, errors.Errorf("linear: unknown joint group %q", group)
	}
	pos := m.origin
	for i, off := range m.offsets {
		pos = pos.Add(mgl64.Vec3{off.X, off.Y, off.Z}.Mul(m.values[i]))
	}
	transform := mgl64.Ident4()
	transform[12], transform[13], transform[14] = pos.X(), pos.Y(), pos.Z()
	return transform, nil
}

func (m *Model) GroupJointNames(group string) ([]string, error) {
	if group != m.group {
		return nil, errors.Errorf("linear: unknown joint group %q", group)
	}
	names := make([]string, len(m.offsets))
	for i, off := range m.offsets {
		names[i] = off.Name
	}
	return names, nil
}

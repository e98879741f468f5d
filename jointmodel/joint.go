// Package jointmodel defines per-degree-of-freedom semantics for the lattice planner:
// joint limits, continuity, and the continuous/quantized distance functions that the
// motion primitives and heuristic are built from.
package jointmodel

import (
	"math"

	"github.com/pkg/errors"

	"github.com/motionlattice/planner/utils"
)

// Descriptor describes one degree of freedom of the kinematic chain being planned over.
// Bounded joints (IsContinuous == false) reject motion outside [Lower, Upper]; continuous
// joints wrap at +-pi and have no meaningful Lower/Upper.
type Descriptor struct {
	Index        int
	IsContinuous bool
	Lower        float64
	Upper        float64
	Step         float64
}

// Validate checks the invariants a Descriptor must hold before it can be used: Step must
// be strictly positive, and a bounded joint's bounds must be ordered.
func (d Descriptor) Validate() error {
	if d.Step <= 0 {
		return errors.Errorf("joint %d: step must be > 0, got %v", d.Index, d.Step)
	}
	if !d.IsContinuous && d.Lower > d.Upper {
		return errors.Errorf("joint %d: lower bound %v exceeds upper bound %v", d.Index, d.Lower, d.Upper)
	}
	return nil
}

// Apply moves angle by delta (a signed multiple of Step, typically +-Step). For a bounded
// joint, it reports !ok if the result would leave [Lower, Upper]. For a continuous joint,
// the result is always ok and is wrapped into [-pi, pi].
func (d Descriptor) Apply(angle, delta float64) (float64, bool) {
	next := angle + delta
	if d.IsContinuous {
		return utils.ModAngRad(next), true
	}
	if next < d.Lower || next > d.Upper {
		return 0, false
	}
	return next, true
}

// ContinuousDistance returns the absolute shortest angular distance between a and b: the
// wrap-around distance for continuous joints, |a-b| for bounded joints.
func (d Descriptor) ContinuousDistance(a, b float64) float64 {
	if d.IsContinuous {
		return math.Abs(utils.AngleDiffRad(a, b))
	}
	return math.Abs(a - b)
}

// IntegerDistance quantizes ContinuousDistance(a, b) into a whole number of Step-sized
// lattice hops. Two coordinates exactly one primitive apart must report a distance of
// exactly 1, so this is a ceiling with a floor correction for exact multiples of step:
// d=0 -> 0, 0<d<=step -> 1, step<d<=2*step -> 2, and so on.
func (d Descriptor) IntegerDistance(a, b float64) uint32 {
	dist := d.ContinuousDistance(a, b)
	if dist <= 0 {
		return 0
	}
	ratio := dist / d.Step
	n := math.Ceil(ratio - 1e-9)
	if n < 1 {
		n = 1
	}
	return uint32(n)
}

package latticeplan

import "github.com/motionlattice/planner/jointmodel"

// Primitive is one candidate single-joint move: apply +-Delta to JointIndex. Primitives are
// pure — Apply never mutates its input and either returns a successor vector or reports
// inapplicable.
type Primitive struct {
	JointIndex int
	Delta      float64
}

// Apply applies the primitive to angles, using descriptors[p.JointIndex] to decide whether
// the move is in-range (bounded joints) or to wrap it (continuous joints). The returned
// slice is a fresh copy; angles is never mutated.
func (p Primitive) Apply(angles []float64, descriptors []jointmodel.Descriptor) ([]float64, bool) {
	next, ok := descriptors[p.JointIndex].Apply(angles[p.JointIndex], p.Delta)
	if !ok {
		return nil, false
	}
	out := append([]float64(nil), angles...)
	out[p.JointIndex] = next
	return out, true
}

// MotionPrimitiveSet is the finite, index-addressable action set applied at every
// expansion: +-one quantization step per active DOF, yielding 2N primitives in a stable
// order. A uniform finite action set buys a trivial uniform edge cost and a consistent
// heuristic, at the cost of a wider branching factor than analytic multi-joint motions;
// restricting each primitive to a single joint also keeps successor forward-kinematics
// cheap, since only one joint's subtree pose changes.
type MotionPrimitiveSet struct {
	primitives []Primitive
}

// Setup builds the 2N primitives for the given descriptors: for each joint index i in
// order, emit (+step on i) then (-step on i). The order and count are fixed for the
// lifetime of the set and are what StateEntry.LastPrimitiveApplied indexes into.
func Setup(descriptors []jointmodel.Descriptor) *MotionPrimitiveSet {
	prims := make([]Primitive, 0, 2*len(descriptors))
	for _, d := range descriptors {
		prims = append(prims, Primitive{JointIndex: d.Index, Delta: d.Step})
		prims = append(prims, Primitive{JointIndex: d.Index, Delta: -d.Step})
	}
	return &MotionPrimitiveSet{primitives: prims}
}

// Primitives returns the fixed, ordered primitive list.
func (s *MotionPrimitiveSet) Primitives() []Primitive {
	return s.primitives
}

// Len returns the primitive count, 2N for N active DOFs.
func (s *MotionPrimitiveSet) Len() int {
	return len(s.primitives)
}

package search

import (
	"context"

	"github.com/motionlattice/planner/latticeplan"
)

// LatticeAdapter adapts a *latticeplan.Environment to the Environment interface this
// harness consumes, converting latticeplan.Successor to search.Successor at the boundary
// so the core package never has to know this harness exists.
type LatticeAdapter struct {
	Env *latticeplan.Environment
}

func (a LatticeAdapter) StartID() uint32 { return a.Env.StartID() }
func (a LatticeAdapter) GoalID() uint32  { return a.Env.GoalID() }

func (a LatticeAdapter) Successors(ctx context.Context, id uint32) ([]Successor, error) {
	raw, err := a.Env.Successors(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]Successor, len(raw))
	for i, s := range raw {
		out[i] = Successor{ID: s.ID, Cost: s.Cost}
	}
	return out, nil
}

func (a LatticeAdapter) HeuristicToGoal(id uint32) (uint32, error) {
	return a.Env.HeuristicToGoal(id)
}

// Package search is a minimal weighted-A* harness that consumes a lattice planning
// Environment's successor/heuristic oracle. It exists only to make the module end-to-end
// runnable and to exercise the Testable Properties end-to-end; it is explicitly not part of
// the planning core. No third-party graph-search library in the example corpus models
// on-demand/implicit-graph expansion the way Environment's Successors/Heuristic interface
// requires, so this harness is deliberately small and built on stdlib container/heap, the
// same way the teacher itself reaches for stdlib containers rather than a dependency for
// single-purpose data structures internal to one algorithm.
package search

import (
	"container/heap"
	"context"

	"github.com/pkg/errors"
)

// Environment is the subset of latticeplan.Environment's contract this harness needs. Run
// takes this interface rather than the concrete *latticeplan.Environment, so Run stays a
// generic consumer of "successors + heuristic" and can be tested against fakes; only
// LatticeAdapter refers to the concrete type.
type Environment interface {
	StartID() uint32
	GoalID() uint32
	Successors(ctx context.Context, id uint32) ([]Successor, error)
	HeuristicToGoal(id uint32) (uint32, error)
}

// Successor mirrors latticeplan.Successor structurally; LatticeAdapter copies each
// latticeplan.Successor into one of these at the boundary.
type Successor struct {
	ID   uint32
	Cost uint32
}

type openEntry struct {
	id       uint32
	gScore   uint64
	fScore   uint64
	index    int
}

type openHeap []*openEntry

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].fScore < h[j].fScore }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *openHeap) Push(x interface{}) {
	entry := x.(*openEntry)
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// Epsilon greater than 1 trades optimality for speed (weighted A*); 1.0 recovers plain A*.
// This is the one non-optimal-beyond-A* search strategy this harness implements; it never
// performs predecessor/backward search.
const DefaultEpsilon = 1.0

// Result is the outcome of a successful Run: a Path of state ids from start to goal
// (inclusive). When no path is returned, Run reports why through its error value instead.
type Result struct {
	Path []uint32
}

// Run performs weighted A* from env.StartID() to env.GoalID(), expanding states via
// env.Successors and prioritizing the open set by g + epsilon*h. It returns ErrNoPath if
// the open set empties before the goal is reached.
func Run(ctx context.Context, env Environment, epsilon float64) (Result, error) {
	if epsilon <= 0 {
		return Result{}, errors.New("search: epsilon must be > 0")
	}

	start := env.StartID()
	goal := env.GoalID()

	gScore := map[uint32]uint64{start: 0}
	cameFrom := map[uint32]uint32{}

	open := &openHeap{}
	heap.Init(open)
	startH, err := env.HeuristicToGoal(start)
	if err != nil {
		return Result{}, err
	}
	heap.Push(open, &openEntry{id: start, gScore: 0, fScore: weightedF(0, startH, epsilon)})

	closed := map[uint32]bool{}

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		current := heap.Pop(open).(*openEntry)
		if closed[current.id] {
			continue
		}
		closed[current.id] = true

		if current.id == goal {
			return Result{Path: reconstructPath(cameFrom, start, goal)}, nil
		}

		successors, err := env.Successors(ctx, current.id)
		if err != nil {
			return Result{}, err
		}

		for _, succ := range successors {
			if closed[succ.ID] {
				continue
			}
			tentativeG := gScore[current.id] + uint64(succ.Cost)
			existingG, seen := gScore[succ.ID]
			if seen && tentativeG >= existingG {
				continue
			}
			gScore[succ.ID] = tentativeG
			cameFrom[succ.ID] = current.id

			h, err := env.HeuristicToGoal(succ.ID)
			if err != nil {
				return Result{}, err
			}
			heap.Push(open, &openEntry{id: succ.ID, gScore: tentativeG, fScore: weightedF(tentativeG, h, epsilon)})
		}
	}

	return Result{}, ErrNoPath
}

// ErrNoPath is returned when the open set empties without reaching the goal.
var ErrNoPath = errors.New("search: no path found")

func weightedF(g uint64, h uint32, epsilon float64) uint64 {
	return g + uint64(float64(h)*epsilon)
}

func reconstructPath(cameFrom map[uint32]uint32, start, goal uint32) []uint32 {
	path := []uint32{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append([]uint32{prev}, path...)
		cur = prev
	}
	return path
}

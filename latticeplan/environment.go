package latticeplan

import (
	"context"
	"fmt"
	"time"

	"github.com/motionlattice/planner/bfs3d"
	"github.com/motionlattice/planner/jointmodel"
	"github.com/motionlattice/planner/latticeplan/collision"
	"github.com/motionlattice/planner/latticeplan/distfield"
	"github.com/motionlattice/planner/latticeplan/kinematics"
	"github.com/motionlattice/planner/logging"
)

// Successor is one entry in the list Successors returns: a reachable state id and the
// uniform edge cost to reach it.
type Successor struct {
	ID   uint32
	Cost uint32
}

// Stats are read-only diagnostic counters accumulated during a plan, mirroring the
// planning_statistics_ counters (total_expansions_, coll_checks_, total_coll_check_time_)
// the original environment_chain3d.cpp kept. They introduce no new invariants; Expansions
// counts Successors calls on non-goal states, CollisionChecks and CollisionCheckTime cover
// the checks made inside Successors.
type Stats struct {
	Expansions         uint64
	CollisionChecks     uint64
	CollisionCheckTime time.Duration
}

type environmentPhase int

const (
	phaseUninitialized environmentPhase = iota
	phaseConfigured
	phaseServing
	phaseDrained
)

// Environment is the top-level coordinator consumed by an external heuristic search
// engine: it builds the BFS workspace field, interns the start and goal states, serves
// successor and heuristic queries on demand, and reconstructs trajectories from id
// sequences. An Environment is scoped to a single plan request; it is not safe for
// concurrent use — a host that wants to plan several requests in parallel must construct
// one Environment per worker.
type Environment struct {
	cfg         Config
	descriptors []jointmodel.Descriptor
	jointNames  []string

	kinModel   kinematics.Model
	collOracle collision.Oracle
	selfField  distfield.Field
	worldField distfield.Field

	logger logging.Logger

	interner     *StateInterner
	primitiveSet *MotionPrimitiveSet
	bfsGrid      *bfs3d.Grid

	groupName string
	startID   uint32
	goalID    uint32

	stats Stats
	phase environmentPhase
}

// NewEnvironment constructs an Environment for a kinematic chain with the given per-DOF
// descriptors and joint names (descriptors[i] and jointNames[i] describe the same DOF).
// kinModel, collOracle, selfField, and worldField are the external collaborators; their
// lifetime must cover at least the lifetime of the returned Environment.
func NewEnvironment(
	descriptors []jointmodel.Descriptor,
	jointNames []string,
	kinModel kinematics.Model,
	collOracle collision.Oracle,
	selfField, worldField distfield.Field,
	cfg Config,
	logger logging.Logger,
) *Environment {
	descs := make([]jointmodel.Descriptor, len(descriptors))
	for i, d := range descriptors {
		if d.Step <= 0 {
			d.Step = cfg.LongRangeJointStep
		}
		descs[i] = d
	}
	return &Environment{
		cfg:         cfg,
		descriptors: descs,
		jointNames:  jointNames,
		kinModel:    kinModel,
		collOracle:  collOracle,
		selfField:   selfField,
		worldField:  worldField,
		logger:      logger,
		interner:    NewStateInterner(),
		phase:       phaseUninitialized,
	}
}

func anglesFromMap(jointNames []string, m map[string]float64) ([]float64, bool) {
	out := make([]float64, len(jointNames))
	for i, name := range jointNames {
		v, ok := m[name]
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func quantize(angles []float64, descriptors []jointmodel.Descriptor) []int32 {
	coord := make([]int32, len(angles))
	for i, a := range angles {
		coord[i] = int32(roundHalfAwayFromZero(a / descriptors[i].Step))
	}
	return coord
}

func roundHalfAwayFromZero(x float64) int64 {
	if x >= 0 {
		return int64(x + 0.5)
	}
	return int64(x - 0.5)
}

// Setup validates that start and goal pass collision checks, interns both, builds the
// BFS3D walls from the union of the self- and world-distance fields' zero-clearance cells,
// and runs BFS from the goal's workspace voxel. On success the Environment moves from
// Uninitialized to Configured and is ready to serve successors/heuristic queries.
func (e *Environment) Setup(ctx context.Context, req PlanRequest) error {
	e.groupName = req.GroupName

	if e.selfField.XNumCells() != e.worldField.XNumCells() ||
		e.selfField.YNumCells() != e.worldField.YNumCells() ||
		e.selfField.ZNumCells() != e.worldField.ZNumCells() {
		return NewGridMismatchError(
			[3]int{e.selfField.XNumCells(), e.selfField.YNumCells(), e.selfField.ZNumCells()},
			[3]int{e.worldField.XNumCells(), e.worldField.YNumCells(), e.worldField.ZNumCells()},
		)
	}

	startAngles, ok := anglesFromMap(e.jointNames, req.StartState)
	if !ok {
		return NewInvalidStartError("missing value for one or more joints")
	}
	goalAngles, ok := anglesFromMap(e.jointNames, req.Goal)
	if !ok {
		return NewInvalidGoalError("missing value for one or more joints")
	}

	goalXYZ, err := e.endEffectorVoxel(goalAngles)
	if err != nil {
		return NewInvalidGoalError(err.Error())
	}
	startXYZ, err := e.endEffectorVoxel(startAngles)
	if err != nil {
		return NewInvalidStartError(err.Error())
	}

	if err := e.checkState(ctx, startAngles, NewStartInCollisionError); err != nil {
		return err
	}
	if err := e.checkState(ctx, goalAngles, NewGoalInCollisionError); err != nil {
		return err
	}

	grid, err := bfs3d.NewGrid(e.selfField.XNumCells(), e.selfField.YNumCells(), e.selfField.ZNumCells())
	if err != nil {
		return NewInvariantError(err.Error())
	}
	e.bfsGrid = grid
	e.buildWalls()

	if err := e.bfsGrid.Run(int(goalXYZ[0]), int(goalXYZ[1]), int(goalXYZ[2])); err != nil {
		return NewInvalidGoalError(err.Error())
	}
	e.logger.Infow("bfs field ready", "walls", e.countWalls())

	startEntry, _ := e.interner.Intern(quantize(startAngles, e.descriptors), startAngles, startXYZ, 0)
	e.startID = startEntry.ID
	goalEntry := e.interner.InternDistinct(quantize(goalAngles, e.descriptors), goalAngles, goalXYZ)
	e.goalID = goalEntry.ID

	e.primitiveSet = Setup(e.descriptors)
	e.phase = phaseConfigured
	e.logger.Infow("plan configured", "start_id", e.startID, "goal_id", e.goalID, "primitive_count", e.primitiveSet.Len())
	return nil
}

// checkState sets the kinematic model to angles, runs the collision check, and converts an
// in-collision verdict into the caller-supplied precondition error constructor.
func (e *Environment) checkState(ctx context.Context, angles []float64, onCollision func() error) error {
	if err := e.kinModel.SetJointValues(e.groupName, angles); err != nil {
		return NewInvariantError(err.Error())
	}
	result, err := e.collOracle.Check(ctx, collision.Request{GroupName: e.groupName})
	if err != nil {
		return NewCollisionCheckingUnavailableError(err)
	}
	if result.InCollision {
		return onCollision()
	}
	return nil
}

func (e *Environment) endEffectorVoxel(angles []float64) ([3]int32, error) {
	if err := e.kinModel.SetJointValues(e.groupName, angles); err != nil {
		return [3]int32{}, err
	}
	transform, err := e.kinModel.TipLinkTransform(e.groupName)
	if err != nil {
		return [3]int32{}, err
	}
	x, y, z := transform[12], transform[13], transform[14]
	i, j, k, ok := e.worldField.WorldToGrid(x, y, z)
	if !ok {
		return [3]int32{}, fmt.Errorf("end-effector pose (%.3f, %.3f, %.3f) lies outside the distance field grid", x, y, z)
	}
	return [3]int32{int32(i), int32(j), int32(k)}, nil
}

func (e *Environment) buildWalls() {
	nx, ny, nz := e.selfField.XNumCells(), e.selfField.YNumCells(), e.selfField.ZNumCells()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if e.selfField.DistanceFromCell(i, j, k) <= 0 || e.worldField.DistanceFromCell(i, j, k) <= 0 {
					e.bfsGrid.SetWall(i, j, k)
				}
			}
		}
	}
}

func (e *Environment) countWalls() int {
	nx, ny, nz := e.selfField.XNumCells(), e.selfField.YNumCells(), e.selfField.ZNumCells()
	count := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if e.bfsGrid.IsWall(i, j, k) {
					count++
				}
			}
		}
	}
	return count
}

// StartID returns the interned start state's id.
func (e *Environment) StartID() uint32 { return e.startID }

// GoalID returns the interned goal state's id.
func (e *Environment) GoalID() uint32 { return e.goalID }

// Successors implements the absorbing-goal rule and per-primitive successor generation
// described by the Environment's contract: the goal has no outgoing edges; every other
// state emits at most one successor per primitive, skipping primitives that are
// inapplicable, leave the distance-field grid, or land in collision.
func (e *Environment) Successors(ctx context.Context, id uint32) ([]Successor, error) {
	e.phase = phaseServing
	if id == e.goalID {
		return nil, nil
	}

	entry := e.interner.LookupByID(id)
	if entry == nil {
		return nil, NewIDOutOfRangeError(id, e.interner.Count())
	}
	e.stats.Expansions++
	goalEntry := e.interner.LookupByID(e.goalID)

	var results []Successor
	for primIdx, prim := range e.primitiveSet.Primitives() {
		nextAngles, ok := prim.Apply(entry.Angles, e.descriptors)
		if !ok {
			e.logger.Debugw("primitive inapplicable", "state_id", id, "primitive", primIdx)
			continue
		}

		dMax := uint32(0)
		for j, d := range e.descriptors {
			dist := d.IntegerDistance(nextAngles[j], goalEntry.Angles[j])
			if dist > dMax {
				dMax = dist
			}
		}

		xyz, err := e.endEffectorVoxel(nextAngles)
		if err != nil {
			e.logger.Debugw("successor outside grid", "state_id", id, "primitive", primIdx)
			continue
		}

		start := time.Now()
		result, err := e.collOracle.Check(ctx, collision.Request{GroupName: e.groupName})
		e.stats.CollisionChecks++
		e.stats.CollisionCheckTime += time.Since(start)
		if err != nil {
			return nil, NewCollisionCheckingUnavailableError(err)
		}
		if result.InCollision {
			e.logger.Debugw("successor in collision", "state_id", id, "primitive", primIdx)
			continue
		}

		var succID uint32
		if dMax == 1 {
			succID = e.goalID
		} else {
			newEntry, _ := e.interner.Intern(quantize(nextAngles, e.descriptors), nextAngles, xyz, uint16(primIdx))
			succID = newEntry.ID
		}

		results = append(results, Successor{ID: succID, Cost: e.cfg.EdgeCost})
	}

	return results, nil
}

// Heuristic returns the configured admissible estimate of remaining cost from fromID to
// toID. Exactly one of the two sources configured in Config.HeuristicSource is active. The
// HeuristicBFS source reads fromID's voxel in the BFS field built from the goal, so it
// estimates the cost to the goal and does not consult toID.
func (e *Environment) Heuristic(fromID, toID uint32) (uint32, error) {
	from := e.interner.LookupByID(fromID)
	if from == nil {
		return 0, NewIDOutOfRangeError(fromID, e.interner.Count())
	}

	switch e.cfg.HeuristicSource {
	case HeuristicBFS:
		dist := e.bfsGrid.GetDistance(int(from.XYZ[0]), int(from.XYZ[1]), int(from.XYZ[2]))
		if dist == bfs3d.Unreachable {
			return 0, NewInvariantError("heuristic queried for a state whose voxel the BFS field never reached")
		}
		return dist * e.cfg.BFSCellCost, nil
	default:
		to := e.interner.LookupByID(toID)
		if to == nil {
			return 0, NewIDOutOfRangeError(toID, e.interner.Count())
		}
		var sum uint32
		for j, d := range e.descriptors {
			sum += d.IntegerDistance(from.Angles[j], to.Angles[j])
		}
		return sum * e.cfg.JointDistCostMult, nil
	}
}

// HeuristicToGoal is Heuristic(id, GoalID()).
func (e *Environment) HeuristicToGoal(id uint32) (uint32, error) {
	return e.Heuristic(id, e.goalID)
}

// ExtractTrajectory resolves an id sequence returned by the search engine to its
// representative angle vectors, in order. No smoothing or retiming is performed.
func (e *Environment) ExtractTrajectory(ids []uint32) ([][]float64, error) {
	e.phase = phaseDrained
	return e.interner.ConvertIDsToAngles(ids)
}

// StateCount returns the number of states interned so far.
func (e *Environment) StateCount() int {
	return e.interner.Count()
}

// PrintState renders a diagnostic one-line summary of state id.
func (e *Environment) PrintState(id uint32) string {
	entry := e.interner.LookupByID(id)
	if entry == nil {
		return fmt.Sprintf("state %d: <out of range>", id)
	}
	return fmt.Sprintf("state %d: coord=%v angles=%v xyz=%v", entry.ID, entry.Coord, entry.Angles, entry.XYZ)
}

// Stats returns a snapshot of the plan's diagnostic counters.
func (e *Environment) Stats() Stats {
	return e.stats
}

// DebugBFSSlice returns one z-plane of the BFS distance field, for visualization (the CLI's
// --debug-bfs flag). It is not consulted by Successors or Heuristic.
func (e *Environment) DebugBFSSlice(z int) [][]uint32 {
	nx, ny := e.selfField.XNumCells(), e.selfField.YNumCells()
	slice := make([][]uint32, nx)
	for i := 0; i < nx; i++ {
		slice[i] = make([]uint32, ny)
		for j := 0; j < ny; j++ {
			slice[i][j] = e.bfsGrid.GetDistance(i, j, z)
		}
	}
	return slice
}

// JointNames returns the joint name ordering ExtractTrajectory's output columns follow.
func (e *Environment) JointNames() []string {
	return e.jointNames
}

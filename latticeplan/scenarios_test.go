package latticeplan_test

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"github.com/motionlattice/planner/jointmodel"
	"github.com/motionlattice/planner/latticeplan"
	"github.com/motionlattice/planner/latticeplan/collision"
	collinject "github.com/motionlattice/planner/latticeplan/collision/inject"
	fieldinject "github.com/motionlattice/planner/latticeplan/distfield/inject"
	kininject "github.com/motionlattice/planner/latticeplan/kinematics/inject"
	"github.com/motionlattice/planner/logging"
	"github.com/motionlattice/planner/search"
)

// rig backs both the injectable kinematics.Model and the injectable collision.Oracle with a
// single shared joint-value record, the same coupling environment_test.go's internal fakeRig
// gives its two roles, but built from the inject packages so these scenarios exercise the
// search harness end to end rather than calling Environment's methods directly.
type rig struct {
	values      []float64
	toXYZ       func(values []float64) (x, y, z float64)
	inCollision func(values []float64) bool
}

func (r *rig) kinematicsModel(jointNames []string) *kininject.Model {
	return &kininject.Model{
		SetJointValuesFunc: func(group string, v []float64) error {
			r.values = append([]float64(nil), v...)
			return nil
		},
		TipLinkTransformFunc: func(group string) (mgl64.Mat4, error) {
			x, y, z := r.toXYZ(r.values)
			m := mgl64.Ident4()
			m[12], m[13], m[14] = x, y, z
			return m, nil
		},
		GroupJointNamesFunc: func(group string) ([]string, error) {
			return jointNames, nil
		},
	}
}

func (r *rig) collisionOracle() *collinject.Oracle {
	return &collinject.Oracle{
		CheckFunc: func(ctx context.Context, req collision.Request) (collision.Result, error) {
			if r.inCollision == nil {
				return collision.Result{}, nil
			}
			return collision.Result{InCollision: r.inCollision(r.values)}, nil
		},
	}
}

// scenarioField is an injectable distfield.Field over an n^3 grid with world coordinates
// equal to grid indices, rounded, matching the mapping every rig's toXYZ here produces.
func scenarioField(n int, occupied map[[3]int]bool) *fieldinject.Field {
	return &fieldinject.Field{
		XNumCellsFunc:  func() int { return n },
		YNumCellsFunc:  func() int { return n },
		ZNumCellsFunc:  func() int { return n },
		ResolutionFunc: func() float64 { return 1.0 },
		DistanceFromCellFunc: func(i, j, k int) float64 {
			if occupied[[3]int{i, j, k}] {
				return 0
			}
			return 1.0
		},
		WorldToGridFunc: func(x, y, z float64) (int, int, int, bool) {
			i, j, k := int(math.Round(x)), int(math.Round(y)), int(math.Round(z))
			if i < 0 || i >= n || j < 0 || j >= n || k < 0 || k >= n {
				return 0, 0, 0, false
			}
			return i, j, k, true
		},
		GridToWorldFunc: func(i, j, k int) (float64, float64, float64) {
			return float64(i), float64(j), float64(k)
		},
	}
}

// TestScenarioS1TrivialSingleDOF drives the single-DOF, no-obstacle scenario through
// search.Run via search.LatticeAdapter, rather than calling Environment.Successors directly.
func TestScenarioS1TrivialSingleDOF(t *testing.T) {
	descriptors := []jointmodel.Descriptor{{Index: 0, IsContinuous: false, Lower: -1, Upper: 1, Step: 0.5}}
	r := &rig{toXYZ: func(v []float64) (float64, float64, float64) { return 2 + v[0], 2, 2 }}
	field := scenarioField(5, nil)
	env := latticeplan.NewEnvironment(descriptors, []string{"j0"}, r.kinematicsModel([]string{"j0"}), r.collisionOracle(),
		field, field, latticeplan.DefaultConfig(), logging.NewTestLogger(t))

	ctx := context.Background()
	err := env.Setup(ctx, latticeplan.PlanRequest{
		GroupName:  "arm",
		StartState: map[string]float64{"j0": 0.0},
		Goal:       map[string]float64{"j0": 1.0},
	})
	test.That(t, err, test.ShouldBeNil)

	result, err := search.Run(ctx, search.LatticeAdapter{Env: env}, search.DefaultEpsilon)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Path[0], test.ShouldEqual, env.StartID())
	test.That(t, result.Path[len(result.Path)-1], test.ShouldEqual, env.GoalID())

	traj, err := env.ExtractTrajectory(result.Path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj[0][0], test.ShouldAlmostEqual, 0.0)
	test.That(t, traj[len(traj)-1][0], test.ShouldAlmostEqual, 1.0)
}

// TestScenarioS2UnreachableGoalInCollision confirms that a goal-in-collision precondition
// failure is raised by Setup before the search engine is ever invoked.
func TestScenarioS2UnreachableGoalInCollision(t *testing.T) {
	descriptors := []jointmodel.Descriptor{{Index: 0, IsContinuous: false, Lower: -1, Upper: 1, Step: 0.5}}
	r := &rig{
		toXYZ: func(v []float64) (float64, float64, float64) { return 2 + v[0], 2, 2 },
		inCollision: func(v []float64) bool {
			// The goal voxel (x=3) is walled off; nothing else is.
			return math.Round(2+v[0]) == 3
		},
	}
	field := scenarioField(5, nil)
	env := latticeplan.NewEnvironment(descriptors, []string{"j0"}, r.kinematicsModel([]string{"j0"}), r.collisionOracle(),
		field, field, latticeplan.DefaultConfig(), logging.NewTestLogger(t))

	ctx := context.Background()
	err := env.Setup(ctx, latticeplan.PlanRequest{
		GroupName:  "arm",
		StartState: map[string]float64{"j0": 0.0},
		Goal:       map[string]float64{"j0": 1.0},
	})
	test.That(t, err, test.ShouldNotBeNil)
	preconditionErr, ok := err.(*latticeplan.PreconditionError)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, preconditionErr.Code, test.ShouldEqual, latticeplan.GoalInCollision)

	// Setup failed, so the search engine must never be given a chance to run.
	test.That(t, env.StateCount(), test.ShouldEqual, 0)
}

// TestScenarioS4TwoDOFObstacleDetour is the two-bounded-DOF grid scenario: start (0, 0),
// goal (1, 1), step 0.5, with an obstacle at the voxel covering (0.5, 0.5) -- the exact
// midpoint a diagonal-equivalent shortcut would need. Since every motion primitive steps
// exactly one joint, reaching (0.5, 0.5) always takes two separate hops (one per joint); the
// obstacle there forces the search to finish the first joint's motion before starting the
// second, rather than interleaving them, and the resulting path must still never move both
// joints in a single edge.
func TestScenarioS4TwoDOFObstacleDetour(t *testing.T) {
	descriptors := []jointmodel.Descriptor{
		{Index: 0, IsContinuous: false, Lower: -1, Upper: 1, Step: 0.5},
		{Index: 1, IsContinuous: false, Lower: -1, Upper: 1, Step: 0.5},
	}
	jointNames := []string{"j0", "j1"}
	toXYZ := func(v []float64) (float64, float64, float64) { return 6 + 2*v[0], 6 + 2*v[1], 6 }
	obstacle := [3]int{7, 7, 6} // the voxel (0.5, 0.5) maps to.

	r := &rig{
		toXYZ: toXYZ,
		inCollision: func(v []float64) bool {
			x, y, z := toXYZ(v)
			cell := [3]int{int(math.Round(x)), int(math.Round(y)), int(math.Round(z))}
			return cell == obstacle
		},
	}
	field := scenarioField(11, map[[3]int]bool{obstacle: true})
	env := latticeplan.NewEnvironment(descriptors, jointNames, r.kinematicsModel(jointNames), r.collisionOracle(),
		field, field, latticeplan.DefaultConfig(), logging.NewTestLogger(t))

	ctx := context.Background()
	err := env.Setup(ctx, latticeplan.PlanRequest{
		GroupName:  "arm",
		StartState: map[string]float64{"j0": 0.0, "j1": 0.0},
		Goal:       map[string]float64{"j0": 1.0, "j1": 1.0},
	})
	test.That(t, err, test.ShouldBeNil)

	result, err := search.Run(ctx, search.LatticeAdapter{Env: env}, search.DefaultEpsilon)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Path), test.ShouldEqual, 4)

	traj, err := env.ExtractTrajectory(result.Path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj[0], test.ShouldResemble, []float64{0.0, 0.0})
	test.That(t, traj[len(traj)-1], test.ShouldResemble, []float64{1.0, 1.0})

	for i, waypoint := range traj {
		x, y, z := toXYZ(waypoint)
		cell := [3]int{int(math.Round(x)), int(math.Round(y)), int(math.Round(z))}
		test.That(t, cell, test.ShouldNotResemble, obstacle)

		if i == 0 {
			continue
		}
		// No primitive moves more than one joint at once: consecutive waypoints must
		// differ in at most one of the two joint values.
		changed := 0
		for j := range waypoint {
			if waypoint[j] != traj[i-1][j] {
				changed++
			}
		}
		test.That(t, changed, test.ShouldBeLessThanOrEqualTo, 1)
	}
}

// TestScenarioS6Determinism runs setup and the search engine twice on identical inputs and
// confirms both the id sequence and the state count are reproduced exactly.
func TestScenarioS6Determinism(t *testing.T) {
	build := func(t *testing.T) *latticeplan.Environment {
		descriptors := []jointmodel.Descriptor{{Index: 0, IsContinuous: false, Lower: -1, Upper: 1, Step: 0.5}}
		r := &rig{toXYZ: func(v []float64) (float64, float64, float64) { return 2 + v[0], 2, 2 }}
		field := scenarioField(5, nil)
		return latticeplan.NewEnvironment(descriptors, []string{"j0"}, r.kinematicsModel([]string{"j0"}), r.collisionOracle(),
			field, field, latticeplan.DefaultConfig(), logging.NewTestLogger(t))
	}

	req := latticeplan.PlanRequest{
		GroupName:  "arm",
		StartState: map[string]float64{"j0": 0.0},
		Goal:       map[string]float64{"j0": 1.0},
	}
	ctx := context.Background()

	env1 := build(t)
	test.That(t, env1.Setup(ctx, req), test.ShouldBeNil)
	result1, err := search.Run(ctx, search.LatticeAdapter{Env: env1}, search.DefaultEpsilon)
	test.That(t, err, test.ShouldBeNil)

	env2 := build(t)
	test.That(t, env2.Setup(ctx, req), test.ShouldBeNil)
	result2, err := search.Run(ctx, search.LatticeAdapter{Env: env2}, search.DefaultEpsilon)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, result1.Path, test.ShouldResemble, result2.Path)
	test.That(t, env1.StateCount(), test.ShouldEqual, env2.StateCount())
}

package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/motionlattice/planner/latticeplan"
	"github.com/motionlattice/planner/latticeplan/collision/fieldoracle"
	"github.com/motionlattice/planner/latticeplan/distfield/voxelgrid"
	"github.com/motionlattice/planner/latticeplan/kinematics/linear"
	"github.com/motionlattice/planner/logging"
)

// buildEnvironment wires a scene's demo kinematics model, collision oracle, and distance
// field into a fresh *latticeplan.Environment. Each call builds an independent Environment,
// since an Environment is scoped to a single plan and is not safe for concurrent reuse.
func buildEnvironment(scene *sceneRequest, logger logging.Logger) (*latticeplan.Environment, error) {
	offsets := make([]linear.JointOffset, len(scene.Joints))
	for i, j := range scene.Joints {
		offsets[i] = linear.JointOffset{Name: j.Name, X: j.OffsetX, Y: j.OffsetY, Z: j.OffsetZ}
	}
	model := linear.New(scene.GroupName, mgl64.Vec3{scene.Grid.OriginX, scene.Grid.OriginY, scene.Grid.OriginZ}, offsets)

	field := voxelgrid.New(scene.Grid.NX, scene.Grid.NY, scene.Grid.NZ, scene.Grid.Resolution,
		scene.Grid.OriginX, scene.Grid.OriginY, scene.Grid.OriginZ)
	for _, obstacle := range scene.Grid.Obstacles {
		field.SetOccupied(obstacle[0], obstacle[1], obstacle[2])
	}

	oracle := fieldoracle.New(model, field)

	cfg, err := scene.config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return latticeplan.NewEnvironment(scene.descriptors(), scene.jointNames(), model, oracle, field, field, cfg, logger), nil
}

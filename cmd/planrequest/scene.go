package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/motionlattice/planner/jointmodel"
	"github.com/motionlattice/planner/latticeplan"
)

// jointSpec is one joint's on-disk description: its lattice bounds plus the linear
// end-effector offset it contributes (see kinematics/linear), since this CLI has no real
// forward-kinematics solver to load a URDF into.
type jointSpec struct {
	Name       string  `yaml:"name"`
	Continuous bool    `yaml:"continuous"`
	Lower      float64 `yaml:"lower"`
	Upper      float64 `yaml:"upper"`
	Step       float64 `yaml:"step"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
	OffsetZ    float64 `yaml:"offset_z"`
}

// gridSpec is the on-disk voxel grid description for the CLI's demo distance field.
type gridSpec struct {
	NX         int        `yaml:"nx"`
	NY         int        `yaml:"ny"`
	NZ         int        `yaml:"nz"`
	Resolution float64    `yaml:"resolution"`
	OriginX    float64    `yaml:"origin_x"`
	OriginY    float64    `yaml:"origin_y"`
	OriginZ    float64    `yaml:"origin_z"`
	Obstacles  [][3]int   `yaml:"obstacles"`
}

// sceneRequest is the complete on-disk unit of work this CLI loads: a demo scene (joints,
// grid) plus the plan request against it, and optional config overrides.
type sceneRequest struct {
	GroupName string                 `yaml:"group_name"`
	Joints    []jointSpec            `yaml:"joints"`
	Grid      gridSpec               `yaml:"grid"`
	Start     map[string]float64     `yaml:"start"`
	Goal      map[string]float64     `yaml:"goal"`
	Config    map[string]interface{} `yaml:"config"`
	Epsilon   float64                `yaml:"epsilon"`
}

func loadSceneRequest(path string) (*sceneRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene request")
	}
	var scene sceneRequest
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrap(err, "parsing scene request")
	}
	if scene.GroupName == "" {
		return nil, errors.New("scene request: group_name is required")
	}
	if len(scene.Joints) == 0 {
		return nil, errors.New("scene request: at least one joint is required")
	}
	if scene.Epsilon <= 0 {
		scene.Epsilon = 1.0
	}
	return &scene, nil
}

func (s *sceneRequest) descriptors() []jointmodel.Descriptor {
	out := make([]jointmodel.Descriptor, len(s.Joints))
	for i, j := range s.Joints {
		out[i] = jointmodel.Descriptor{
			Index:        i,
			IsContinuous: j.Continuous,
			Lower:        j.Lower,
			Upper:        j.Upper,
			Step:         j.Step,
		}
	}
	return out
}

func (s *sceneRequest) jointNames() []string {
	out := make([]string, len(s.Joints))
	for i, j := range s.Joints {
		out[i] = j.Name
	}
	return out
}

func (s *sceneRequest) config() (latticeplan.Config, error) {
	if s.Config == nil {
		return latticeplan.DefaultConfig(), nil
	}
	return latticeplan.DecodeConfig(s.Config)
}

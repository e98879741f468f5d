package latticeplan

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// HeuristicSource selects which of the two admissible heuristics an Environment serves.
// Exactly one is active per plan.
type HeuristicSource int

const (
	// HeuristicJointSpace sums per-joint integer distance to the goal, scaled by
	// JointDistCostMult. This is the reference heuristic.
	HeuristicJointSpace HeuristicSource = iota
	// HeuristicBFS reads the workspace BFS field at the candidate's end-effector voxel,
	// scaled by BFSCellCost.
	HeuristicBFS
)

// Config is the plan-scoped configuration passed to Setup, replacing the source's
// module-scope constants and scene singletons with a value the caller constructs fresh
// per plan.
type Config struct {
	// LongRangeJointStep is the discretization step, in radians, used for any joint whose
	// Descriptor does not specify its own Step.
	LongRangeJointStep float64 `json:"long_range_joint_step" mapstructure:"long_range_joint_step"`
	// JointDistCostMult scales the joint-space integer-distance sum in HeuristicJointSpace.
	// Must be <= EdgeCost for admissibility (see Environment.Heuristic).
	JointDistCostMult uint32 `json:"joint_dist_cost_mult" mapstructure:"joint_dist_cost_mult"`
	// EdgeCost is the uniform cost assigned to every successor edge.
	EdgeCost uint32 `json:"edge_cost" mapstructure:"edge_cost"`
	// BFSCellCost scales the workspace BFS distance in HeuristicBFS.
	BFSCellCost uint32 `json:"bfs_cell_cost" mapstructure:"bfs_cell_cost"`
	// HeuristicSource selects which heuristic Environment.Heuristic computes.
	HeuristicSource HeuristicSource `json:"heuristic_source" mapstructure:"heuristic_source"`
}

// DefaultConfig returns the reference tuning from the original source: a 0.1 rad default
// step, 1000 cost units per edge and per unit of joint-space distance, and 100 cost units
// per BFS cell.
func DefaultConfig() Config {
	return Config{
		LongRangeJointStep: 0.1,
		JointDistCostMult:  1000,
		EdgeCost:           1000,
		BFSCellCost:        100,
		HeuristicSource:    HeuristicJointSpace,
	}
}

// Validate checks the invariant the heuristic's admissibility proof depends on:
// JointDistCostMult must not exceed EdgeCost.
func (c Config) Validate() error {
	if c.JointDistCostMult > c.EdgeCost {
		return errors.Errorf("joint_dist_cost_mult (%d) must be <= edge_cost (%d) for heuristic admissibility",
			c.JointDistCostMult, c.EdgeCost)
	}
	return nil
}

// DecodeConfig decodes a generic attribute map (as loaded from JSON/YAML) into a Config,
// starting from DefaultConfig and overriding only the keys present in attrs. Mirrors the
// rdk resource package's mapstructure-based attribute decoding, with the "json" tag doing
// double duty as the mapstructure tag.
func DecodeConfig(attrs map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return Config{}, errors.Wrap(err, "decoding latticeplan config")
	}
	return cfg, nil
}

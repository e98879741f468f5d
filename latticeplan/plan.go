package latticeplan

// PlanRequest is the wire request for a single plan: a named joint group, a start state,
// and a goal state. Joints absent from StartState or Goal default to the scene's current
// value, which the caller is responsible for filling in before calling Setup — the
// Environment itself has no notion of "current scene state."
type PlanRequest struct {
	GroupName  string             `json:"group_name"`
	StartState map[string]float64 `json:"start_state"`
	Goal       map[string]float64 `json:"goal"`
}

// PlanResponse is the wire response: either a Trajectory (with JointNames describing the
// column order) or a non-nil Err naming one of the fixed ErrorCodes.
type PlanResponse struct {
	Trajectory [][]float64 `json:"trajectory,omitempty"`
	JointNames []string    `json:"joint_names,omitempty"`
	Err        error       `json:"-"`
}

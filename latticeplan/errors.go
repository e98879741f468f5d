package latticeplan

import "github.com/pkg/errors"

// ErrorCode identifies one of the fixed set of precondition failures setup can return, or
// the fixed set of search-failure codes a caller may attach to a PlanResponse.
type ErrorCode int

// The fixed set of plan response error codes.
const (
	// CollisionCheckingUnavailable means the collision oracle could not be reached or
	// refused to answer.
	CollisionCheckingUnavailable ErrorCode = iota + 1
	// StartInCollision means the start state fails the collision check.
	StartInCollision
	// GoalInCollision means the goal state fails the collision check.
	GoalInCollision
	// InvalidStart means the start state is malformed (unknown joint, out-of-grid FK).
	InvalidStart
	// InvalidGoal means the goal state is malformed.
	InvalidGoal
	// GridMismatch means the self- and world-distance fields disagree on grid dimensions.
	GridMismatch
	// NoPath means the search engine exhausted its budget without finding a path.
	NoPath
	// Timeout means the caller's time budget elapsed before a path was found.
	Timeout
)

func (c ErrorCode) String() string {
	switch c {
	case CollisionCheckingUnavailable:
		return "CollisionCheckingUnavailable"
	case StartInCollision:
		return "StartInCollision"
	case GoalInCollision:
		return "GoalInCollision"
	case InvalidStart:
		return "InvalidStart"
	case InvalidGoal:
		return "InvalidGoal"
	case GridMismatch:
		return "GridMismatch"
	case NoPath:
		return "NoPath"
	case Timeout:
		return "Timeout"
	default:
		return "UnknownErrorCode"
	}
}

// PreconditionError is a structured precondition failure returned by Setup. Callers that
// want the code without string-matching can recover it with errors.As.
type PreconditionError struct {
	Code ErrorCode
	msg  string
}

func (e *PreconditionError) Error() string {
	return e.msg
}

func newPreconditionError(code ErrorCode, msg string) error {
	return &PreconditionError{Code: code, msg: msg}
}

// NewCollisionCheckingUnavailableError reports that the collision oracle could not answer.
func NewCollisionCheckingUnavailableError(cause error) error {
	return newPreconditionError(CollisionCheckingUnavailable, errors.Wrap(cause, "collision checking unavailable").Error())
}

// NewStartInCollisionError reports that the start state is in collision.
func NewStartInCollisionError() error {
	return newPreconditionError(StartInCollision, "start state is in collision")
}

// NewGoalInCollisionError reports that the goal state is in collision.
func NewGoalInCollisionError() error {
	return newPreconditionError(GoalInCollision, "goal state is in collision")
}

// NewInvalidStartError reports a malformed start state, e.g. an end-effector pose outside
// the distance-field grid.
func NewInvalidStartError(reason string) error {
	return newPreconditionError(InvalidStart, "invalid start state: "+reason)
}

// NewInvalidGoalError reports a malformed goal state.
func NewInvalidGoalError(reason string) error {
	return newPreconditionError(InvalidGoal, "invalid goal state: "+reason)
}

// NewGridMismatchError reports that the self- and world-distance fields disagree on grid
// dimensions.
func NewGridMismatchError(selfDims, worldDims [3]int) error {
	return newPreconditionError(GridMismatch, errors.Errorf(
		"distance field grid mismatch: self field is %v cells, world field is %v cells", selfDims, worldDims).Error())
}

// NewNoPathError reports that the search engine exhausted its open set without reaching the
// goal. cause is the underlying search error, wrapped for diagnostics.
func NewNoPathError(cause error) error {
	return newPreconditionError(NoPath, errors.Wrap(cause, "no path found").Error())
}

// NewTimeoutError reports that the caller's time budget elapsed before a path was found.
func NewTimeoutError() error {
	return newPreconditionError(Timeout, "planning timed out")
}

// InvariantError reports a programming error in the search engine's or caller's contract
// with the Environment — an id out of range, a missing distance field mid-plan, interner
// corruption. Unlike PreconditionError, this is never something a caller should retry with
// different inputs; it means the caller's usage of the Environment's contract is broken.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string {
	return e.msg
}

// NewInvariantError constructs an InvariantError with the given message.
func NewInvariantError(msg string) error {
	return &InvariantError{msg: msg}
}

// NewIDOutOfRangeError reports that id does not name a previously interned state.
func NewIDOutOfRangeError(id uint32, count int) error {
	return &InvariantError{msg: errors.Errorf("state id %d out of range [0, %d)", id, count).Error()}
}

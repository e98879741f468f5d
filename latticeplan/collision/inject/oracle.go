// Package inject provides an injectable fake of collision.Oracle for tests.
package inject

import (
	"context"

	"github.com/motionlattice/planner/latticeplan/collision"
)

// Oracle is an injectable collision.Oracle.
type Oracle struct {
	collision.Oracle
	CheckFunc func(ctx context.Context, req collision.Request) (collision.Result, error)
}

// Check calls the injected CheckFunc or the embedded implementation.
func (o *Oracle) Check(ctx context.Context, req collision.Request) (collision.Result, error) {
	if o.CheckFunc == nil {
		return o.Oracle.Check(ctx, req)
	}
	return o.CheckFunc(ctx, req)
}

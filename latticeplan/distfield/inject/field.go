// Package inject provides an injectable fake of distfield.Field for tests.
package inject

import "github.com/motionlattice/planner/latticeplan/distfield"

// Field is an injectable distfield.Field.
type Field struct {
	distfield.Field
	XNumCellsFunc        func() int
	YNumCellsFunc        func() int
	ZNumCellsFunc        func() int
	ResolutionFunc       func() float64
	DistanceFromCellFunc func(i, j, k int) float64
	WorldToGridFunc      func(x, y, z float64) (int, int, int, bool)
	GridToWorldFunc      func(i, j, k int) (float64, float64, float64)
}

func (f *Field) XNumCells() int {
	if f.XNumCellsFunc == nil {
		return f.Field.XNumCells()
	}
	return f.XNumCellsFunc()
}

func (f *Field) YNumCells() int {
	if f.YNumCellsFunc == nil {
		return f.Field.YNumCells()
	}
	return f.YNumCellsFunc()
}

func (f *Field) ZNumCells() int {
	if f.ZNumCellsFunc == nil {
		return f.Field.ZNumCells()
	}
	return f.ZNumCellsFunc()
}

func (f *Field) Resolution() float64 {
	if f.ResolutionFunc == nil {
		return f.Field.Resolution()
	}
	return f.ResolutionFunc()
}

func (f *Field) DistanceFromCell(i, j, k int) float64 {
	if f.DistanceFromCellFunc == nil {
		return f.Field.DistanceFromCell(i, j, k)
	}
	return f.DistanceFromCellFunc(i, j, k)
}

func (f *Field) WorldToGrid(x, y, z float64) (int, int, int, bool) {
	if f.WorldToGridFunc == nil {
		return f.Field.WorldToGrid(x, y, z)
	}
	return f.WorldToGridFunc(x, y, z)
}

func (f *Field) GridToWorld(i, j, k int) (float64, float64, float64) {
	if f.GridToWorldFunc == nil {
		return f.Field.GridToWorld(i, j, k)
	}
	return f.GridToWorldFunc(i, j, k)
}

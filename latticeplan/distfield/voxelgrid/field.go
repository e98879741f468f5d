// Package voxelgrid is a dense, in-memory distfield.Field backed by a flat []float64 of
// per-cell clearance values, axis-aligned and uniformly spaced. It is grounded on the
// teacher's pointcloud.VoxelGrid: a dense array-backed voxel structure addressed by integer
// grid coordinates with a configurable origin and resolution, generalized here from point
// occupancy to scalar clearance.
package voxelgrid

import "math"

// Field is a dense distfield.Field. The zero value is not usable; construct with New.
type Field struct {
	nx, ny, nz int
	resolution float64
	originX    float64
	originY    float64
	originZ    float64
	clearance  []float64
}

// New constructs a Field of nx*ny*nz cells, each resolution meters on a side, with its
// (0, 0, 0) cell centered at origin. Every cell starts with clearance 1 (unoccupied);
// callers mark obstacles with SetOccupied.
func New(nx, ny, nz int, resolution float64, originX, originY, originZ float64) *Field {
	clearance := make([]float64, nx*ny*nz)
	for i := range clearance {
		clearance[i] = 1
	}
	return &Field{
		nx: nx, ny: ny, nz: nz,
		resolution: resolution,
		originX:    originX, originY: originY, originZ: originZ,
		clearance: clearance,
	}
}

func (f *Field) index(i, j, k int) int {
	return (i*f.ny+j)*f.nz + k
}

func (f *Field) inBounds(i, j, k int) bool {
	return i >= 0 && i < f.nx && j >= 0 && j < f.ny && k >= 0 && k < f.nz
}

// SetOccupied marks cell (i, j, k) as occupied (clearance 0). Out-of-bounds is a no-op.
func (f *Field) SetOccupied(i, j, k int) {
	if !f.inBounds(i, j, k) {
		return
	}
	f.clearance[f.index(i, j, k)] = 0
}

// SetClearance sets an arbitrary clearance value for cell (i, j, k). Out-of-bounds is a no-op.
func (f *Field) SetClearance(i, j, k int, clearance float64) {
	if !f.inBounds(i, j, k) {
		return
	}
	f.clearance[f.index(i, j, k)] = clearance
}

func (f *Field) XNumCells() int      { return f.nx }
func (f *Field) YNumCells() int      { return f.ny }
func (f *Field) ZNumCells() int      { return f.nz }
func (f *Field) Resolution() float64 { return f.resolution }

func (f *Field) DistanceFromCell(i, j, k int) float64 {
	if !f.inBounds(i, j, k) {
		return 0
	}
	return f.clearance[f.index(i, j, k)]
}

func (f *Field) WorldToGrid(x, y, z float64) (int, int, int, bool) {
	i := int(math.Round((x - f.originX) / f.resolution))
	j := int(math.Round((y - f.originY) / f.resolution))
	k := int(math.Round((z - f.originZ) / f.resolution))
	if !f.inBounds(i, j, k) {
		return 0, 0, 0, false
	}
	return i, j, k, true
}

func (f *Field) GridToWorld(i, j, k int) (float64, float64, float64) {
	return f.originX + float64(i)*f.resolution,
		f.originY + float64(j)*f.resolution,
		f.originZ + float64(k)*f.resolution
}

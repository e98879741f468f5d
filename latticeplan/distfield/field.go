// Package distfield defines the voxel distance-field boundary the lattice planner queries
// to build BFS3D's walls and to map joint-space candidates to workspace voxels.
package distfield

// Field is a read-only voxel grid mapping (x, y, z) cells to obstacle clearance, and
// providing the world<->grid coordinate conversions the planner needs to place the
// end-effector in the grid. The planner holds two Fields per plan (self-collision and
// world-collision distance fields) and unions their zero-clearance cells into BFS3D walls.
type Field interface {
	XNumCells() int
	YNumCells() int
	ZNumCells() int
	Resolution() float64

	// DistanceFromCell returns the clearance, in meters, at grid cell (i, j, k). A value of
	// 0 means the cell is occupied.
	DistanceFromCell(i, j, k int) float64

	// WorldToGrid converts a world-frame point to grid indices. ok is false if the point
	// lies outside the grid.
	WorldToGrid(x, y, z float64) (i, j, k int, ok bool)

	// GridToWorld converts grid indices to the world-frame coordinate of the cell center.
	GridToWorld(i, j, k int) (x, y, z float64)
}

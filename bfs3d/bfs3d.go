// Package bfs3d implements an unweighted, 6-connected breadth-first search over a 3-D
// voxel grid, used by the lattice planner to build an admissible workspace-distance-to-goal
// field. The queue itself is a plain container/list FIFO, the same structure the teacher's
// voxel connected-component labeling (pointcloud.VoxelGrid.labelComponentBFS) uses for its
// own grid BFS; no third-party graph library in the example corpus models BFS over a dense
// array-backed grid like this.
package bfs3d

import (
	"container/list"
	"math"

	"github.com/pkg/errors"
)

// Unreachable is the sentinel distance assigned to wall cells and cells the source cannot
// reach.
const Unreachable = math.MaxUint32

type cell struct {
	wall     bool
	visited  bool
	distance uint32
}

// Grid is a dense nx*ny*nz voxel grid supporting unweighted single-source shortest-path BFS.
// Boundary cells (index 0 or dimension-1 on any axis) are treated as implicit walls and are
// never visited; IsWall reports them as walls whether or not SetWall was called on them,
// matching the planner's convention that the grid always has a one-cell unreachable border.
type Grid struct {
	nx, ny, nz int
	cells      []cell
}

// NewGrid constructs an nx x ny x nz grid with every cell initially non-wall and unvisited.
func NewGrid(nx, ny, nz int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, errors.Errorf("bfs3d: grid dimensions must be positive, got (%d, %d, %d)", nx, ny, nz)
	}
	return &Grid{nx: nx, ny: ny, nz: nz, cells: make([]cell, nx*ny*nz)}, nil
}

// XNumCells, YNumCells, and ZNumCells report the grid's dimensions.
func (g *Grid) XNumCells() int { return g.nx }
func (g *Grid) YNumCells() int { return g.ny }
func (g *Grid) ZNumCells() int { return g.nz }

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny && z >= 0 && z < g.nz
}

func (g *Grid) onBoundary(x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 || x == g.nx-1 || y == g.ny-1 || z == g.nz-1
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.ny+y)*g.nz + z
}

// SetWall marks the cell at (x, y, z) as a wall. Out-of-bounds coordinates are a no-op,
// since callers build walls from the union of two distance fields that may disagree at the
// very edge of the grid.
func (g *Grid) SetWall(x, y, z int) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.cells[g.index(x, y, z)].wall = true
}

// IsWall reports whether the cell at (x, y, z) is a wall. Boundary cells and out-of-bounds
// coordinates are always walls.
func (g *Grid) IsWall(x, y, z int) bool {
	if !g.inBounds(x, y, z) || g.onBoundary(x, y, z) {
		return true
	}
	return g.cells[g.index(x, y, z)].wall
}

// GetDistance returns the cell's BFS distance in cells, or Unreachable if the cell is a
// wall, out of bounds, or was never reached by Run.
func (g *Grid) GetDistance(x, y, z int) uint32 {
	if !g.inBounds(x, y, z) {
		return Unreachable
	}
	c := g.cells[g.index(x, y, z)]
	if c.wall || !c.visited {
		return Unreachable
	}
	return c.distance
}

type queueItem struct {
	x, y, z int
}

// Run fills the distance field with the minimum unweighted 6-connected path length from
// (sx, sy, sz) to every reachable non-wall cell, via standard FIFO BFS. Previously computed
// distances (from an earlier Run on the same Grid) are cleared first.
func (g *Grid) Run(sx, sy, sz int) error {
	if g.IsWall(sx, sy, sz) {
		return errors.Errorf("bfs3d: source cell (%d, %d, %d) is a wall or out of bounds", sx, sy, sz)
	}

	for i := range g.cells {
		g.cells[i].visited = false
		g.cells[i].distance = 0
	}

	queue := list.New()
	srcIdx := g.index(sx, sy, sz)
	g.cells[srcIdx].visited = true
	g.cells[srcIdx].distance = 0
	queue.PushBack(queueItem{sx, sy, sz})

	neighborDeltas := [6][3]int{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}

	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		cur := front.Value.(queueItem)
		curIdx := g.index(cur.x, cur.y, cur.z)
		curDist := g.cells[curIdx].distance

		for _, delta := range neighborDeltas {
			nx, ny, nz := cur.x+delta[0], cur.y+delta[1], cur.z+delta[2]
			if g.IsWall(nx, ny, nz) {
				continue
			}
			nIdx := g.index(nx, ny, nz)
			if g.cells[nIdx].visited {
				continue
			}
			g.cells[nIdx].visited = true
			g.cells[nIdx].distance = curDist + 1
			queue.PushBack(queueItem{nx, ny, nz})
		}
	}

	return nil
}

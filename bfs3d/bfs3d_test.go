package bfs3d

import (
	"testing"

	"go.viam.com/test"
)

func TestRunUnobstructedDistances(t *testing.T) {
	g, err := NewGrid(5, 5, 5)
	test.That(t, err, test.ShouldBeNil)

	err = g.Run(2, 2, 2)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.GetDistance(2, 2, 2), test.ShouldEqual, uint32(0))
	test.That(t, g.GetDistance(3, 2, 2), test.ShouldEqual, uint32(1))
	test.That(t, g.GetDistance(1, 1, 2), test.ShouldEqual, uint32(2))
	// Boundary cells are implicit walls and therefore unreachable.
	test.That(t, g.GetDistance(0, 2, 2), test.ShouldEqual, Unreachable)
}

func TestRunRespectsWalls(t *testing.T) {
	// A bigger grid so the interior (indices 1..5) has room for a real detour around a
	// single wall cell, rather than landing on an implicit boundary wall.
	g, err := NewGrid(7, 7, 7)
	test.That(t, err, test.ShouldBeNil)
	g.SetWall(3, 2, 3)

	err = g.Run(3, 3, 3)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.GetDistance(3, 2, 3), test.ShouldEqual, Unreachable)
	// Unobstructed, (3, 1, 3) is 2 hops away (two steps along y). The wall at (3, 2, 3)
	// sits on every 2-hop path, so the shortest surviving path must detour through x or z
	// and back, costing 4 hops.
	test.That(t, g.GetDistance(3, 1, 3), test.ShouldEqual, uint32(4))
}

func TestRunFromWallErrors(t *testing.T) {
	g, err := NewGrid(5, 5, 5)
	test.That(t, err, test.ShouldBeNil)
	g.SetWall(2, 2, 2)

	err = g.Run(2, 2, 2)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestIsWallTreatsBoundaryAsWall(t *testing.T) {
	g, err := NewGrid(4, 4, 4)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.IsWall(0, 1, 1), test.ShouldBeTrue)
	test.That(t, g.IsWall(3, 1, 1), test.ShouldBeTrue)
	test.That(t, g.IsWall(1, 1, 1), test.ShouldBeFalse)
}

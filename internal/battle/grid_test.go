package battle

import (
	"math/rand"
	"slices"
	"testing"
)

func TestGridCellIndexClamps(t *testing.T) {
	g := NewGrid(3000, 3000, 36, 500, 500)
	last := g.Cols()*g.Rows() - 1

	cases := []struct {
		x, y float64
		want int
	}{
		{-500, -500, 0},
		{-1e6, -1e6, 0},
		{1e6, 1e6, last},
		{0, 0, 500/36 + (500/36)*g.Cols()},
	}
	for _, c := range cases {
		if got := g.CellIndex(c.x, c.y); got != c.want {
			t.Errorf("CellIndex(%v,%v) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestGridCellIndexAlwaysInRange(t *testing.T) {
	g := NewGrid(3000, 3000, 36, 500, 500)
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test determinism
	n := g.Cols() * g.Rows()
	for i := 0; i < 5000; i++ {
		x := (rng.Float64()*2 - 1) * 1e6
		y := (rng.Float64()*2 - 1) * 1e6
		if c := g.CellIndex(x, y); c < 0 || c >= n {
			t.Fatalf("CellIndex(%v,%v) = %d outside [0,%d)", x, y, c, n)
		}
	}
}

func TestGridNeighborsOmitOutOfRange(t *testing.T) {
	g := NewGrid(360, 360, 36, 0, 0)

	if got := len(g.Neighbors3x3(0, 0)); got != 4 {
		t.Fatalf("corner neighbourhood has %d cells, want 4", got)
	}
	if got := len(g.Neighbors3x3(180, 0)); got != 6 {
		t.Fatalf("edge neighbourhood has %d cells, want 6", got)
	}
	cells := g.Neighbors3x3(180, 180)
	if len(cells) != 9 {
		t.Fatalf("interior neighbourhood has %d cells, want 9", len(cells))
	}
	seen := map[int]bool{}
	for _, c := range cells {
		if seen[c] {
			t.Fatalf("cell %d listed twice", c)
		}
		seen[c] = true
	}
}

func TestGridCellSizeDecidesNeighbourhood(t *testing.T) {
	coarse := NewGrid(3000, 3000, 36, 0, 0)
	coarse.Add(0, V(10, 10))
	coarse.Add(1, V(40, 10))
	got := coarse.Near(nil, 10, 10)
	if !slices.Contains(got, 0) || !slices.Contains(got, 1) {
		t.Fatalf("cell 36: Near(10,10) = %v, want both units", got)
	}

	fine := NewGrid(3000, 3000, 10, 0, 0)
	fine.Add(0, V(10, 10))
	fine.Add(1, V(40, 10))
	c0, _ := fine.CellOf(0)
	c1, _ := fine.CellOf(1)
	if d := c1 - c0; d >= -1 && d <= 1 {
		t.Fatalf("cell 10: buckets %d and %d are adjacent", c0, c1)
	}
	got = fine.Near(nil, 10, 10)
	if slices.Contains(got, 1) {
		t.Fatalf("cell 10: Near(10,10) = %v, must exclude unit 1", got)
	}
}

func TestGridAddRemoveMembership(t *testing.T) {
	g := NewGrid(1000, 1000, 50, 0, 0)
	g.Add(3, V(10, 10))
	g.Add(3, V(500, 500)) // re-add moves

	if g.Len() != 1 {
		t.Fatalf("Len = %d, want 1", g.Len())
	}
	cell, ok := g.CellOf(3)
	if !ok || cell != g.CellIndex(500, 500) {
		t.Fatalf("CellOf(3) = %d,%v, want %d", cell, ok, g.CellIndex(500, 500))
	}
	if len(g.Bucket(g.CellIndex(10, 10))) != 0 {
		t.Fatal("old bucket still holds the unit")
	}
	if !g.Remove(3) {
		t.Fatal("Remove returned false for a member")
	}
	if g.Remove(3) {
		t.Fatal("second Remove returned true")
	}
	if _, ok := g.CellOf(3); ok {
		t.Fatal("removed unit still has a cell")
	}
	if g.Remove(99) {
		t.Fatal("Remove of unknown id returned true")
	}
}

// checkMembership asserts each id sits in exactly the bucket for its position.
func checkMembership(t *testing.T, g *Grid, pos map[int]Vec2) {
	t.Helper()
	count := map[int]int{}
	for c := 0; c < g.Cols()*g.Rows(); c++ {
		for _, id := range g.Bucket(c) {
			count[id]++
			if want := g.CellIndex(pos[id].X, pos[id].Y); c != want {
				t.Fatalf("unit %d in bucket %d, position maps to %d", id, c, want)
			}
		}
	}
	for id := range pos {
		if count[id] != 1 {
			t.Fatalf("unit %d appears in %d buckets", id, count[id])
		}
	}
	if g.Len() != len(pos) {
		t.Fatalf("Len = %d, want %d", g.Len(), len(pos))
	}
}

func TestGridIgnoresNegativeIDs(t *testing.T) {
	g := NewGrid(3000, 3000, 36, 500, 500)
	g.Add(-1, V(10, 10))
	g.Relocate(-1, V(20, 20))
	if g.Remove(-1) {
		t.Fatal("Remove(-1) reported a member")
	}
	if g.Len() != 0 {
		t.Fatalf("grid holds %d ids after negative inserts", g.Len())
	}
}

func TestGridRelocateKeepsMembership(t *testing.T) {
	g := NewGrid(3000, 3000, 36, 500, 500)
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test determinism
	pos := map[int]Vec2{}
	for id := 0; id < 300; id++ {
		p := V(rng.Float64()*3000-500, rng.Float64()*3000-500)
		pos[id] = p
		g.Add(id, p)
	}
	for step := 0; step < 20; step++ {
		for id, p := range pos {
			p = p.Add(V(rng.Float64()*80-40, rng.Float64()*80-40))
			p = g.Bounds().Clamp(p)
			pos[id] = p
			g.Relocate(id, p)
		}
		checkMembership(t, g, pos)
	}
}

func TestGridRelocateOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test determinism
	start := make([]Vec2, 200)
	end := make([]Vec2, 200)
	for i := range start {
		start[i] = V(rng.Float64()*1000, rng.Float64()*1000)
		end[i] = V(rng.Float64()*1000, rng.Float64()*1000)
	}
	a := NewGrid(1000, 1000, 36, 0, 0)
	b := NewGrid(1000, 1000, 36, 0, 0)
	for i, p := range start {
		a.Add(i, p)
		b.Add(i, p)
	}
	for i := range end {
		a.Relocate(i, end[i])
	}
	for i := len(end) - 1; i >= 0; i-- {
		b.Relocate(i, end[i])
	}
	for c := 0; c < a.Cols()*a.Rows(); c++ {
		x, y := a.Bucket(c), b.Bucket(c)
		slices.Sort(x)
		slices.Sort(y)
		if !slices.Equal(x, y) {
			t.Fatalf("bucket %d differs: %v vs %v", c, x, y)
		}
	}
}

func TestGridConcurrentRelocate(t *testing.T) {
	g := NewGrid(1000, 1000, 36, 0, 0)
	pos := map[int]Vec2{}
	for id := 0; id < 400; id++ {
		pos[id] = V(float64(id%20)*50, float64(id/20)*50)
		g.Add(id, pos[id])
	}
	final := make([]Vec2, 400)
	for id := range final {
		final[id] = V(float64(id/20)*49, float64(id%20)*49)
	}

	ex := NewExecutor(8)
	defer ex.Close()
	ex.ForEach(len(final), func(i int) {
		_ = g.Near(nil, final[i].X, final[i].Y)
		g.Relocate(i, final[i])
	})
	for id, p := range final {
		pos[id] = p
	}
	checkMembership(t, g, pos)
}

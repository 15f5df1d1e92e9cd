package battle

import (
	"math"
	"sync"
)

// noCell marks a unit that is not a member of any bucket.
const noCell = -1

// Grid is a fixed-extent uniform spatial hash mapping world positions to
// buckets of unit IDs. Membership is kept as an index relation (unit ID ->
// bucket) inside the grid, so units carry no back-pointers.
//
// Mutations take the write lock for the whole remove-then-add sequence;
// queries take the read lock and copy IDs out, so callers never hold a
// bucket slice while another task relocates.
type Grid struct {
	mu sync.RWMutex

	width    int // px, world extent covered by the grid
	height   int
	cellSize int // px
	originX  int // offset added to x before hashing
	originY  int
	cols     int
	rows     int

	buckets [][]int
	cellOf  []int // unit ID -> bucket index, noCell when absent
	count   int
}

// NewGrid creates an empty grid covering [-originX, width-originX) by
// [-originY, height-originY) with square cells of cellSize pixels.
func NewGrid(width, height, cellSize, originX, originY int) *Grid {
	cols := width / cellSize
	rows := height / cellSize
	g := &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		originX:  originX,
		originY:  originY,
		cols:     cols,
		rows:     rows,
		buckets:  make([][]int, cols*rows),
	}
	return g
}

// Cols returns the number of cell columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of cell rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell edge length in pixels.
func (g *Grid) CellSize() int { return g.cellSize }

// Bounds returns the world-space rectangle the grid covers.
func (g *Grid) Bounds() Rect {
	return Rect{
		Min: Vec2{float64(-g.originX), float64(-g.originY)},
		Max: Vec2{float64(g.width - g.originX), float64(g.height - g.originY)},
	}
}

// cellCoords returns the clamped column and row for a world coordinate.
func (g *Grid) cellCoords(x, y float64) (int, int) {
	cx := int(math.Floor((x + float64(g.originX)) / float64(g.cellSize)))
	cy := int(math.Floor((y + float64(g.originY)) / float64(g.cellSize)))
	return clampInt(cx, 0, g.cols-1), clampInt(cy, 0, g.rows-1)
}

// CellIndex maps a world coordinate to its bucket index:
// floor((x+ox)/cs) + floor((y+oy)/cs) * (width/cs).
// Coordinates outside the extent are clamped to the nearest edge cell.
func (g *Grid) CellIndex(x, y float64) int {
	cx, cy := g.cellCoords(x, y)
	return cx + cy*g.cols
}

// Add appends unit id to the bucket covering pos. Adding an id that is
// already a member moves it instead. Negative ids are ignored.
func (g *Grid) Add(id int, pos Vec2) {
	if id < 0 {
		return
	}
	cell := g.CellIndex(pos.X, pos.Y)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(id)
	if g.cellOf[id] != noCell {
		g.detach(id)
	}
	g.attach(id, cell)
}

// Remove drops unit id from whichever bucket holds it. It returns false
// when id was not a member.
func (g *Grid) Remove(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id < 0 || id >= len(g.cellOf) || g.cellOf[id] == noCell {
		return false
	}
	g.detach(id)
	return true
}

// Relocate moves unit id to the bucket covering pos. Remove and re-add happen
// under one exclusive lock so no reader can observe the unit in neither
// bucket. A relocation within the same cell leaves bucket order untouched.
// Negative ids are ignored.
func (g *Grid) Relocate(id int, pos Vec2) {
	if id < 0 {
		return
	}
	cell := g.CellIndex(pos.X, pos.Y)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(id)
	cur := g.cellOf[id]
	if cur == cell {
		return
	}
	if cur != noCell {
		g.detach(id)
	}
	g.attach(id, cell)
}

// CellOf returns the bucket currently holding id.
func (g *Grid) CellOf(id int) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id < 0 || id >= len(g.cellOf) || g.cellOf[id] == noCell {
		return noCell, false
	}
	return g.cellOf[id], true
}

// Bucket returns a copy of the IDs in cell.
func (g *Grid) Bucket(cell int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if cell < 0 || cell >= len(g.buckets) {
		return nil
	}
	return append([]int(nil), g.buckets[cell]...)
}

// Len returns the number of units in the grid.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.count
}

// Neighbors3x3 returns the bucket covering (x, y) and its in-range
// neighbours. Cells past the grid edge are omitted rather than duplicated.
func (g *Grid) Neighbors3x3(x, y float64) []int {
	return g.appendNeighborCells(make([]int, 0, 9), x, y)
}

func (g *Grid) appendNeighborCells(dst []int, x, y float64) []int {
	cx, cy := g.cellCoords(x, y)
	for dy := -1; dy <= 1; dy++ {
		ny := cy + dy
		if ny < 0 || ny >= g.rows {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := cx + dx
			if nx < 0 || nx >= g.cols {
				continue
			}
			dst = append(dst, nx+ny*g.cols)
		}
	}
	return dst
}

// Near appends every unit ID in the 3x3 neighbourhood of (x, y) to buf and
// returns it. The order is bucket scan order: row by row, then insertion
// order within a bucket.
func (g *Grid) Near(buf []int, x, y float64) []int {
	var cells [9]int
	nc := g.appendNeighborCells(cells[:0], x, y)
	g.mu.RLock()
	for _, c := range nc {
		buf = append(buf, g.buckets[c]...)
	}
	g.mu.RUnlock()
	return buf
}

func (g *Grid) ensure(id int) {
	for len(g.cellOf) <= id {
		g.cellOf = append(g.cellOf, noCell)
	}
}

func (g *Grid) attach(id, cell int) {
	g.buckets[cell] = append(g.buckets[cell], id)
	g.cellOf[id] = cell
	g.count++
}

// detach removes id from its bucket, keeping the remaining order stable.
func (g *Grid) detach(id int) {
	cell := g.cellOf[id]
	b := g.buckets[cell]
	for i, other := range b {
		if other == id {
			copy(b[i:], b[i+1:])
			g.buckets[cell] = b[:len(b)-1]
			break
		}
	}
	g.cellOf[id] = noCell
	g.count--
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

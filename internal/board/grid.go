package board

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

type Cell struct {
	X        int
	Y        int
	Occupied bool // a ship sits here
	Island   *Island
}

// WorldPosition is only used by renderers.
func (c *Cell) WorldPosition(cellSize float64) (x, z float64) {
	return float64(c.X) * cellSize, float64(c.Y) * cellSize
}

// Grid is a fixed Width x Height board stored row-major.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = Cell{X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns nil off the board.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.Width+x]
}

// ValidateMove checks a move of at most moveRange (Manhattan) onto a cell that
// is free of ships. Islands, captured or not, can always be landed on.
func ValidateMove(g *Grid, from, to Point, moveRange int) error {
	if !g.InBounds(to.X, to.Y) {
		return ErrOutOfBounds
	}
	if from.Manhattan(to) > moveRange {
		return ErrTooFar
	}

	cell := g.Cell(to.X, to.Y)
	if cell.Occupied {
		return ErrCellOccupied
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

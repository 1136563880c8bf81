package board

import "fmt"

// Islands go anywhere inside the margin band, one per cell.
func (g *Game) generateIslands() error {
	m := g.rules.IslandMargin
	bandW := g.rules.Width - 2*m
	bandH := g.rules.Height - 2*m
	if g.rules.IslandCount > bandW*bandH {
		return fmt.Errorf("%w: %d islands in a %dx%d band", ErrBoardTooSmall, g.rules.IslandCount, bandW, bandH)
	}

	for id := 1; len(g.islands) < g.rules.IslandCount; {
		x := m + g.rng.Intn(bandW)
		y := m + g.rng.Intn(bandH)
		cell := g.grid.Cell(x, y)
		if cell.Island != nil {
			continue // reroll
		}

		island := &Island{ID: id, X: x, Y: y, Type: islandTypeFor(g.rng.Float64())}
		cell.Island = island
		g.islands = append(g.islands, island)
		id++
	}

	g.log.WithField("islands", len(g.islands)).Debug("Islands generated")
	return nil
}

// First captain starts bottom left, later ones anywhere along the left edge band.
func (g *Game) playerSpawn(index int) (Point, error) {
	if index == 0 {
		if p, ok := g.freeCell(2, 8, 2, 5); ok {
			return p, nil
		}
	}
	if p, ok := g.freeCell(2, 8, 2, g.rules.Height-2); ok {
		return p, nil
	}
	return Point{}, fmt.Errorf("%w: no room for player %d", ErrBoardTooSmall, index+1)
}

// Enemies start on the far half of the board.
func (g *Game) spawnEnemies() error {
	m := g.rules.IslandMargin
	for i := 0; i < g.rules.EnemyCount; i++ {
		pos, ok := g.freeCell(g.rules.Width/2, g.rules.Width-m, m, g.rules.Height-m)
		if !ok {
			return fmt.Errorf("%w: no room for enemy %d", ErrBoardTooSmall, i+1)
		}

		ship := newShip(g.newShipID(), ShipEnemy, pos.X, pos.Y, g.rules.EnemyShip)
		g.grid.Cell(pos.X, pos.Y).Occupied = true
		g.enemies = append(g.enemies, ship)
	}
	return nil
}

// freeCell picks a random cell in [x0,x1) x [y0,y1) holding neither a ship nor an island.
func (g *Game) freeCell(x0, x1, y0, y1 int) (Point, bool) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.grid.Width), min(y1, g.grid.Height)
	if x0 >= x1 || y0 >= y1 {
		return Point{}, false
	}

	free := func(x, y int) bool {
		c := g.grid.Cell(x, y)
		return !c.Occupied && c.Island == nil
	}

	for try := 0; try < 64; try++ {
		x := x0 + g.rng.Intn(x1-x0)
		y := y0 + g.rng.Intn(y1-y0)
		if free(x, y) {
			return Point{X: x, Y: y}, true
		}
	}

	// crowded band, fall back to a scan
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if free(x, y) {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

func (g *Game) newShipID() int {
	g.nextShipID++
	return g.nextShipID
}

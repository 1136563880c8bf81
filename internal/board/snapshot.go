package board

// Snapshot is a copy of the public board state, safe to marshal and share.
type Snapshot struct {
	Seed          int64    `json:"seed"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	State         State    `json:"state"`
	Round         int      `json:"round"`
	CurrentPlayer int      `json:"currentPlayer"`
	Winner        int      `json:"winner,omitempty"`
	TargetPoints  int      `json:"targetPoints"`
	Players       []Player `json:"players"`
	Enemies       []Ship   `json:"enemies"`
	Islands       []Island `json:"islands"`
	Events        []Event  `json:"events"`
}

// Safe read for broadcasting
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := Snapshot{
		Seed:         g.seed,
		Width:        g.grid.Width,
		Height:       g.grid.Height,
		State:        g.state,
		Round:        g.round,
		Winner:       g.winner,
		TargetPoints: g.rules.TargetPoints,
		Players:      make([]Player, len(g.players)),
		Enemies:      make([]Ship, len(g.enemies)),
		Islands:      make([]Island, len(g.islands)),
		Events:       append([]Event(nil), g.events...),
	}
	if !g.state.Finished() && len(g.players) > 0 {
		snap.CurrentPlayer = g.players[g.turn].ID
	}
	for i, p := range g.players {
		snap.Players[i] = p.clone()
	}
	for i, e := range g.enemies {
		snap.Enemies[i] = *e
	}
	for i, island := range g.islands {
		snap.Islands[i] = *island
	}
	return snap
}

// CellView is what an inspect of one cell reveals.
type CellView struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Island *Island `json:"island,omitempty"`
	Ship   *Ship   `json:"ship,omitempty"`
}

func (g *Game) Inspect(x, y int) (CellView, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cell := g.grid.Cell(x, y)
	if cell == nil {
		return CellView{}, ErrOutOfBounds
	}

	view := CellView{X: x, Y: y}
	if cell.Island != nil {
		island := *cell.Island
		view.Island = &island
	}
	if ship := g.shipAt(x, y); ship != nil {
		cp := *ship
		view.Ship = &cp
	}
	return view, nil
}

package board

// PointsBreakdown splits a player's score by source.
type PointsBreakdown struct {
	Islands int `json:"islands"`
	Battles int `json:"battles"`
}

type Player struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Ship            *Ship           `json:"ship"`
	Points          int             `json:"points"`
	Breakdown       PointsBreakdown `json:"breakdown"`
	BattlesWon      int             `json:"battlesWon"`
	IslandsCaptured int             `json:"islandsCaptured"`
}

// AddPoints applies delta and keeps the score at or above zero.
func (p *Player) AddPoints(delta int) {
	p.Points += delta
	if p.Points < 0 {
		p.Points = 0
	}
}

func (p *Player) clone() Player {
	cp := *p
	if p.Ship != nil {
		ship := *p.Ship
		cp.Ship = &ship
	}
	return cp
}

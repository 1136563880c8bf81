package board

import "github.com/sirupsen/logrus"

// enemyTurn lets every enemy either board an adjacent player ship or take one
// step, half the time towards the nearest player and otherwise at random.
func (g *Game) enemyTurn() {
	fleet := append([]*Ship(nil), g.enemies...)
	for _, e := range fleet {
		if e.Sunk() {
			continue
		}

		if target := g.adjacentPlayerShip(e); target != nil {
			g.enemyAttack(e, target)
			if g.state != StatePlaying {
				return
			}
			continue
		}
		g.enemyStep(e)
	}
}

func (g *Game) enemyStep(e *Ship) {
	var dx, dy int
	if target := g.nearestPlayerShip(e); target != nil && g.rng.Float64() > 0.5 {
		dx = clamp(target.X-e.X, -1, 1)
		dy = clamp(target.Y-e.Y, -1, 1)
	} else {
		dx = g.rng.Intn(3) - 1
		dy = g.rng.Intn(3) - 1
	}
	if dx == 0 && dy == 0 {
		return
	}

	nx, ny := e.X+dx, e.Y+dy
	cell := g.grid.Cell(nx, ny)
	if cell == nil || cell.Occupied || cell.Island != nil {
		return // enemies never land on islands
	}

	g.grid.Cell(e.X, e.Y).Occupied = false
	e.X, e.Y = nx, ny
	cell.Occupied = true
}

// enemyAttack: the enemy attacks with its dice, the captain defends with theirs.
// Ties hold for the defending captain.
func (g *Game) enemyAttack(e, target *Ship) {
	p := g.playerByID(target.Owner)
	if p == nil {
		return
	}

	dice := ResolveDice(g.roller, g.rules.EnemyDice, g.rules.PlayerDice)
	g.log.WithFields(logrus.Fields{
		"enemy":        e.ID,
		"player":       p.ID,
		"enemy_total":  dice.AttackerTotal,
		"player_total": dice.DefenderTotal,
	}).Info("Enemy attack")

	if dice.AttackerWins {
		p.AddPoints(-g.rules.DefeatPenalty)
		dmg := e.DamageAgainst(target)
		g.event("boarded", "an enemy boarded %s for %d damage", p.Name, dmg)
		if target.TakeDamage(dmg) {
			g.sinkPlayer(p)
		}
		return
	}

	dmg := target.DamageAgainst(e)
	g.event("repelled", "%s repelled an enemy attack (%d vs %d)", p.Name, dice.DefenderTotal, dice.AttackerTotal)
	if e.TakeDamage(dmg) {
		g.removeEnemy(e)
		p.BattlesWon++
		p.Breakdown.Battles += g.rules.VictoryPoints
		g.awardPoints(p, g.rules.VictoryPoints)
	}
}

func (g *Game) adjacentPlayerShip(e *Ship) *Ship {
	for _, p := range g.players {
		if !p.Ship.Sunk() && p.Ship.Pos().Manhattan(e.Pos()) == 1 {
			return p.Ship
		}
	}
	return nil
}

func (g *Game) nearestPlayerShip(e *Ship) *Ship {
	var best *Ship
	bestDist := 0
	for _, p := range g.players {
		if p.Ship.Sunk() {
			continue
		}
		d := p.Ship.Pos().Manhattan(e.Pos())
		if best == nil || d < bestDist {
			best, bestDist = p.Ship, d
		}
	}
	return best
}

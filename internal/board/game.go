package board

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/sirupsen/logrus"
)

const maxEvents = 20

// Event is a line of the in-game message feed.
type Event struct {
	Round   int    `json:"round"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Option func(*Game)

// WithRoller replaces the seeded dice, used by tests and replays.
func WithRoller(r Roller) Option {
	return func(g *Game) {
		g.roller = r
		g.customRoller = true
	}
}

// Game is one board: grid, islands, captains and the enemy fleet. All methods
// are safe for concurrent use.
type Game struct {
	mu sync.RWMutex

	rules        Rules
	seed         int64
	rng          *rand.Rand
	roller       Roller
	customRoller bool

	grid    *Grid
	islands []*Island
	players []*Player
	enemies []*Ship

	state      State
	turn       int // index into players
	round      int
	winner     int // player id
	nextShipID int
	events     []Event

	log *logrus.Entry
}

// New builds a board for the named captains. An empty list gets a single "Captain".
func New(rules Rules, seed int64, names []string, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(names) == 0 {
		names = []string{"Captain"}
	}
	if len(names) > rules.MaxPlayers {
		return nil, ErrGameFull
	}

	g := &Game{
		rules: rules,
		log:   logger.Component("board"),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.setup(seed, names); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) setup(seed int64, names []string) error {
	g.state = StateInitializing
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	if !g.customRoller {
		g.roller = NewRandRoller(g.rng)
	}

	g.grid = NewGrid(g.rules.Width, g.rules.Height)
	g.islands = nil
	g.players = nil
	g.enemies = nil
	g.events = nil
	g.turn = 0
	g.round = 1
	g.winner = 0
	g.nextShipID = 0

	if err := g.generateIslands(); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := g.addPlayer(name); err != nil {
			return err
		}
	}
	if err := g.spawnEnemies(); err != nil {
		return err
	}

	g.state = StatePlaying
	g.log.WithFields(logrus.Fields{
		"seed":    seed,
		"width":   g.rules.Width,
		"height":  g.rules.Height,
		"players": len(g.players),
		"enemies": len(g.enemies),
	}).Info("Game initialized")
	return nil
}

// AddPlayer seats another captain. Their ship joins the end of the turn order.
func (g *Game) AddPlayer(name string) (Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Finished() {
		return Player{}, ErrNotPlaying
	}
	p, err := g.addPlayer(name)
	if err != nil {
		return Player{}, err
	}
	return p.clone(), nil
}

func (g *Game) addPlayer(name string) (*Player, error) {
	if len(g.players) >= g.rules.MaxPlayers {
		return nil, ErrGameFull
	}

	pos, err := g.playerSpawn(len(g.players))
	if err != nil {
		return nil, err
	}

	id := len(g.players) + 1
	ship := newShip(g.newShipID(), ShipPlayer, pos.X, pos.Y, g.rules.PlayerShip)
	ship.Owner = id
	g.grid.Cell(pos.X, pos.Y).Occupied = true

	p := &Player{ID: id, Name: name, Ship: ship}
	g.players = append(g.players, p)
	g.event("join", "%s sets sail from (%d, %d)", name, pos.X, pos.Y)
	return p, nil
}

// CaptureResult is what landing on a fresh island did.
type CaptureResult struct {
	Island   Island `json:"island"`
	Points   int    `json:"points"`
	Damage   int    `json:"damage,omitempty"`
	Healed   int    `json:"healed,omitempty"`
	ShipSunk bool   `json:"shipSunk,omitempty"`
}

type MoveResult struct {
	ShipID  int            `json:"shipId"`
	From    Point          `json:"from"`
	To      Point          `json:"to"`
	Capture *CaptureResult `json:"capture,omitempty"`
	State   State          `json:"state"`
}

// Move sails the current player's ship to (x, y) and ends their turn.
// Rejected moves leave the board untouched.
func (g *Game) Move(playerID, x, y int) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actingPlayer(playerID)
	if err != nil {
		return MoveResult{}, g.reject("move", playerID, err)
	}

	ship := p.Ship
	from := ship.Pos()
	to := Point{X: x, Y: y}
	if err := ValidateMove(g.grid, from, to, ship.MoveRange); err != nil {
		g.log.WithFields(logrus.Fields{
			"player": playerID,
			"from":   from,
			"to":     to,
		}).WithError(err).Info("Invalid move")
		return MoveResult{}, err
	}

	g.grid.Cell(from.X, from.Y).Occupied = false
	ship.X, ship.Y = to.X, to.Y
	cell := g.grid.Cell(to.X, to.Y)
	cell.Occupied = true

	res := MoveResult{ShipID: ship.ID, From: from, To: to}
	if cell.Island != nil {
		res.Capture = g.captureIsland(p, cell.Island)
	}

	if g.state == StatePlaying {
		g.endTurn()
	}
	res.State = g.state
	return res, nil
}

// captureIsland applies the island once. Later landings return nil.
func (g *Game) captureIsland(p *Player, island *Island) *CaptureResult {
	if !island.capture(p.ID) {
		return nil
	}

	ship := p.Ship
	res := &CaptureResult{Points: island.PointValue()}
	switch island.Type {
	case IslandDanger:
		res.Damage = g.rules.DangerDamage
		res.ShipSunk = ship.TakeDamage(g.rules.DangerDamage)
		g.event("danger", "%s struck a reef and took %d damage", p.Name, g.rules.DangerDamage)

	case IslandHarbor:
		before := ship.Health
		ship.Heal(g.rules.HarborHeal)
		res.Healed = ship.Health - before
		g.event("harbor", "%s put into harbor and repaired %d hull", p.Name, res.Healed)

	case IslandTreasure:
		g.event("treasure", "%s found treasure", p.Name)

	case IslandResource:
		g.event("resource", "%s gathered supplies", p.Name)
	}

	p.IslandsCaptured++
	p.Breakdown.Islands += res.Points
	res.Island = *island

	if res.ShipSunk {
		g.sinkPlayer(p)
	}
	g.awardPoints(p, res.Points)
	g.event("capture", "%s captured a %s island for %d points", p.Name, island.Type, res.Points)
	return res
}

// Engage fires on another ship within move range. Enemy ships are fought with
// dice, rival captains with a point raid. Either way the turn ends.
func (g *Game) Engage(playerID, targetShipID int) (CombatResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actingPlayer(playerID)
	if err != nil {
		return CombatResult{}, g.reject("engage", playerID, err)
	}

	target := g.shipByID(targetShipID)
	switch {
	case target == nil:
		return CombatResult{}, g.reject("engage", playerID, ErrUnknownShip)
	case target.ID == p.Ship.ID:
		return CombatResult{}, g.reject("engage", playerID, ErrInvalidTarget)
	case target.Sunk():
		return CombatResult{}, g.reject("engage", playerID, ErrShipSunk)
	case p.Ship.Pos().Manhattan(target.Pos()) > p.Ship.MoveRange:
		return CombatResult{}, g.reject("engage", playerID, ErrTargetOutOfRange)
	}

	var res CombatResult
	if target.Kind == ShipEnemy {
		res = g.fightEnemy(p, target)
	} else {
		res = g.raidPlayer(p, g.playerByID(target.Owner))
	}

	if g.state == StatePlaying {
		g.endTurn()
	}
	res.State = g.state
	return res, nil
}

func (g *Game) fightEnemy(p *Player, enemy *Ship) CombatResult {
	dice := ResolveDice(g.roller, g.rules.PlayerDice, g.rules.EnemyDice)
	res := CombatResult{
		Kind:         CombatDice,
		AttackerShip: p.Ship.ID,
		DefenderShip: enemy.ID,
		Dice:         &dice,
		AttackerWon:  dice.AttackerWins,
	}

	g.log.WithFields(logrus.Fields{
		"player":       p.ID,
		"enemy":        enemy.ID,
		"player_total": dice.AttackerTotal,
		"enemy_total":  dice.DefenderTotal,
	}).Info("Dice combat")

	if dice.AttackerWins {
		g.removeEnemy(enemy)
		res.DefenderSunk = true
		res.PointsDelta = g.rules.VictoryPoints
		p.BattlesWon++
		p.Breakdown.Battles += g.rules.VictoryPoints
		g.event("battle", "%s sank an enemy ship (%d vs %d)", p.Name, dice.AttackerTotal, dice.DefenderTotal)
		g.awardPoints(p, g.rules.VictoryPoints)
		return res
	}

	before := p.Points
	p.AddPoints(-g.rules.DefeatPenalty)
	res.PointsDelta = p.Points - before
	res.DamageTaken = enemy.DamageAgainst(p.Ship)
	res.AttackerSunk = p.Ship.TakeDamage(res.DamageTaken)
	g.event("battle", "%s was beaten off (%d vs %d)", p.Name, dice.AttackerTotal, dice.DefenderTotal)
	if res.AttackerSunk {
		g.sinkPlayer(p)
	}
	return res
}

// raidPlayer always goes to the attacker: 1..MaxPointSwing points change hands.
func (g *Game) raidPlayer(p, rival *Player) CombatResult {
	swing := g.rng.Intn(g.rules.MaxPointSwing) + 1
	res := CombatResult{
		Kind:         CombatPoints,
		AttackerShip: p.Ship.ID,
		DefenderShip: rival.Ship.ID,
		AttackerWon:  true,
		PointsDelta:  swing,
	}

	rival.AddPoints(-swing)
	p.BattlesWon++
	p.Breakdown.Battles += swing
	g.event("battle", "%s defeats %s for %d points", p.Name, rival.Name, swing)
	g.awardPoints(p, swing)
	return res
}

// Pass ends the current player's turn without acting.
func (g *Game) Pass(playerID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.actingPlayer(playerID); err != nil {
		return g.reject("pass", playerID, err)
	}
	g.endTurn()
	return nil
}

// awardPoints is the only place the win condition is checked.
func (g *Game) awardPoints(p *Player, points int) {
	p.AddPoints(points)
	if g.state == StatePlaying && p.Points >= g.rules.TargetPoints {
		g.state = StateVictory
		g.winner = p.ID
		g.event("victory", "%s wins with %d points", p.Name, p.Points)
	}
}

func (g *Game) sinkPlayer(p *Player) {
	if c := g.grid.Cell(p.Ship.X, p.Ship.Y); c != nil {
		c.Occupied = false
	}
	g.event("sunk", "%s's ship went down", p.Name)

	for _, other := range g.players {
		if !other.Ship.Sunk() {
			return
		}
	}
	if g.state == StatePlaying {
		g.state = StateDefeat
		g.event("defeat", "every player ship has been sunk")
	}
}

func (g *Game) removeEnemy(enemy *Ship) {
	enemy.Health = 0
	if c := g.grid.Cell(enemy.X, enemy.Y); c != nil {
		c.Occupied = false
	}
	for i, e := range g.enemies {
		if e == enemy {
			g.enemies = append(g.enemies[:i], g.enemies[i+1:]...)
			break
		}
	}
}

// endTurn hands over to the next afloat captain. Wrapping around the table
// runs the enemy turn and starts a new round.
func (g *Game) endTurn() {
	n := len(g.players)
	idx := g.turn
	for step := 0; step < n; step++ {
		idx++
		if idx >= n {
			idx = 0
			g.enemyTurn()
			if g.state != StatePlaying {
				return
			}

			g.round++
			if g.round > g.rules.MaxRounds {
				g.state = StateEnded
				g.event("ended", "round limit of %d reached", g.rules.MaxRounds)
				return
			}
		}

		if !g.players[idx].Ship.Sunk() {
			g.turn = idx
			return
		}
	}

	if g.state == StatePlaying {
		g.state = StateDefeat
	}
}

func (g *Game) actingPlayer(playerID int) (*Player, error) {
	if g.state != StatePlaying {
		return nil, ErrNotPlaying
	}
	p := g.playerByID(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if g.players[g.turn].ID != playerID {
		return nil, ErrNotYourTurn
	}
	if p.Ship.Sunk() {
		return nil, ErrShipSunk
	}
	return p, nil
}

func (g *Game) reject(action string, playerID int, err error) error {
	g.log.WithFields(logrus.Fields{
		"action": action,
		"player": playerID,
	}).WithError(err).Info("Action rejected")
	return err
}

func (g *Game) playerByID(id int) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) shipByID(id int) *Ship {
	for _, p := range g.players {
		if p.Ship.ID == id {
			return p.Ship
		}
	}
	for _, e := range g.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// shipAt only reports ships still afloat.
func (g *Game) shipAt(x, y int) *Ship {
	for _, p := range g.players {
		if !p.Ship.Sunk() && p.Ship.X == x && p.Ship.Y == y {
			return p.Ship
		}
	}
	for _, e := range g.enemies {
		if e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

func (g *Game) event(kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.events = append(g.events, Event{Round: g.round, Kind: kind, Message: msg})
	if len(g.events) > maxEvents {
		g.events = g.events[len(g.events)-maxEvents:]
	}
	g.log.WithFields(logrus.Fields{"round": g.round, "event": kind}).Debug(msg)
}

func (g *Game) Pause() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return ErrNotPlaying
	}
	g.state = StatePaused
	return nil
}

func (g *Game) Resume() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePaused {
		return fmt.Errorf("%w: game is %s", ErrNotPlaying, g.state)
	}
	g.state = StatePlaying
	return nil
}

// Restart deals a fresh board for the same captains. Points are cleared.
func (g *Game) Restart(seed int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return g.setup(seed, names)
}

func (g *Game) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Winner is the winning player id, 0 when nobody has won.
func (g *Game) Winner() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winner
}

func (g *Game) Round() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.round
}

func (g *Game) Seed() int64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.seed
}

func (g *Game) Rules() Rules {
	return g.rules
}

// CurrentPlayer is the id of the captain to act, 0 once the game is over.
func (g *Game) CurrentPlayer() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state.Finished() || len(g.players) == 0 {
		return 0
	}
	return g.players[g.turn].ID
}

func (g *Game) Players() []Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Player, len(g.players))
	for i, p := range g.players {
		out[i] = p.clone()
	}
	return out
}

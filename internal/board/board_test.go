package board

import (
	"encoding/json"
	"errors"
	"testing"
)

// scriptedRoller hands out queued dice values, then ones.
type scriptedRoller struct {
	values []int
}

func (r *scriptedRoller) Roll(count, sides int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
		if len(r.values) > 0 {
			out[i] = r.values[0]
			r.values = r.values[1:]
		}
	}
	return out
}

func testRules() Rules {
	r := DefaultRules()
	r.Width = 20
	r.Height = 12
	r.IslandCount = 0
	r.EnemyCount = 0
	return r
}

func newTestGame(t *testing.T, rules Rules, names []string, opts ...Option) *Game {
	t.Helper()
	g, err := New(rules, 42, names, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func placeShip(g *Game, s *Ship, x, y int) {
	g.grid.Cell(s.X, s.Y).Occupied = false
	s.X, s.Y = x, y
	g.grid.Cell(x, y).Occupied = true
}

func placeIsland(g *Game, x, y int, typ IslandType) *Island {
	island := &Island{ID: len(g.islands) + 1, X: x, Y: y, Type: typ}
	g.grid.Cell(x, y).Island = island
	g.islands = append(g.islands, island)
	return island
}

func placeEnemy(g *Game, x, y int) *Ship {
	e := newShip(g.newShipID(), ShipEnemy, x, y, g.rules.EnemyShip)
	g.grid.Cell(x, y).Occupied = true
	g.enemies = append(g.enemies, e)
	return e
}

func TestValidateMove(t *testing.T) {
	g := NewGrid(10, 10)
	g.Cell(5, 5).Occupied = true
	g.Cell(3, 4).Island = &Island{Type: IslandTreasure}
	g.Cell(4, 3).Island = &Island{Type: IslandHarbor, Captured: true}

	from := Point{X: 3, Y: 3}
	tests := []struct {
		name string
		to   Point
		want error
	}{
		{"free water", Point{X: 4, Y: 4}, nil},
		{"exactly three", Point{X: 6, Y: 3}, nil},
		{"four away", Point{X: 7, Y: 3}, ErrTooFar},
		{"diagonal four", Point{X: 5, Y: 5}, ErrTooFar},
		{"off the board", Point{X: -1, Y: 3}, ErrOutOfBounds},
		{"past the edge", Point{X: 3, Y: 10}, ErrOutOfBounds},
		{"uncaptured island", Point{X: 3, Y: 4}, nil},
		{"captured island", Point{X: 4, Y: 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMove(g, from, tt.to, 3)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateMove(%v -> %v) = %v, want %v", from, tt.to, err, tt.want)
			}
		})
	}

	if err := ValidateMove(g, Point{X: 5, Y: 4}, Point{X: 5, Y: 5}, 3); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("move onto ship = %v, want ErrCellOccupied", err)
	}
}

func TestValidateMoveRejectsEveryLongMove(t *testing.T) {
	g := NewGrid(15, 15)
	from := Point{X: 7, Y: 7}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			to := Point{X: x, Y: y}
			err := ValidateMove(g, from, to, 3)
			if from.Manhattan(to) > 3 && err == nil {
				t.Fatalf("move to %v accepted at distance %d", to, from.Manhattan(to))
			}
		}
	}
}

func TestIslandPointValues(t *testing.T) {
	want := map[IslandType]int{
		IslandHarbor:   2,
		IslandResource: 1,
		IslandTreasure: 3,
		IslandDanger:   0,
	}
	for typ, points := range want {
		island := Island{Type: typ}
		if island.PointValue() != points {
			t.Errorf("%s worth %d, want %d", typ, island.PointValue(), points)
		}
		island.Captured = true
		if island.PointValue() != points {
			t.Errorf("captured %s changed value", typ)
		}
	}
}

func TestIslandTypeWeights(t *testing.T) {
	tests := []struct {
		roll float64
		want IslandType
	}{
		{0.0, IslandResource},
		{0.39, IslandResource},
		{0.4, IslandHarbor},
		{0.69, IslandHarbor},
		{0.7, IslandTreasure},
		{0.84, IslandTreasure},
		{0.85, IslandDanger},
		{0.99, IslandDanger},
	}
	for _, tt := range tests {
		if got := islandTypeFor(tt.roll); got != tt.want {
			t.Errorf("islandTypeFor(%v) = %s, want %s", tt.roll, got, tt.want)
		}
	}
}

func TestShipHealthClamped(t *testing.T) {
	s := newShip(1, ShipPlayer, 0, 0, DefaultRules().PlayerShip)

	s.Heal(50)
	if s.Health != 100 {
		t.Errorf("heal above max: health %d", s.Health)
	}

	if sunk := s.TakeDamage(30); sunk || s.Health != 70 {
		t.Errorf("TakeDamage(30) = %v, health %d", sunk, s.Health)
	}
	if sunk := s.TakeDamage(500); !sunk || s.Health != 0 {
		t.Errorf("TakeDamage(500) = %v, health %d", sunk, s.Health)
	}
	if sunk := s.TakeDamage(10); sunk {
		t.Error("a sunk ship sank twice")
	}
	s.Heal(20)
	if s.Health != 0 {
		t.Errorf("sunk ship healed to %d", s.Health)
	}
}

func TestCaptureAppliesOnce(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	reef := placeIsland(g, 3, 2, IslandDanger)

	res, err := g.Move(p.ID, 3, 2)
	if err != nil {
		t.Fatalf("Move onto reef: %v", err)
	}
	if res.Capture == nil || res.Capture.Damage != 20 {
		t.Fatalf("capture = %+v, want 20 damage", res.Capture)
	}
	if p.Ship.Health != 80 {
		t.Fatalf("health after reef = %d, want 80", p.Ship.Health)
	}

	if _, err := g.Move(p.ID, 2, 2); err != nil {
		t.Fatalf("Move off reef: %v", err)
	}
	points := p.Points
	again, err := g.Move(p.ID, 3, 2)
	if err != nil {
		t.Fatalf("Move back onto reef: %v", err)
	}
	if again.Capture != nil {
		t.Fatalf("second landing captured again: %+v", again.Capture)
	}
	if p.Ship.Health != 80 || p.IslandsCaptured != 1 || p.Points != points {
		t.Errorf("health %d captured %d points %d after repeat, want 80, 1 and %d",
			p.Ship.Health, p.IslandsCaptured, p.Points, points)
	}
	if ship := p.Ship.Pos(); ship != (Point{X: 3, Y: 2}) {
		t.Errorf("ship at %v, want back on the reef", ship)
	}
	if !reef.Captured || reef.CapturedBy != p.ID {
		t.Errorf("reef = %+v", reef)
	}
}

func TestHarborHealsAndScores(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	placeIsland(g, 2, 4, IslandHarbor)
	p.Ship.Health = 90

	res, err := g.Move(p.ID, 2, 4)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Capture.Healed != 10 || p.Ship.Health != 100 {
		t.Errorf("healed %d to %d, want 10 to 100", res.Capture.Healed, p.Ship.Health)
	}
	if p.Points != 2 || p.Breakdown.Islands != 2 {
		t.Errorf("points %d islands %d, want 2 and 2", p.Points, p.Breakdown.Islands)
	}
}

func TestResolveDiceTiesGoToDefender(t *testing.T) {
	tests := []struct {
		name     string
		rolls    []int
		attacker int
		defender int
		wins     bool
	}{
		{"attacker higher", []int{6, 6, 6, 1, 1}, 18, 2, true},
		{"tie", []int{3, 3, 3, 6, 3}, 9, 9, false},
		{"defender higher", []int{1, 1, 1, 6, 6}, 3, 12, false},
		{"by one", []int{4, 4, 2, 5, 4}, 10, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveDice(&scriptedRoller{values: tt.rolls}, 3, 2)
			if res.AttackerTotal != tt.attacker || res.DefenderTotal != tt.defender {
				t.Fatalf("totals %d vs %d, want %d vs %d", res.AttackerTotal, res.DefenderTotal, tt.attacker, tt.defender)
			}
			if res.AttackerWins != tt.wins {
				t.Errorf("AttackerWins = %v, want %v", res.AttackerWins, tt.wins)
			}
		})
	}
}

func TestRandRollerRange(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	r := NewRandRoller(g.rng)
	for i := 0; i < 200; i++ {
		for _, v := range r.Roll(3, 6) {
			if v < 1 || v > 6 {
				t.Fatalf("rolled %d", v)
			}
		}
	}
	if got := r.Roll(0, 6); got != nil {
		t.Errorf("Roll(0, 6) = %v", got)
	}
}

func TestEngageEnemyVictory(t *testing.T) {
	roller := &scriptedRoller{values: []int{6, 6, 6, 1, 1}}
	g := newTestGame(t, testRules(), nil, WithRoller(roller))
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	enemy := placeEnemy(g, 4, 3)

	res, err := g.Engage(p.ID, enemy.ID)
	if err != nil {
		t.Fatalf("Engage: %v", err)
	}
	if !res.AttackerWon || !res.DefenderSunk || res.Kind != CombatDice {
		t.Fatalf("result = %+v", res)
	}
	if p.Points != 5 || p.BattlesWon != 1 {
		t.Errorf("points %d battles %d, want 5 and 1", p.Points, p.BattlesWon)
	}
	if len(g.enemies) != 0 || g.grid.Cell(4, 3).Occupied {
		t.Error("beaten enemy still on the board")
	}
}

func TestEngageEnemyDefeatKeepsPointsAtZero(t *testing.T) {
	roller := &scriptedRoller{values: []int{3, 3, 3, 6, 3}} // 9 vs 9
	g := newTestGame(t, testRules(), nil, WithRoller(roller))
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	enemy := placeEnemy(g, 4, 3)

	res, err := g.Engage(p.ID, enemy.ID)
	if err != nil {
		t.Fatalf("Engage: %v", err)
	}
	if res.AttackerWon {
		t.Fatal("tie went to the attacker")
	}
	if p.Points != 0 || res.PointsDelta != 0 {
		t.Errorf("points %d delta %d, want 0 and 0", p.Points, res.PointsDelta)
	}
	if p.Ship.Health != 95 || res.DamageTaken != 5 {
		t.Errorf("health %d damage %d, want 95 and 5", p.Ship.Health, res.DamageTaken)
	}
	if len(g.enemies) != 1 {
		t.Error("enemy removed after winning")
	}
}

func TestEngageRange(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	far := placeEnemy(g, 9, 9)

	if _, err := g.Engage(p.ID, far.ID); !errors.Is(err, ErrTargetOutOfRange) {
		t.Errorf("far target = %v, want ErrTargetOutOfRange", err)
	}
	if _, err := g.Engage(p.ID, p.Ship.ID); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("own ship = %v, want ErrInvalidTarget", err)
	}
	if _, err := g.Engage(p.ID, 999); !errors.Is(err, ErrUnknownShip) {
		t.Errorf("missing ship = %v, want ErrUnknownShip", err)
	}
}

func TestRaidRivalCaptain(t *testing.T) {
	g := newTestGame(t, testRules(), []string{"Anne", "Mary"})
	anne, mary := g.players[0], g.players[1]
	// clear of the spawn band so neither placement lands on the other
	placeShip(g, anne.Ship, 10, 2)
	placeShip(g, mary.Ship, 11, 3)
	mary.Points = 1

	res, err := g.Engage(anne.ID, mary.Ship.ID)
	if err != nil {
		t.Fatalf("Engage: %v", err)
	}
	if res.Kind != CombatPoints || !res.AttackerWon {
		t.Fatalf("result = %+v", res)
	}
	if res.PointsDelta < 1 || res.PointsDelta > 3 || anne.Points != res.PointsDelta {
		t.Errorf("swing %d, anne has %d", res.PointsDelta, anne.Points)
	}
	if mary.Points != 0 {
		t.Errorf("mary points %d, want clamped to 0", mary.Points)
	}
}

func TestWinConditionOnlyAfterAwards(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	placeIsland(g, 3, 2, IslandTreasure)

	p.Points = 30 // above target without an award
	if err := g.Pass(p.ID); err != nil {
		t.Fatalf("Pass: %v", err)
	}
	if g.State() != StatePlaying {
		t.Fatalf("state %s before any award", g.State())
	}

	p.Points = 22
	res, err := g.Move(p.ID, 3, 2)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if p.Points != 25 {
		t.Fatalf("points %d, want 25", p.Points)
	}
	if res.State != StateVictory || g.Winner() != p.ID {
		t.Errorf("state %s winner %d, want victory for %d", res.State, g.Winner(), p.ID)
	}
	if _, err := g.Move(p.ID, 2, 2); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("move after victory = %v", err)
	}
}

func TestTurnOrderRoundRobin(t *testing.T) {
	g := newTestGame(t, testRules(), []string{"Anne", "Mary"})
	anne, mary := g.players[0], g.players[1]
	placeShip(g, anne.Ship, 10, 2)
	placeShip(g, mary.Ship, 10, 8)

	if _, err := g.Move(mary.ID, 11, 8); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("out of turn = %v", err)
	}
	if _, err := g.Move(anne.ID, 11, 2); err != nil {
		t.Fatal(err)
	}
	if g.CurrentPlayer() != mary.ID || g.Round() != 1 {
		t.Fatalf("current %d round %d", g.CurrentPlayer(), g.Round())
	}
	if _, err := g.Move(mary.ID, 11, 8); err != nil {
		t.Fatal(err)
	}
	if g.CurrentPlayer() != anne.ID || g.Round() != 2 {
		t.Errorf("current %d round %d, want anne in round 2", g.CurrentPlayer(), g.Round())
	}
}

func TestSunkCaptainsAreSkipped(t *testing.T) {
	g := newTestGame(t, testRules(), []string{"Anne", "Mary"})
	anne, mary := g.players[0], g.players[1]
	mary.Ship.Health = 0
	g.sinkPlayer(mary)

	if err := g.Pass(anne.ID); err != nil {
		t.Fatal(err)
	}
	if g.CurrentPlayer() != anne.ID || g.Round() != 2 {
		t.Errorf("current %d round %d, want anne in round 2", g.CurrentPlayer(), g.Round())
	}

	anne.Ship.Health = 0
	g.sinkPlayer(anne)
	if g.State() != StateDefeat {
		t.Errorf("state %s with every ship sunk", g.State())
	}
}

func TestRoundLimit(t *testing.T) {
	rules := testRules()
	rules.MaxRounds = 2
	g := newTestGame(t, rules, nil)
	p := g.players[0]

	for i := 0; i < 2; i++ {
		if err := g.Pass(p.ID); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if g.State() != StateEnded {
		t.Errorf("state %s after round limit", g.State())
	}
}

func TestEnemyBoardsAdjacentShip(t *testing.T) {
	roller := &scriptedRoller{values: []int{6, 6, 1, 1, 1}} // enemy 12 vs 3
	g := newTestGame(t, testRules(), nil, WithRoller(roller))
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	placeEnemy(g, 3, 2)
	p.Points = 4

	if err := g.Pass(p.ID); err != nil {
		t.Fatal(err)
	}
	if p.Ship.Health != 95 || p.Points != 2 {
		t.Errorf("health %d points %d, want 95 and 2", p.Ship.Health, p.Points)
	}
}

func TestEnemyRepelledOnTie(t *testing.T) {
	roller := &scriptedRoller{values: []int{3, 3, 2, 2, 2}} // enemy 6 vs 6
	g := newTestGame(t, testRules(), nil, WithRoller(roller))
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	e := placeEnemy(g, 2, 3)

	if err := g.Pass(p.ID); err != nil {
		t.Fatal(err)
	}
	if p.Ship.Health != 100 {
		t.Errorf("defender damaged on tie: %d", p.Ship.Health)
	}
	if e.Health != 95 {
		t.Errorf("enemy health %d, want 95", e.Health)
	}
}

func TestEnemiesStayOnWaterInBounds(t *testing.T) {
	rules := testRules()
	rules.EnemyCount = 3
	rules.IslandCount = 6
	g := newTestGame(t, rules, nil)
	p := g.players[0]

	for i := 0; i < 40 && g.State() == StatePlaying; i++ {
		if err := g.Pass(p.ID); err != nil {
			t.Fatal(err)
		}
		for _, e := range g.enemies {
			cell := g.grid.Cell(e.X, e.Y)
			if cell == nil || cell.Island != nil || !cell.Occupied {
				t.Fatalf("enemy %d at bad cell (%d, %d)", e.ID, e.X, e.Y)
			}
		}
	}
}

func TestGenerationLayout(t *testing.T) {
	rules := DefaultRules()
	g := newTestGame(t, rules, nil)

	if len(g.islands) != rules.IslandCount {
		t.Fatalf("%d islands, want %d", len(g.islands), rules.IslandCount)
	}
	seen := map[Point]bool{}
	for _, island := range g.islands {
		pos := Point{X: island.X, Y: island.Y}
		if seen[pos] {
			t.Errorf("two islands at %v", pos)
		}
		seen[pos] = true
		if island.X < 5 || island.X >= rules.Width-5 || island.Y < 5 || island.Y >= rules.Height-5 {
			t.Errorf("island outside margin band: %v", pos)
		}
	}

	ship := g.players[0].Ship
	if ship.X < 2 || ship.X >= 8 || ship.Y < 2 || ship.Y >= 5 {
		t.Errorf("player spawned at (%d, %d)", ship.X, ship.Y)
	}
	if len(g.enemies) != rules.EnemyCount {
		t.Fatalf("%d enemies, want %d", len(g.enemies), rules.EnemyCount)
	}
	for _, e := range g.enemies {
		if e.X < rules.Width/2 || e.X >= rules.Width-5 {
			t.Errorf("enemy spawned at (%d, %d)", e.X, e.Y)
		}
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	a := newTestGame(t, DefaultRules(), nil).Snapshot()
	b := newTestGame(t, DefaultRules(), nil).Snapshot()
	for i := range a.Islands {
		if a.Islands[i] != b.Islands[i] {
			t.Fatalf("island %d differs: %+v vs %+v", i, a.Islands[i], b.Islands[i])
		}
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"tiny board", func(r *Rules) { r.Width = 4 }},
		{"margin too wide", func(r *Rules) { r.IslandMargin = 10 }},
		{"no dice", func(r *Rules) { r.PlayerDice = 0 }},
		{"no target", func(r *Rules) { r.TargetPoints = 0 }},
		{"zero health", func(r *Rules) { r.EnemyShip.MaxHealth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("Validate accepted bad rules")
			}
		})
	}
	if err := DefaultRules().Validate(); err != nil {
		t.Errorf("default rules: %v", err)
	}
}

func TestTooManyIslands(t *testing.T) {
	rules := testRules()
	rules.IslandCount = 500
	if _, err := New(rules, 1, nil); !errors.Is(err, ErrBoardTooSmall) {
		t.Errorf("New = %v, want ErrBoardTooSmall", err)
	}
}

func TestPauseResumeRestart(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]

	if err := g.Pause(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Move(p.ID, p.Ship.X+1, p.Ship.Y); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("move while paused = %v", err)
	}
	if err := g.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := g.Resume(); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("double resume = %v", err)
	}

	p.Points = 12
	if err := g.Restart(99); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	if snap.Players[0].Points != 0 || snap.Round != 1 || snap.Seed != 99 || snap.State != StatePlaying {
		t.Errorf("after restart: %+v", snap)
	}
}

func TestAddPlayerLimit(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	if _, err := g.AddPlayer("Mary"); err != nil {
		t.Fatalf("second player: %v", err)
	}
	if _, err := g.AddPlayer("Grace"); !errors.Is(err, ErrGameFull) {
		t.Errorf("third player = %v, want ErrGameFull", err)
	}
}

func TestInspect(t *testing.T) {
	g := newTestGame(t, testRules(), nil)
	p := g.players[0]
	placeShip(g, p.Ship, 2, 2)
	placeIsland(g, 6, 6, IslandTreasure)

	view, err := g.Inspect(2, 2)
	if err != nil || view.Ship == nil || view.Ship.ID != p.Ship.ID {
		t.Errorf("Inspect ship cell = %+v, %v", view, err)
	}
	view, err = g.Inspect(6, 6)
	if err != nil || view.Island == nil || view.Island.Type != IslandTreasure {
		t.Errorf("Inspect island cell = %+v, %v", view, err)
	}
	if _, err := g.Inspect(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Inspect off board = %v", err)
	}
}

func TestSnapshotDecodes(t *testing.T) {
	rules := DefaultRules()
	g := newTestGame(t, rules, []string{"Anne", "Mary"})
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.State != StatePlaying || len(snap.Players) != 2 || len(snap.Enemies) != rules.EnemyCount {
		t.Fatalf("decoded %+v", snap)
	}
	if snap.Players[1].Ship.Kind != ShipPlayer || snap.Enemies[0].Kind != ShipEnemy {
		t.Errorf("ship kinds %s and %s", snap.Players[1].Ship.Kind, snap.Enemies[0].Kind)
	}
}

func TestWithLayout(t *testing.T) {
	tests := []struct {
		layout        string
		width, height int
	}{
		{"", 80, 20},
		{LayoutClassic, 80, 20},
		{LayoutTall, 20, 80},
	}
	for _, tt := range tests {
		rules, err := DefaultRules().WithLayout(tt.layout)
		if err != nil {
			t.Fatalf("WithLayout(%q): %v", tt.layout, err)
		}
		if rules.Width != tt.width || rules.Height != tt.height {
			t.Errorf("WithLayout(%q) = %dx%d, want %dx%d", tt.layout, rules.Width, rules.Height, tt.width, tt.height)
		}
		if _, err := New(rules, 3, []string{"Anne", "Mary"}); err != nil {
			t.Errorf("New on %q layout: %v", tt.layout, err)
		}
	}

	if _, err := DefaultRules().WithLayout("fourquadrants"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("unknown layout = %v, want ErrUnknownLayout", err)
	}
}

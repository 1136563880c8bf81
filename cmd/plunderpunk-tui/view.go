package main

import (
	"errors"
	"fmt"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/Scrimzay/plunderpunk/internal/profile"
	"github.com/Scrimzay/plunderpunk/internal/session"
	"github.com/gdamore/tcell/v2"
)

const (
	hudEvents = 4
	boardTop  = 1
)

var (
	styleWater    = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	styleHarbor   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleResource = tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true)
	styleTreasure = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDanger   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCaptured = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleText     = tcell.StyleDefault
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// view is a hot-seat table: every captain plays from the same keyboard.
type view struct {
	screen   tcell.Screen
	game     *board.Game
	profiles *profile.Store

	cursorX, cursorY int
	message          string
	isError          bool
	recorded         bool
}

func newView(screen tcell.Screen, game *board.Game, profiles *profile.Store) *view {
	v := &view{screen: screen, game: game, profiles: profiles}
	if ship := v.currentShip(); ship != nil {
		v.cursorX, v.cursorY = ship.X, ship.Y
	}
	v.message = "arrows: aim  enter: sail  a: engage  n: pass  p: pause  r: restart  q: quit"
	return v
}

func (v *view) run() {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.handleEvent(ev) {
			return
		}
		v.draw()
	}
}

// handleEvent returns false when the player quits.
func (v *view) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *view) handleKey(ev *tcell.EventKey) bool {
	rules := v.game.Rules()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyUp:
		v.cursorY = max(v.cursorY-1, 0)

	case tcell.KeyDown:
		v.cursorY = min(v.cursorY+1, rules.Height-1)

	case tcell.KeyLeft:
		v.cursorX = max(v.cursorX-1, 0)

	case tcell.KeyRight:
		v.cursorX = min(v.cursorX+1, rules.Width-1)

	case tcell.KeyEnter:
		v.sail()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			v.engage()
		case 'n', ' ':
			v.report(v.game.Pass(v.game.CurrentPlayer()), "turn passed")
		case 'p':
			v.togglePause()
		case 'r':
			v.restart()
		}
	}
	v.recordIfFinished()
	return true
}

func (v *view) sail() {
	res, err := v.game.Move(v.game.CurrentPlayer(), v.cursorX, v.cursorY)
	if err != nil {
		v.report(err, "")
		return
	}
	msg := fmt.Sprintf("sailed to (%d, %d)", res.To.X, res.To.Y)
	if c := res.Capture; c != nil {
		msg = fmt.Sprintf("captured a %s island for %d points", c.Island.Type, c.Points)
	}
	v.report(nil, msg)
	v.focusCurrent()
}

func (v *view) engage() {
	cell, err := v.game.Inspect(v.cursorX, v.cursorY)
	if err != nil {
		v.report(err, "")
		return
	}
	if cell.Ship == nil {
		v.report(errors.New("no ship under the cursor"), "")
		return
	}
	res, err := v.game.Engage(v.game.CurrentPlayer(), cell.Ship.ID)
	if err != nil {
		v.report(err, "")
		return
	}

	msg := fmt.Sprintf("raid won %d points", res.PointsDelta)
	if d := res.Dice; d != nil {
		outcome := "lost"
		if res.AttackerWon {
			outcome = "won"
		}
		msg = fmt.Sprintf("battle %s: %v (%d) vs %v (%d)", outcome, d.AttackerRolls, d.AttackerTotal, d.DefenderRolls, d.DefenderTotal)
	}
	v.report(nil, msg)
	v.focusCurrent()
}

func (v *view) togglePause() {
	if v.game.State() == board.StatePaused {
		v.report(v.game.Resume(), "resumed")
		return
	}
	v.report(v.game.Pause(), "paused")
}

func (v *view) restart() {
	seed, err := session.NewSeed()
	if err != nil {
		v.report(err, "")
		return
	}
	if err := v.game.Restart(seed); err != nil {
		v.report(err, "")
		return
	}
	v.recorded = false
	v.report(nil, fmt.Sprintf("new board, seed %d", seed))
	v.focusCurrent()
}

func (v *view) report(err error, ok string) {
	if err != nil {
		v.message, v.isError = err.Error(), true
		return
	}
	v.message, v.isError = ok, false
}

func (v *view) focusCurrent() {
	if ship := v.currentShip(); ship != nil {
		v.cursorX, v.cursorY = ship.X, ship.Y
	}
}

func (v *view) currentShip() *board.Ship {
	current := v.game.CurrentPlayer()
	for _, p := range v.game.Players() {
		if p.ID == current {
			return p.Ship
		}
	}
	return nil
}

// recordIfFinished saves each captain's game to their profile once.
func (v *view) recordIfFinished() {
	if v.recorded || !v.game.State().Finished() {
		return
	}
	v.recorded = true
	if v.profiles == nil {
		return
	}
	winner := v.game.Winner()
	for _, p := range v.game.Players() {
		_, err := v.profiles.Record(p.Name, profile.Result{
			Points:          p.Points,
			BattlesWon:      p.BattlesWon,
			IslandsCaptured: p.IslandsCaptured,
			Won:             p.ID == winner,
		})
		if err != nil {
			v.report(err, "")
		}
	}
}

func (v *view) draw() {
	v.screen.Clear()
	snap := v.game.Snapshot()

	v.drawText(0, 0, styleText, fmt.Sprintf("PLUNDERPUNK  round %d/%d  %s  seed %d",
		snap.Round, v.game.Rules().MaxRounds, snap.State, snap.Seed))

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			v.screen.SetContent(x, boardTop+y, '~', nil, styleWater)
		}
	}
	for _, island := range snap.Islands {
		r, style := islandGlyph(island)
		v.screen.SetContent(island.X, boardTop+island.Y, r, nil, style)
	}
	for _, e := range snap.Enemies {
		v.screen.SetContent(e.X, boardTop+e.Y, 'E', nil, styleEnemy)
	}
	for _, p := range snap.Players {
		if p.Ship.Sunk() {
			continue
		}
		v.screen.SetContent(p.Ship.X, boardTop+p.Ship.Y, rune('0'+p.ID), nil, stylePlayer)
	}

	// cursor
	r, _, style, _ := v.screen.GetContent(v.cursorX, boardTop+v.cursorY)
	v.screen.SetContent(v.cursorX, boardTop+v.cursorY, r, nil, style.Reverse(true))

	y := boardTop + snap.Height + 1
	for _, p := range snap.Players {
		marker := " "
		if p.ID == snap.CurrentPlayer {
			marker = ">"
		}
		v.drawText(0, y, styleText, fmt.Sprintf("%s %d %-12s %3d/%d pts  hull %3d  islands %d  battles %d",
			marker, p.ID, p.Name, p.Points, snap.TargetPoints, p.Ship.Health, p.IslandsCaptured, p.BattlesWon))
		y++
	}
	if snap.Winner != 0 {
		v.drawText(0, y, styleTreasure, fmt.Sprintf("captain %d wins!", snap.Winner))
		y++
	}

	events := snap.Events
	if len(events) > hudEvents {
		events = events[len(events)-hudEvents:]
	}
	for _, e := range events {
		v.drawText(0, y, styleCaptured, e.Message)
		y++
	}

	style = styleText
	if v.isError {
		style = styleError
	}
	v.drawText(0, y+1, style, v.message)
	v.screen.Show()
}

func (v *view) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func islandGlyph(island board.Island) (rune, tcell.Style) {
	var r rune
	var style tcell.Style
	switch island.Type {
	case board.IslandHarbor:
		r, style = 'H', styleHarbor
	case board.IslandResource:
		r, style = 'R', styleResource
	case board.IslandTreasure:
		r, style = 'T', styleTreasure
	default:
		r, style = 'D', styleDanger
	}
	if island.Captured {
		style = styleCaptured
	}
	return r, style
}

package board

const dieSides = 6

// DiceResult is one dice exchange between an attacker and a defender.
type DiceResult struct {
	AttackerRolls []int `json:"attackerRolls"`
	DefenderRolls []int `json:"defenderRolls"`
	AttackerTotal int   `json:"attackerTotal"`
	DefenderTotal int   `json:"defenderTotal"`
	AttackerWins  bool  `json:"attackerWins"`
}

// ResolveDice rolls attackerDice d6 against defenderDice d6.
// The higher total wins and ties go to the defender.
func ResolveDice(r Roller, attackerDice, defenderDice int) DiceResult {
	res := DiceResult{
		AttackerRolls: r.Roll(attackerDice, dieSides),
		DefenderRolls: r.Roll(defenderDice, dieSides),
	}
	res.AttackerTotal = sum(res.AttackerRolls)
	res.DefenderTotal = sum(res.DefenderRolls)
	res.AttackerWins = res.AttackerTotal > res.DefenderTotal
	return res
}

type CombatKind string

const (
	CombatDice   CombatKind = "dice"
	CombatPoints CombatKind = "points"
)

// CombatResult describes an engagement from the attacking player's side.
type CombatResult struct {
	Kind         CombatKind  `json:"kind"`
	AttackerShip int         `json:"attackerShip"`
	DefenderShip int         `json:"defenderShip"`
	Dice         *DiceResult `json:"dice,omitempty"`
	AttackerWon  bool        `json:"attackerWon"`
	PointsDelta  int         `json:"pointsDelta"` // attacker's change
	DamageTaken  int         `json:"damageTaken,omitempty"`
	DefenderSunk bool        `json:"defenderSunk"`
	AttackerSunk bool        `json:"attackerSunk"`
	State        State       `json:"state"`
}

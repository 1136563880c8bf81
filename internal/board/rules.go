package board

import "fmt"

type ShipStats struct {
	MaxHealth int `yaml:"maxHealth" json:"maxHealth"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	MoveRange int `yaml:"moveRange" json:"moveRange"`
}

// Rules holds every tunable of a board game. The zero value is not usable,
// start from DefaultRules.
type Rules struct {
	Width        int `yaml:"width" json:"width"`
	Height       int `yaml:"height" json:"height"`
	IslandCount  int `yaml:"islandCount" json:"islandCount"`
	IslandMargin int `yaml:"islandMargin" json:"islandMargin"` // keep islands and enemies off the edges
	EnemyCount   int `yaml:"enemyCount" json:"enemyCount"`
	MaxPlayers   int `yaml:"maxPlayers" json:"maxPlayers"`
	TargetPoints int `yaml:"targetPoints" json:"targetPoints"`
	MaxRounds    int `yaml:"maxRounds" json:"maxRounds"`

	PlayerDice    int `yaml:"playerDice" json:"playerDice"`
	EnemyDice     int `yaml:"enemyDice" json:"enemyDice"`
	VictoryPoints int `yaml:"victoryPoints" json:"victoryPoints"`
	DefeatPenalty int `yaml:"defeatPenalty" json:"defeatPenalty"`
	MaxPointSwing int `yaml:"maxPointSwing" json:"maxPointSwing"` // ship vs ship between players

	DangerDamage int `yaml:"dangerDamage" json:"dangerDamage"`
	HarborHeal   int `yaml:"harborHeal" json:"harborHeal"`

	PlayerShip ShipStats `yaml:"playerShip" json:"playerShip"`
	EnemyShip  ShipStats `yaml:"enemyShip" json:"enemyShip"`
}

func DefaultRules() Rules {
	return Rules{
		Width:         80,
		Height:        20,
		IslandCount:   15,
		IslandMargin:  5,
		EnemyCount:    3,
		MaxPlayers:    2,
		TargetPoints:  25,
		MaxRounds:     100,
		PlayerDice:    3,
		EnemyDice:     2,
		VictoryPoints: 5,
		DefeatPenalty: 2,
		MaxPointSwing: 3,
		DangerDamage:  20,
		HarborHeal:    25,
		PlayerShip:    ShipStats{MaxHealth: 100, Attack: 10, Defense: 5, MoveRange: 3},
		EnemyShip:     ShipStats{MaxHealth: 100, Attack: 10, Defense: 5, MoveRange: 3},
	}
}

// Validate rejects rule sets the generator or the turn loop cannot work with.
func (r Rules) Validate() error {
	if r.Width < minBoardSide || r.Height < minBoardSide {
		return fmt.Errorf("board must be at least %dx%d, got %dx%d", minBoardSide, minBoardSide, r.Width, r.Height)
	}
	if r.IslandMargin < 0 || 2*r.IslandMargin >= r.Width || 2*r.IslandMargin >= r.Height {
		return fmt.Errorf("island margin %d does not fit a %dx%d board", r.IslandMargin, r.Width, r.Height)
	}
	if r.IslandCount < 0 || r.EnemyCount < 0 {
		return fmt.Errorf("island and enemy counts must not be negative")
	}
	if r.MaxPlayers < 1 {
		return fmt.Errorf("max players must be at least 1")
	}
	if r.TargetPoints <= 0 || r.MaxRounds <= 0 {
		return fmt.Errorf("target points and max rounds must be positive")
	}
	if r.PlayerDice <= 0 || r.EnemyDice <= 0 {
		return fmt.Errorf("dice counts must be positive")
	}
	if r.VictoryPoints < 0 || r.DefeatPenalty < 0 || r.MaxPointSwing < 1 {
		return fmt.Errorf("point deltas out of range")
	}
	for name, s := range map[string]ShipStats{"player": r.PlayerShip, "enemy": r.EnemyShip} {
		if s.MaxHealth <= 0 || s.MoveRange <= 0 || s.Attack < 0 || s.Defense < 0 {
			return fmt.Errorf("invalid %s ship stats", name)
		}
	}
	return nil
}

// player spawn band is x in [2,8), enemies need room right of the middle
const minBoardSide = 12

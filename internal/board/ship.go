package board

import "fmt"

type ShipKind uint8

const (
	ShipPlayer ShipKind = 1
	ShipEnemy  ShipKind = 2
)

func (k ShipKind) String() string {
	switch k {
	case ShipPlayer:
		return "Player"

	case ShipEnemy:
		return "Enemy"

	default:
		return "Unknown"
	}
}

func (k ShipKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ShipKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Player":
		*k = ShipPlayer
	case "Enemy":
		*k = ShipEnemy
	default:
		return fmt.Errorf("unknown ship kind %q", b)
	}
	return nil
}

// Ship stats are per instance so rules files can tune them.
type Ship struct {
	ID        int      `json:"id"`
	Kind      ShipKind `json:"kind"`
	Owner     int      `json:"owner,omitempty"` // player id, 0 for enemies
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"maxHealth"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	MoveRange int      `json:"moveRange"`
}

func newShip(id int, kind ShipKind, x, y int, stats ShipStats) *Ship {
	return &Ship{
		ID:        id,
		Kind:      kind,
		X:         x,
		Y:         y,
		Health:    stats.MaxHealth,
		MaxHealth: stats.MaxHealth,
		Attack:    stats.Attack,
		Defense:   stats.Defense,
		MoveRange: stats.MoveRange,
	}
}

func (s *Ship) Pos() Point {
	return Point{X: s.X, Y: s.Y}
}

func (s *Ship) Sunk() bool {
	return s.Health <= 0
}

// TakeDamage lowers health, never below 0. Returns true when this hit sank the ship.
func (s *Ship) TakeDamage(amount int) bool {
	if amount <= 0 || s.Sunk() {
		return false
	}
	s.Health -= amount
	if s.Health < 0 {
		s.Health = 0
	}
	return s.Health == 0
}

// Heal raises health up to MaxHealth. Sunk ships stay sunk.
func (s *Ship) Heal(amount int) {
	if amount <= 0 || s.Sunk() {
		return
	}
	s.Health += amount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
}

// DamageAgainst is attack minus the target's defense, at least 1.
func (s *Ship) DamageAgainst(target *Ship) int {
	dmg := s.Attack - target.Defense
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

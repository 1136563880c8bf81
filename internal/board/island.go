package board

import "fmt"

type IslandType uint8

const (
	IslandHarbor   IslandType = 0 // heals the ship, 2 points
	IslandResource IslandType = 1 // 1 point
	IslandTreasure IslandType = 2 // 3 points
	IslandDanger   IslandType = 3 // 0 points, damages the ship
)

func (t IslandType) String() string {
	switch t {
	case IslandHarbor:
		return "Harbor"

	case IslandResource:
		return "Resource"

	case IslandTreasure:
		return "Treasure"

	case IslandDanger:
		return "Danger"

	default:
		return "Unknown"
	}
}

// PointValue is fixed per type, captured or not.
func (t IslandType) PointValue() int {
	switch t {
	case IslandHarbor:
		return 2

	case IslandResource:
		return 1

	case IslandTreasure:
		return 3

	default:
		return 0
	}
}

func (t IslandType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *IslandType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Harbor":
		*t = IslandHarbor
	case "Resource":
		*t = IslandResource
	case "Treasure":
		*t = IslandTreasure
	case "Danger":
		*t = IslandDanger
	default:
		return fmt.Errorf("unknown island type %q", b)
	}
	return nil
}

type Island struct {
	ID         int        `json:"id"`
	X          int        `json:"x"`
	Y          int        `json:"y"`
	Type       IslandType `json:"type"`
	Captured   bool       `json:"captured"`
	CapturedBy int        `json:"capturedBy,omitempty"` // player id
}

func (i *Island) PointValue() int {
	return i.Type.PointValue()
}

// capture flips the island to captured. It reports false when the island was
// already taken, in which case nothing else may happen.
func (i *Island) capture(playerID int) bool {
	if i.Captured {
		return false
	}
	i.Captured = true
	i.CapturedBy = playerID
	return true
}

// weighted pick: 40% resource, 30% harbor, 15% treasure, 15% danger
func islandTypeFor(roll float64) IslandType {
	switch {
	case roll < 0.4:
		return IslandResource
	case roll < 0.7:
		return IslandHarbor
	case roll < 0.85:
		return IslandTreasure
	default:
		return IslandDanger
	}
}

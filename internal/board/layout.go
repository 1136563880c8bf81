package board

import (
	"errors"
	"fmt"
)

// Named board layouts. Classic is the wide sea chart, tall the portrait
// board used by browser clients.
const (
	LayoutClassic = "classic"
	LayoutTall    = "tall"
)

var ErrUnknownLayout = errors.New("unknown board layout")

func Layouts() []string {
	return []string{LayoutClassic, LayoutTall}
}

// WithLayout orients the board for a named layout, keeping its area.
// An empty name means classic.
func (r Rules) WithLayout(name string) (Rules, error) {
	long, short := max(r.Width, r.Height), min(r.Width, r.Height)
	switch name {
	case "", LayoutClassic:
		r.Width, r.Height = long, short

	case LayoutTall:
		r.Width, r.Height = short, long

	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return r, nil
}

package geom

import (
	"fmt"
	"strings"
)

// Align positions an item along one axis inside an available extent.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// Offset returns where an item of length size starts inside avail.
// Items larger than avail overflow; the offset may then be negative.
func (a Align) Offset(avail, size float64) float64 {
	switch a {
	case AlignCenter:
		return (avail - size) / 2
	case AlignEnd:
		return avail - size
	default:
		return 0
	}
}

// ParseAlign accepts start/center/end as well as the physical names
// left/top (start) and right/bottom (end).
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "left", "top":
		return AlignStart, nil
	case "center", "middle":
		return AlignCenter, nil
	case "end", "right", "bottom":
		return AlignEnd, nil
	}
	return AlignStart, fmt.Errorf("unknown alignment %q", s)
}

package geom

import (
	"fmt"
	"strings"
)

// Anchor names one of the nine canonical reference points of a rectangle.
type Anchor int

// The zero value is Center.
const (
	Center Anchor = iota
	TopLeft
	TopCenter
	TopRight
	LeftCenter
	RightCenter
	BottomLeft
	BottomCenter
	BottomRight
)

// Edge midpoint aliases.
const (
	Top    = TopCenter
	Bottom = BottomCenter
	Left   = LeftCenter
	Right  = RightCenter
)

var anchorNames = map[Anchor]string{
	Center:       "center",
	TopLeft:      "topLeft",
	TopCenter:    "topCenter",
	TopRight:     "topRight",
	LeftCenter:   "leftCenter",
	RightCenter:  "rightCenter",
	BottomLeft:   "bottomLeft",
	BottomCenter: "bottomCenter",
	BottomRight:  "bottomRight",
}

// Anchors lists every anchor in declaration order.
var Anchors = []Anchor{Center, TopLeft, TopCenter, TopRight, LeftCenter, RightCenter, BottomLeft, BottomCenter, BottomRight}

func (a Anchor) String() string {
	if s, ok := anchorNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// fractions returns the relative position of the anchor inside a unit box.
func (a Anchor) fractions() (fx, fy float64) {
	switch a {
	case TopLeft:
		return 0, 0
	case TopCenter:
		return 0.5, 0
	case TopRight:
		return 1, 0
	case LeftCenter:
		return 0, 0.5
	case RightCenter:
		return 1, 0.5
	case BottomLeft:
		return 0, 1
	case BottomCenter:
		return 0.5, 1
	case BottomRight:
		return 1, 1
	default:
		return 0.5, 0.5
	}
}

// FollowsSize reports whether the anchor moves when the box grows
// horizontally or vertically, that is, whether it lies past the leading
// edge on that axis.
func (a Anchor) FollowsSize() (x, y bool) {
	fx, fy := a.fractions()
	return fx > 0, fy > 0
}

// ParseAnchor accepts camelCase ("topRight"), kebab-case ("top-right"),
// snake_case and the edge aliases "top", "bottom", "left" and "right".
// The empty string is Center.
func ParseAnchor(s string) (Anchor, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch key {
	case "", "center", "middle":
		return Center, nil
	case "topleft":
		return TopLeft, nil
	case "top", "topcenter":
		return TopCenter, nil
	case "topright":
		return TopRight, nil
	case "left", "leftcenter":
		return LeftCenter, nil
	case "right", "rightcenter":
		return RightCenter, nil
	case "bottomleft":
		return BottomLeft, nil
	case "bottom", "bottomcenter":
		return BottomCenter, nil
	case "bottomright":
		return BottomRight, nil
	}
	return Center, fmt.Errorf("unknown anchor %q", s)
}

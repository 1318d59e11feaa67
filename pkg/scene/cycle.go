package scene

import (
	"slices"
	"strings"

	"github.com/matzehuels/boxscene/pkg/geom"
)

// Dependency edges run from an element to everything its absolute position
// is derived from: its parent, the target of its constraint and, when the
// target anchor moves with an auto-sized axis of the target, every
// descendant of the target. Constraints count even while a proactive parent
// suspends them, so that detaching an element can never introduce a cycle.
func (s *Scene) dependencies(n *node) []ID {
	deps := make([]ID, 0, 2)
	if n.parent != 0 {
		deps = append(deps, n.parent)
	}
	if n.constraint == nil || n.constraint.RelativeTo.IsLiteral() {
		return deps
	}
	ref := n.constraint.RelativeTo
	deps = append(deps, ref.target)
	if t := s.get(ref.target); t != nil && s.followsAutoSize(t, ref.anchor) {
		s.eachDescendant(t, func(d *node) { deps = append(deps, d.id) })
	}
	return deps
}

// followsAutoSize reports whether anchor a of t moves when t auto-sizes.
func (s *Scene) followsAutoSize(t *node, a geom.Anchor) bool {
	if !t.kind.IsContainer() {
		return false
	}
	x, y := a.FollowsSize()
	return (x && t.width.IsAuto()) || (y && t.height.IsAuto())
}

// findCycle returns a dependency cycle reachable from any of starts, as a
// path whose first and last elements are the same, or nil.
func (s *Scene) findCycle(starts ...ID) []ID {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[ID]int)
	var path, cycle []ID

	var visit func(id ID) bool
	visit = func(id ID) bool {
		state[id] = onPath
		path = append(path, id)
		for _, dep := range s.dependencies(s.get(id)) {
			switch state[dep] {
			case onPath:
				cycle = append(slices.Clone(path[slices.Index(path, dep):]), dep)
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return false
	}

	for _, id := range starts {
		if state[id] == unvisited && visit(id) {
			return cycle
		}
	}
	return nil
}

func (s *Scene) describePath(path []ID) string {
	names := make([]string, len(path))
	for i, id := range path {
		names[i] = s.label(id)
	}
	return strings.Join(names, " -> ")
}

package scene

import "github.com/matzehuels/boxscene/pkg/measure"

// measureText sizes a text element. Measurer failures fall back to
// measure.Estimate and leave the element pending.
func (s *Scene) measureText(n *node) {
	size, err := s.measurer.Measure(n.text, n.font)
	if err != nil {
		if !n.textPending {
			s.logger.Debug("text measurement unavailable, using estimate", "element", n.name, "err", err)
		}
		n.size = measure.Estimate(n.text, n.font)
		n.textPending = true
		return
	}
	size.Width, size.Height = max(0, size.Width), max(0, size.Height)
	if n.textPending {
		s.logger.Debug("text measured", "element", n.name, "width", size.Width, "height", size.Height)
	}
	n.size = size
	n.textPending = false
}

func (s *Scene) remeasure() {
	for _, n := range s.nodes {
		if n.kind == KindText && n.textPending {
			s.measureText(n)
		}
	}
}

// Refresh retries every pending text measurement and settles the scene.
func (s *Scene) Refresh() error { return s.settle() }

// Pending reports whether a text element is still sized by an estimate.
func (s *Scene) Pending(id ID) bool {
	n := s.get(id)
	return n != nil && n.textPending
}

// PendingCount returns the number of text elements sized by estimates.
func (s *Scene) PendingCount() int {
	count := 0
	for _, n := range s.nodes {
		if n.textPending {
			count++
		}
	}
	return count
}

// SetText replaces a text element's content and remeasures it.
func (s *Scene) SetText(id ID, text string) error {
	n, err := s.lookup(id)
	if err != nil {
		return err
	}
	if n.kind != KindText {
		return errInvalidTarget(n, "set text on")
	}
	before := s.checkpoint()
	prev := n.text
	n.text = text
	s.measureText(n)
	return s.commit(before, func() { n.text = prev })
}

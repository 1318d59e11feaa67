package scene

import (
	"context"
	"math"
	"strings"

	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/geom"
)

// settlePassSlack bounds the number of passes beyond one per element.
const settlePassSlack = 8

// maxMovingNames caps how many still-moving elements a convergence error
// names.
const maxMovingNames = 5

// frame is the settled state of one element, enough to undo a failed settle.
type frame struct {
	rel     geom.Point
	size    geom.Size
	placed  *Cell
	pending bool
}

// Batch runs fn with settling deferred and settles the scene once when fn
// returns. ctx is checked between passes of that final settle. Nested
// batches run fn directly and leave settling to the outermost one.
//
// Mutators called inside fn still reject dependency cycles, but report no
// convergence errors of their own and roll nothing back. When Batch returns
// an error the scene may be partially built or unsettled and should be
// discarded.
func (s *Scene) Batch(ctx context.Context, fn func() error) error {
	if s.batching {
		return fn()
	}
	s.batching = true
	err := fn()
	s.batching = false
	if err != nil {
		return err
	}
	return s.settleContext(ctx)
}

// settle brings every element to a stable layout, or does nothing inside a
// batch.
func (s *Scene) settle() error {
	if s.batching {
		return nil
	}
	return s.settleContext(context.Background())
}

// settleContext remeasures pending text once, then walks every root (the
// artboard and each unattached subtree) post-order until no position or
// size changes: children first, then the container arranges or resolves its
// children's constraints, then auto-sizes. A layout that is still moving
// after the pass limit fails with [errors.ErrCodePositionCycle].
func (s *Scene) settleContext(ctx context.Context) error {
	s.remeasure()
	limit := len(s.nodes) + settlePassSlack
	before := s.snapshot()
	var moving []ID
	for pass := 1; pass <= limit; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, n := range s.nodes {
			if n.parent == 0 {
				s.layout(n)
			}
		}
		if moving = s.changed(before); len(moving) == 0 {
			s.logger.Debug("scene settled", "passes", pass, "elements", len(s.nodes))
			return nil
		}
		before = s.snapshot()
	}
	s.logger.Warn("scene did not settle", "passes", limit, "elements", len(s.nodes), "moving", len(moving))
	return errors.New(errors.ErrCodePositionCycle, "layout did not converge after %d passes; still moving: %s",
		limit, s.describeMoving(moving))
}

func (s *Scene) layout(n *node) {
	for _, id := range n.children {
		s.layout(s.get(id))
	}
	if n.kind.IsContainer() {
		if n.arranger.Proactive() {
			s.arrange(n)
		} else {
			for _, id := range n.children {
				s.resolve(s.get(id))
			}
		}
	}
	if n.parent == 0 && n.id != s.root {
		s.resolve(n)
	}
	s.autosize(n)
}

// checkpoint snapshots the scene ahead of a mutation committed with commit.
// Batched mutations are never rolled back, so nothing is recorded.
func (s *Scene) checkpoint() []frame {
	if s.batching {
		return nil
	}
	return s.snapshot()
}

func (s *Scene) snapshot() []frame {
	out := make([]frame, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = frame{rel: n.rel, size: n.size, placed: n.placed, pending: n.textPending}
	}
	return out
}

// restore puts back the geometry of a snapshot. Elements created after it
// are left alone.
func (s *Scene) restore(frames []frame) {
	for i, f := range frames {
		n := s.nodes[i]
		n.rel, n.size, n.placed, n.textPending = f.rel, f.size, f.placed, f.pending
	}
}

// changed returns the elements whose position or size differs from before.
func (s *Scene) changed(before []frame) []ID {
	var out []ID
	for i, n := range s.nodes {
		if i >= len(before) {
			out = append(out, n.id)
			continue
		}
		b := before[i]
		if !n.rel.ApproxEqual(b.rel, geom.Eps) ||
			math.Abs(n.size.Width-b.size.Width) > geom.Eps ||
			math.Abs(n.size.Height-b.size.Height) > geom.Eps {
			out = append(out, n.id)
		}
	}
	return out
}

func (s *Scene) describeMoving(ids []ID) string {
	names := make([]string, 0, min(len(ids), maxMovingNames)+1)
	for i, id := range ids {
		if i == maxMovingNames {
			names = append(names, "...")
			break
		}
		names = append(names, s.label(id))
	}
	return strings.Join(names, ", ")
}

// commit settles after a mutation. If the layout does not converge, undo
// reverts the mutation and the geometry of before is restored, which leaves
// the scene as it was before the call.
func (s *Scene) commit(before []frame, undo func()) error {
	err := s.settle()
	if err != nil {
		undo()
		s.restore(before)
	}
	return err
}

package scene

import (
	"testing"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/geom"
)

func TestAutoSizeUnion(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	c := mustContainer(t, s, ContainerConfig{Name: "c", Box: boxmodel.Config{Padding: boxmodel.All(20)}})
	mustAdd(t, s, s.Root(), c)

	r1 := mustRect(t, s, "r1", 200, 150)
	r2 := mustRect(t, s, "r2", 180, 120)
	circle := mustCircle(t, s, "circle", 60)
	mustPosition(t, s, r1, PositionSpec{RelativeTo: At(50, 50)})
	mustPosition(t, s, r2, PositionSpec{RelativeTo: At(300, 100)})
	mustPosition(t, s, circle, PositionSpec{RelativeTo: At(400, 300)})
	for _, id := range []ID{r1, r2, circle} {
		mustAdd(t, s, c, id)
	}

	content := s.ContentBox(c)
	if !near(content.Width, 460) || !near(content.Height, 360) {
		t.Errorf("content size = %vx%v, want 460x360", content.Width, content.Height)
	}
	border := s.BorderBox(c)
	if !near(border.Width, 500) || !near(border.Height, 400) {
		t.Errorf("border size = %vx%v, want 500x400", border.Width, border.Height)
	}
	assertPoint(t, "circle center", s.Anchor(circle, geom.Center), content.Origin().Add(geom.Pt(400, 300)))
}

func TestAutoSizeEmptyIsZero(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	c := mustContainer(t, s, ContainerConfig{Name: "c", Box: boxmodel.Config{Padding: boxmodel.All(8)}})
	mustAdd(t, s, s.Root(), c)

	if got := s.ContentBox(c); got.Width != 0 || got.Height != 0 {
		t.Errorf("ContentBox() = %+v, want zero size", got)
	}
	if got := s.BorderBox(c); got.Width != 16 || got.Height != 16 {
		t.Errorf("BorderBox() = %+v, want 16x16", got)
	}
}

func TestAutoSizeDeepInsertionGrowsArtboard(t *testing.T) {
	s := newScene(t, ArtboardConfig{Box: boxmodel.Config{Padding: boxmodel.All(10)}})
	parent := s.Root()
	for i := range 4 {
		c := mustContainer(t, s, ContainerConfig{Box: boxmodel.Config{Padding: boxmodel.All(5)}})
		mustAdd(t, s, parent, c)
		if i == 0 {
			mustPosition(t, s, c, PositionSpec{RelativeFrom: geom.TopLeft, BoxReference: BorderBox, RelativeTo: At(30, 0)})
		}
		parent = c
	}

	before := s.BorderBox(s.Root())
	r := mustRect(t, s, "deep", 100, 50)
	mustAdd(t, s, parent, r)
	after := s.BorderBox(s.Root())

	// 30 offset + 4 containers × 10 padding + 100 content + artboard padding.
	if !near(after.Width, 30+40+100+20) || !near(after.Height, 40+50+20) {
		t.Errorf("artboard border box = %vx%v, want 190x110 (was %vx%v)", after.Width, after.Height, before.Width, before.Height)
	}
}

func TestFixedContainerDoesNotGrow(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	c := mustContainer(t, s, ContainerConfig{Name: "c", Width: Px(50), Height: Px(50)})
	r := mustRect(t, s, "r", 200, 200)
	mustAdd(t, s, c, r)
	mustAdd(t, s, s.Root(), c)

	if got := s.ContentBox(c); got.Width != 50 || got.Height != 50 {
		t.Errorf("ContentBox() = %+v, want 50x50", got)
	}
	if got := s.ContentBox(s.Root()); got.Width != 200 {
		t.Errorf("artboard width = %v, want overflow 200 to count", got.Width)
	}
}

func TestStackAlignAutoCross(t *testing.T) {
	s := newScene(t, ArtboardConfig{Box: boxmodel.Config{Padding: boxmodel.All(12)}})
	stack := mustContainer(t, s, ContainerConfig{Name: "stack", Layout: VStack(10, geom.AlignEnd)})
	mustAdd(t, s, s.Root(), stack)

	widths := []float64{180, 120, 240, 160, 200}
	var ids []ID
	for _, w := range widths {
		id := mustRect(t, s, "", w, 30)
		mustAdd(t, s, stack, id)
		ids = append(ids, id)
	}

	content := s.ContentBox(stack)
	if !near(content.Width, 240) {
		t.Fatalf("stack content width = %v, want 240", content.Width)
	}
	for i, id := range ids {
		b := s.BorderBox(id)
		if !near(b.MaxX(), content.X+240) {
			t.Errorf("rect %d right edge = %v, want %v", i, b.MaxX(), content.X+240)
		}
		if !near(b.Y, content.Y+float64(i)*40) {
			t.Errorf("rect %d y = %v, want %v", i, b.Y, content.Y+float64(i)*40)
		}
	}
	if !near(content.Height, 5*30+4*10) {
		t.Errorf("stack content height = %v, want 190", content.Height)
	}
}

func TestStackVariants(t *testing.T) {
	tests := []struct {
		name   string
		layout Stack
		width  Length
		margin float64
		want   []geom.Point
	}{
		{"horizontal start", HStack(5, geom.AlignStart), Length{}, 0, []geom.Point{{X: 0, Y: 0}, {X: 25, Y: 0}}},
		{"horizontal center", HStack(0, geom.AlignCenter), Length{}, 0, []geom.Point{{X: 0, Y: 5}, {X: 20, Y: 0}}},
		{"vertical center fixed", VStack(0, geom.AlignCenter), Px(100), 0, []geom.Point{{X: 40, Y: 0}, {X: 35, Y: 10}}},
		{"respect margin", Stack{Axis: Vertical, Spacing: 2, RespectMargin: true}, Length{}, 3, []geom.Point{{X: 3, Y: 3}, {X: 3, Y: 21}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene(t, ArtboardConfig{})
			c := mustContainer(t, s, ContainerConfig{Width: tt.width, Layout: tt.layout})
			mustAdd(t, s, s.Root(), c)
			box := boxmodel.Config{Margin: boxmodel.All(tt.margin)}
			a, _ := s.Rect(RectConfig{Width: Px(20), Height: Px(10), Box: box})
			b, _ := s.Rect(RectConfig{Width: Px(30), Height: Px(20), Box: box})
			mustAdd(t, s, c, a)
			mustAdd(t, s, c, b)

			for i, id := range []ID{a, b} {
				assertPoint(t, s.Name(id)+" RelativePosition()", s.RelativePosition(id), tt.want[i])
			}
		})
	}
}

func TestStackOverridesConstraint(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	stack := mustContainer(t, s, ContainerConfig{Layout: VStack(0, geom.AlignStart)})
	r := mustRect(t, s, "r", 10, 10)
	mustPosition(t, s, r, PositionSpec{RelativeTo: At(500, 500)})
	mustAdd(t, s, stack, r)

	assertPoint(t, "RelativePosition()", s.RelativePosition(r), geom.Pt(0, 0))
	if _, ok := s.Constraint(r); !ok {
		t.Errorf("constraint dropped by stack")
	}
}

func TestGridRowMajor(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	g := mustContainer(t, s, ContainerConfig{Name: "g", Layout: Grid{Columns: 3, ColumnGap: 5, RowGap: 5}})
	mustAdd(t, s, s.Root(), g)

	var ids []ID
	for range 5 {
		id := mustRect(t, s, "", 10, 10)
		mustAdd(t, s, g, id)
		ids = append(ids, id)
	}

	want := []geom.Point{{X: 0, Y: 0}, {X: 15, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 15}, {X: 15, Y: 15}}
	for i, id := range ids {
		assertPoint(t, "cell position", s.RelativePosition(id), want[i])
	}
	if got := s.ContentBox(g); !near(got.Width, 40) || !near(got.Height, 25) {
		t.Errorf("grid content = %vx%v, want 40x25", got.Width, got.Height)
	}
	if id, ok := s.Cell(g, 1, 1); !ok || id != ids[4] {
		t.Errorf("Cell(1, 1) = %v, %v, want %v", id, ok, ids[4])
	}
	if _, ok := s.Cell(g, 1, 2); ok {
		t.Errorf("Cell(1, 2) found an element in an empty cell")
	}
}

func TestGridExplicitCellsAndAlignment(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	g := mustContainer(t, s, ContainerConfig{Name: "g", Layout: Grid{
		Columns: 3, Rows: 2, CellWidth: 40, CellHeight: 20,
		HAlign: geom.AlignCenter, VAlign: geom.AlignEnd,
	}})
	mustAdd(t, s, s.Root(), g)

	pinned := mustRect(t, s, "pinned", 10, 10)
	if err := s.AddElementAt(g, pinned, 0, 1); err != nil {
		t.Fatalf("AddElementAt() error: %v", err)
	}
	a := mustRect(t, s, "a", 10, 10)
	b := mustRect(t, s, "b", 10, 10)
	mustAdd(t, s, g, a)
	mustAdd(t, s, g, b)

	cells := map[ID]Cell{pinned: {0, 1}, a: {0, 0}, b: {0, 2}}
	for id, want := range cells {
		if got, _ := s.CellOf(id); got != want {
			t.Errorf("CellOf(%s) = %v, want %v", s.Name(id), got, want)
		}
	}
	assertPoint(t, "pinned position", s.RelativePosition(pinned), geom.Pt(55, 10))

	other := mustRect(t, s, "other", 1, 1)
	if err := s.AddElementAt(g, other, 0, 1); err == nil {
		t.Errorf("AddElementAt() on a taken cell succeeded")
	}
	if err := s.AddElementAt(g, other, 0, 3); err == nil {
		t.Errorf("AddElementAt() outside the grid succeeded")
	}
}

func TestGridOverflowAddsRows(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	g := mustContainer(t, s, ContainerConfig{Layout: Grid{Columns: 2, Rows: 1, CellWidth: 10, CellHeight: 10}})
	var last ID
	for range 3 {
		last = mustRect(t, s, "", 10, 10)
		mustAdd(t, s, g, last)
	}
	if got, _ := s.CellOf(last); got != (Cell{Row: 1, Col: 0}) {
		t.Errorf("CellOf(third) = %v, want {1 0}", got)
	}
}

func TestColumns(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	cols := mustContainer(t, s, ContainerConfig{
		Name:   "cols",
		Width:  Px(320),
		Box:    boxmodel.Config{Padding: boxmodel.All(4)},
		Layout: Columns{Count: 3, Gutter: 10},
	})
	mustAdd(t, s, s.Root(), cols)

	content := s.ContentBox(cols)
	for i := range 3 {
		lane, ok := s.Column(cols, i)
		if !ok {
			t.Fatalf("Column(%d) missing", i)
		}
		lb := s.BorderBox(lane)
		if !near(lb.Width, 100) || !near(lb.X, content.X+float64(i)*110) {
			t.Errorf("lane %d = %+v, want x=%v width=100", i, lb, content.X+float64(i)*110)
		}
	}
	if _, ok := s.Column(cols, 3); ok {
		t.Errorf("Column(3) exists, want only 3 lanes")
	}

	lane, _ := s.Column(cols, 1)
	r := mustRect(t, s, "r", 50, 30)
	mustAdd(t, s, lane, r)
	mustPosition(t, s, r, PositionSpec{RelativeFrom: geom.TopLeft, RelativeTo: At(0, 12)})

	assertPoint(t, "rect in lane 1", s.BorderBox(r).TopLeft(), content.Origin().Add(geom.Pt(110, 12)))
	if got := s.ContentBox(cols).Height; !near(got, 42) {
		t.Errorf("columns height = %v, want 42", got)
	}
}

func TestColumnsAutoWidth(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	fixed := mustContainer(t, s, ContainerConfig{Layout: Columns{Count: 2, Gutter: 6, LaneWidth: 50}})
	if got := s.ContentBox(fixed).Width; !near(got, 106) {
		t.Errorf("content width with LaneWidth = %v, want 106", got)
	}

	auto := mustContainer(t, s, ContainerConfig{Layout: Columns{Count: 2, Gutter: 6}})
	lane0, _ := s.Column(auto, 0)
	lane1, _ := s.Column(auto, 1)
	mustAdd(t, s, lane0, mustRect(t, s, "w30", 30, 5))
	mustAdd(t, s, lane1, mustRect(t, s, "w20", 20, 5))
	assertPoint(t, "second lane origin", s.RelativePosition(lane1), geom.Pt(36, 0))
	if got := s.ContentBox(auto).Width; !near(got, 56) {
		t.Errorf("content width with auto lanes = %v, want 56", got)
	}
}

func TestFreeformChildRelativeToContainer(t *testing.T) {
	s := newScene(t, ArtboardConfig{})
	c := mustContainer(t, s, ContainerConfig{Name: "c", Width: Px(200), Height: Px(100), Box: boxmodel.Config{Padding: boxmodel.All(10)}})
	mustAdd(t, s, s.Root(), c)
	r := mustRect(t, s, "r", 20, 20)
	mustAdd(t, s, c, r)
	mustPosition(t, s, r, PositionSpec{RelativeFrom: geom.BottomRight, RelativeTo: AnchorOf(c, geom.BottomRight)})

	assertPoint(t, "r.bottomRight", s.Anchor(r, geom.BottomRight), s.Anchor(c, geom.BottomRight))

	if err := s.Translate(c, TranslateSpec{Along: geom.DirRight, Distance: 50}); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	assertPoint(t, "r.bottomRight after move", s.Anchor(r, geom.BottomRight), geom.Pt(260, 110))
}

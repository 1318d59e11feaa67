package scene_test

import (
	"fmt"

	"github.com/matzehuels/boxscene/pkg/boxmodel"
	"github.com/matzehuels/boxscene/pkg/geom"
	"github.com/matzehuels/boxscene/pkg/scene"
)

func ExampleScene_Position() {
	s, _ := scene.New(scene.ArtboardConfig{Box: boxmodel.Config{Padding: boxmodel.All(10)}})

	box, _ := s.Rect(scene.RectConfig{Name: "box", Width: scene.Px(100), Height: scene.Px(40)})
	dot, _ := s.Circle(scene.CircleConfig{Name: "dot", Radius: 5})
	_ = s.AddElement(s.Root(), box)
	_ = s.AddElement(s.Root(), dot)

	// Center the dot on the box's top-right corner.
	_ = s.Position(dot, scene.PositionSpec{
		RelativeFrom: geom.Center,
		RelativeTo:   scene.AnchorOf(box, geom.TopRight),
	})

	fmt.Println("box top-right:", s.Anchor(box, geom.TopRight))
	fmt.Println("dot center:", s.Anchor(dot, geom.Center))
	// Output:
	// box top-right: (110, 10)
	// dot center: (110, 10)
}

func ExampleScene_AddElement_stack() {
	s, _ := scene.New(scene.ArtboardConfig{})
	stack, _ := s.Container(scene.ContainerConfig{
		Name:   "stack",
		Layout: scene.VStack(8, geom.AlignCenter),
		Box:    boxmodel.Config{Padding: boxmodel.All(4)},
	})
	_ = s.AddElement(s.Root(), stack)

	for _, w := range []float64{60, 100, 80} {
		r, _ := s.Rect(scene.RectConfig{Width: scene.Px(w), Height: scene.Px(20)})
		_ = s.AddElement(stack, r)
	}

	for _, id := range s.Children(stack) {
		fmt.Println(s.RelativePosition(id))
	}
	b := s.BorderBox(stack)
	fmt.Printf("stack: %gx%g\n", b.Width, b.Height)
	// Output:
	// (20, 0)
	// (0, 28)
	// (10, 56)
	// stack: 108x84
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscene/pkg/pipeline"
	"github.com/matzehuels/boxscene/pkg/render/tree"
	"github.com/matzehuels/boxscene/pkg/scene"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	boxes      bool   // print all four boxes per element
	unattached bool   // include elements outside the ownership tree
	dot        string // write DOT to this path ("-" for stdout)
	svg        string // render the DOT with Graphviz to this path
	detailed   bool   // geometry in DOT node labels
	measurer   string
}

var (
	treeEnumStyle = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
	treeNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeKindStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{measurer: pipeline.DefaultMeasurer}

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print a diagram's ownership tree with resolved boxes",
		Long: `Build a diagram and print its ownership tree, one line per element with
its border box. --dot and --svg export the same tree, including position
constraints as dashed edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.boxes, "boxes", false, "print margin, padding and content boxes")
	cmd.Flags().BoolVar(&opts.unattached, "unattached", false, "include detached elements")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write Graphviz DOT to file (- for stdout)")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "render the tree with Graphviz to an SVG file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry in DOT labels")
	cmd.Flags().StringVar(&opts.measurer, "measurer", opts.measurer, "text measurer: opentype, estimate")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, path string, opts treeOpts) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(nil, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	doc, s, err := runner.BuildFile(ctx, path, pipeline.Options{Measurer: opts.measurer, Logger: logger})
	if err != nil {
		return err
	}
	prog.done("built scene", "path", path, "pending", s.PendingCount())

	if opts.dot == "" && opts.svg == "" {
		fmt.Fprintln(stdout, formatTree(s, opts.boxes, opts.unattached))
		fmt.Fprintln(stdout)
		printKeyValue("Diagram", doc.Summary())
		printNextStep("Export as a graph", "boxscene tree "+path+" --svg tree.svg")
		return nil
	}

	dot := tree.ToDOT(s, tree.Options{Detailed: opts.detailed, Constraints: true, Unattached: opts.unattached})
	if opts.dot == stdinArg {
		fmt.Fprint(stdout, dot)
	} else if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.dot, err)
		}
		printFile(opts.dot)
	}
	if opts.svg != "" {
		svg, err := tree.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		printFile(opts.svg)
	}
	return nil
}

// formatTree renders the ownership tree in render order.
func formatTree(s *scene.Scene, boxes, unattached bool) string {
	root := subtree(s, s.Root(), boxes)
	out := root.String()
	if !unattached {
		return out
	}
	var detached []string
	for _, id := range s.Elements() {
		if _, ok := s.Parent(id); !ok && id != s.Root() {
			detached = append(detached, subtree(s, id, boxes).String())
		}
	}
	if len(detached) > 0 {
		out += "\n\n" + StyleDim.Render("detached:") + "\n" + strings.Join(detached, "\n")
	}
	return out
}

func subtree(s *scene.Scene, id scene.ID, boxes bool) *lgtree.Tree {
	t := lgtree.Root(elementLabel(s, id, boxes)).
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)
	for _, child := range s.RenderOrder(id) {
		if len(s.Children(child)) == 0 {
			t.Child(elementLabel(s, child, boxes))
			continue
		}
		t.Child(subtree(s, child, boxes))
	}
	return t
}

// elementLabel is "name kind WxH at (x, y)", plus one line per box with boxes.
func elementLabel(s *scene.Scene, id scene.ID, boxes bool) string {
	line := treeNameStyle.Render(s.Name(id)) + " " + treeKindStyle.Render(s.Kind(id).String()) + " " +
		StyleValue.Render(fmtRect(s.BorderBox(id)))
	if s.Pending(id) {
		line += " " + StyleWarning.Render("estimated")
	}
	if !boxes {
		return line
	}
	return strings.Join(append([]string{line}, boxLines(s, id, 8)...), "\n")
}

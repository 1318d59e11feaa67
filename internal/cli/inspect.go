package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscene/pkg/pipeline"
)

// inspectCommand creates the interactive element browser.
func (c *CLI) inspectCommand() *cobra.Command {
	measurer := pipeline.DefaultMeasurer

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Browse a diagram's elements and their boxes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], measurer)
		},
	}

	cmd.Flags().StringVar(&measurer, "measurer", measurer, "text measurer: opentype, estimate")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, path, measurer string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	doc, s, err := runner.BuildFile(ctx, path, pipeline.Options{Measurer: measurer})
	if err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = path
	}
	model := NewElementListModel(s, fmt.Sprintf("%s · %s", title, doc.Summary()))
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

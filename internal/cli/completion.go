package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscene/pkg/pipeline"
)

var (
	completeFormats   = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT}
	completeMeasurers = []string{pipeline.MeasurerOpenType, pipeline.MeasurerEstimate}
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxscene.

  $ source <(boxscene completion bash)
  $ boxscene completion zsh > "${fpath[1]}/_boxscene"
  $ boxscene completion fish > ~/.config/fish/completions/boxscene.fish
  PS> boxscene completion powershell | Out-String | Invoke-Expression

Diagram arguments complete to *.toml files; --format and --measurer
complete to their accepted values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions wires dynamic completions into the diagram commands.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "render", "tree", "inspect":
			cmd.ValidArgsFunction = completeDiagrams
		default:
			continue
		}
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(completeFormats))
		}
		_ = cmd.RegisterFlagCompletionFunc("measurer", fixedCompletion(completeMeasurers))
	}
}

func completeDiagrams(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

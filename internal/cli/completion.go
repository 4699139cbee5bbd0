package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/grid"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for qrsheet.

Bash:
  $ source <(qrsheet completion bash)

Zsh:
  $ qrsheet completion zsh > "${fpath[1]}/_qrsheet"

Fish:
  $ qrsheet completion fish > ~/.config/fish/completions/qrsheet.fish

PowerShell:
  PS> qrsheet completion powershell | Out-String | Invoke-Expression
`,
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
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerFlagCompletions wires value completion for the generation flags
// present on cmd.
func registerFlagCompletions(cmd *cobra.Command) {
	completions := map[string][]string{
		"error-level": {"l", "m", "q", "h"},
		"output":      {"pdf", "zip", "both"},
		"page":        grid.PageSizeNames(),
	}
	for name, values := range completions {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fixedCompletion(values...))
		}
	}
}

// spreadsheetArgs completes the file argument with spreadsheet extensions.
func spreadsheetArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"csv", "xlsx", "xls"}, cobra.ShellCompDirectiveFilterFileExt
}

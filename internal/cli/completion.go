package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/pipeline"
	"github.com/matzehuels/bookrack/pkg/random"
)

// completionGenerators write the completion script of each supported shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionGenerators))
	for name := range completionGenerators {
		shells = append(shells, name)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bookrack. Scene flags such as --colormap
and --format complete to their allowed values.

  bash:        source <(bookrack completion bash)
  zsh:         bookrack completion zsh > "${fpath[1]}/_bookrack"
  fish:        bookrack completion fish | source
  powershell:  bookrack completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeColorMaps completes --colormap.
func completeColorMaps(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return random.ColorMapNames, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last element of a comma-separated --format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	out := make([]string, 0, len(pipeline.ValidFormats))
	for format := range pipeline.ValidFormats {
		out = append(out, prefix+format)
	}
	slices.Sort(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Every subcommand finds the CLI logger in its context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bookrack draws procedural bookshelves",
		Long: `Bookrack generates a 2-D illustration of a bookshelf: randomly sized books
with optional edge stripes, an obi band and a lighting gradient, packed left to
right and rendered to SVG, PNG, PDF or JSON.`,
		Version:       buildinfo.Read().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

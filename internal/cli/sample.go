package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/pipeline"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// sampleCommand renders the single reference book. It is a quick way to
// check colours, edges and lighting without the randomness of a full rack.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		formatsStr string
		flat       bool
	)
	opts := renderOpts{
		scale:  pipeline.DefaultScale,
		margin: pipeline.DefaultMargin,
		cache:  cacheFlags{noCache: true},
	}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Render the reference book",
		Long: `Render the reference book: 30 x 4.8 units, light gray, with teal edge
stripes (ratio 0.15) and a green obi band (ratio 0.22). It is lit with level 0.5
and ratio 0.3 unless --flat is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			cfg := scene.Default()
			cfg.Flat = flat
			if err := c.runRender(cmd.Context(), pipeline.Options{Scene: &cfg, Sample: true}, "book", opts); err != nil {
				return err
			}
			if opts.output != "-" {
				printNextStep("Render a full rack", appName+" render")
			}
			return nil
		},
	}

	addRenderFlags(cmd, &opts, &formatsStr)
	cmd.Flags().BoolVar(&flat, "flat", false, "draw without lighting gradients")

	return cmd
}

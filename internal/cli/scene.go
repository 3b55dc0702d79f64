package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/io"
	"github.com/matzehuels/bookrack/pkg/random"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// sceneFlags override values of a scene file from the command line.
// Only flags the user actually set are applied.
type sceneFlags struct {
	seed       uint64
	books      int
	colormap   string
	background string
	flat       bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed")
	cmd.Flags().IntVarP(&f.books, "books", "n", 0, "number of books")
	cmd.Flags().StringVar(&f.colormap, "colormap", "", "colour map: "+strings.Join(random.ColorMapNames, ", "))
	cmd.Flags().StringVar(&f.background, "background", "", "background colour (#rrggbb)")
	cmd.Flags().BoolVar(&f.flat, "flat", false, "draw books without lighting gradients")
	_ = cmd.RegisterFlagCompletionFunc("colormap", completeColorMaps)
}

// apply copies the flags the user set onto cfg.
func (f *sceneFlags) apply(cmd *cobra.Command, cfg *scene.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("books") {
		cfg.Books = f.books
	}
	if flags.Changed("colormap") {
		cfg.ColorMap = f.colormap
	}
	if flags.Changed("background") {
		cfg.Background = f.background
	}
	if flags.Changed("flat") {
		cfg.Flat = f.flat
	}
}

// load reads the scene file at path, or returns the default scene
// when path is empty, then applies the flag overrides and validates.
func (f *sceneFlags) load(cmd *cobra.Command, path string) (scene.Config, error) {
	cfg := scene.Default()
	if path != "" {
		var err error
		if cfg, err = io.ImportScene(path); err != nil {
			return scene.Config{}, err
		}
	}
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}

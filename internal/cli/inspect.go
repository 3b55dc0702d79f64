package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/io"
	"github.com/matzehuels/bookrack/pkg/item"
	"github.com/matzehuels/bookrack/pkg/pipeline"
	"github.com/matzehuels/bookrack/pkg/random"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// swatchesPerRow is the number of palette swatches printed per line.
const swatchesPerRow = 8

// inspectCommand lists the books a scene draws without rendering it.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		scn     sceneFlags
		palette int
		dump    string
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene.toml]",
		Short: "List the books of a scene",
		Long: `List the books of a scene: size, colours, edge and obi ratios, and lighting.

With --palette N, print N swatches drawn from the scene's colour map instead.
With --dump FORMAT, print the effective scene configuration (toml, yaml or json).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := scn.load(cmd, input)
			if err != nil {
				return err
			}

			switch {
			case dump != "":
				format, err := io.ParseFormat(dump)
				if err != nil {
					return err
				}
				return io.WriteScene(cfg, cmd.OutOrStdout(), format)
			case palette > 0:
				colors, err := paletteColors(cfg, palette)
				if err != nil {
					return err
				}
				printPalette(colors)
				return nil
			}
			return c.runInspect(cmd.Context(), cfg)
		},
	}

	scn.register(cmd)
	cmd.Flags().IntVar(&palette, "palette", 0, "print N colour swatches instead of the book table")
	cmd.Flags().StringVar(&dump, "dump", "", "print the effective scene as toml, yaml or json")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, cfg scene.Config) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	sc, err := runner.Compose(ctx, pipeline.Options{Scene: &cfg, Logger: logger})
	if err != nil {
		return err
	}
	prog.done("Composed " + plural(len(sc.Specs), "book"))

	writeLine(StyleTitle.Render(fmt.Sprintf("Scene %d", cfg.Seed)))
	printKeyValue("Books", strconv.Itoa(len(sc.Specs)))
	printKeyValue("Colour map", cfg.ColorMap)
	printKeyValue("Background", sc.Background.Hex())
	width := 0.0
	for _, s := range sc.Specs {
		width += s.Width
	}
	printKeyValue("Rack width", strconv.FormatFloat(width, 'f', 2, 64))
	printNewline()

	if len(sc.Specs) == 0 {
		printInfo("No books")
		return nil
	}
	writeLine(bookTable(sc.Specs).Render())
	return nil
}

// bookTable renders specs as a table with colour cells tinted by their colour.
func bookTable(specs []item.BookSpec) *table.Table {
	rows := bookRows(specs)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Height", "Width", "Base", "Edge", "Obi", "Shadow").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(specs) {
				return base
			}
			if hex := cellColor(specs[row], col); hex != "" {
				return base.Foreground(lipgloss.Color(hex))
			}
			if col == 0 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorPaper)
		})
}

// bookRows formats one row per spec. Absent parts show as "-".
func bookRows(specs []item.BookSpec) [][]string {
	rows := make([][]string, len(specs))
	for i, s := range specs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			formatFloat(s.Height),
			formatFloat(s.Width),
			s.BaseColor.Hex(),
			partCell(s.EdgeRatio, s.EdgeColor),
			partCell(s.ObiRatio, s.ObiColor),
			shadowCell(s.ShadowLevel, s.ShadowRatio),
		}
	}
	return rows
}

func cellColor(s item.BookSpec, col int) string {
	switch col {
	case 3:
		return s.BaseColor.WithoutAlpha().Hex()
	case 4:
		if s.EdgeColor != nil {
			return s.EdgeColor.WithoutAlpha().Hex()
		}
	case 5:
		if s.ObiColor != nil {
			return s.ObiColor.WithoutAlpha().Hex()
		}
	}
	return ""
}

func partCell(ratio *float64, c *color.Color) string {
	if ratio == nil || c == nil {
		return "-"
	}
	return formatFloat(*ratio) + " " + c.Hex()
}

func shadowCell(level, ratio *float64) string {
	if level == nil || ratio == nil {
		return "-"
	}
	return formatFloat(*level) + " / " + formatFloat(*ratio)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// paletteColors draws n colours the way a scene draws book colours: uniform
// channels through the scene's colour map, seeded by the scene seed.
func paletteColors(cfg scene.Config, n int) ([]color.Color, error) {
	cmap, err := random.ColorMapByName(cfg.ColorMap)
	if err != nil {
		return nil, err
	}
	unit, err := random.Uniform(random.NewSource(cfg.Seed), 0, 1)
	if err != nil {
		return nil, err
	}
	return random.NewColorGenerator(unit, cmap).Generate(n), nil
}

func printPalette(colors []color.Color) {
	var line strings.Builder
	for i, c := range colors {
		hex := c.Hex()
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		line.WriteString(swatch + " " + StyleDim.Render(hex) + "  ")
		if (i+1)%swatchesPerRow == 0 || i == len(colors)-1 {
			writeLine(strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
}

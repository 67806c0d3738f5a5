package cli

import (
	"github.com/spf13/cobra"

	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/sim"
	"github.com/ekalosak/graph3d/pkg/viz"
)

// diffusionCommand creates the animated color-diffusion demo command.
func (c *CLI) diffusionCommand() *cobra.Command {
	var (
		vf       viewFlags
		lf       layoutFlags
		period   float32
		simSeed  uint64
		noLabels bool
	)

	cmd := &cobra.Command{
		Use:   "diffusion [graph.json|graph.yaml]",
		Short: "Animated color diffusion over a graph",
		Long: `Animated color diffusion over a graph.

Every node starts with a random color; each tick, every edge moves its
endpoint colors toward each other and recolors itself with their mean.
Labels show the color sums converging. When the field flattens out the
board reseeds. Without a file the Frucht graph is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			g, err := loadGraph(path)
			if err != nil {
				return err
			}

			d := sim.NewDiffusion(simSeed)
			d.Labels = !noLabels
			d.Init(g)

			provider, err := c.provider(cmd.Context(), lf)
			if err != nil {
				return err
			}
			opts := vf.options(c.Logger)
			opts.Layout = provider
			opts.StateFunc = d.Step
			opts.StatePeriod = period
			return c.view(g, opts)
		},
	}

	addViewFlags(cmd, &vf)
	addLayoutFlags(cmd, &lf)
	cmd.Flags().Float32Var(&period, "period", viz.DefaultStatePeriod, "seconds between diffusion steps")
	cmd.Flags().Uint64Var(&simSeed, "sim-seed", 1, "seed for the random colors")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "hide the color-sum labels")

	return cmd
}

// lifeCommand creates the Game of Life demo command.
func (c *CLI) lifeCommand() *cobra.Command {
	var (
		vf      viewFlags
		rows    int
		cols    int
		live    int
		period  float32
		simSeed uint64
	)

	cmd := &cobra.Command{
		Use:   "life",
		Short: "Conway's Game of Life on a 3D grid",
		Long: `Conway's Game of Life on a 3D grid.

The board is a grid graph with diagonal adjacency, so interior cells have
the classic eight neighbors. Cells are laid out on the lattice their keys
describe. When the board reaches a fixed point it reseeds with a quarter
of the cells alive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := graph.MooreGrid(rows, cols)
			l := sim.NewLife(simSeed)
			l.Reset(g, live)

			opts := vf.options(c.Logger)
			opts.Layout = layout.Lattice{}
			opts.StateFunc = l.Step
			opts.StatePeriod = period
			return c.view(g, opts)
		},
	}

	addViewFlags(cmd, &vf)
	cmd.Flags().IntVar(&rows, "rows", 12, "board rows")
	cmd.Flags().IntVar(&cols, "cols", 12, "board columns")
	cmd.Flags().IntVar(&live, "live", -1, "initial live cells (-1 picks log(n)+1)")
	cmd.Flags().Float32Var(&period, "period", viz.DefaultStatePeriod, "seconds between generations")
	cmd.Flags().Uint64Var(&simSeed, "sim-seed", 1, "seed for the initial board")

	return cmd
}

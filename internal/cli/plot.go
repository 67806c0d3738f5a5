package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/graphio"
)

// plotCommand creates the plot command, the basic file-to-viewer path.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		vf     viewFlags
		lf     layoutFlags
		export string
	)

	cmd := &cobra.Command{
		Use:   "plot [graph.json|graph.yaml]",
		Short: "Render a graph file in the 3D viewer",
		Long: `Render a graph file in the 3D viewer.

The file holds the graph kind, nodes, and edges, in JSON or YAML (see the
graphio package for the format). Nodes without positions are laid out by the
selected provider; computed layouts are cached so replotting the same file
is instant. Without a file the Frucht graph demo is plotted.

Camera: wasd orbits, io zooms, or pass --mouse for drag controls.`,
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

			if export != "" {
				if err := exportGraph(g, export); err != nil {
					return err
				}
				printFile(export)
			}

			provider, err := c.provider(cmd.Context(), lf)
			if err != nil {
				return err
			}
			opts := vf.options(loggerFromContext(cmd.Context()))
			opts.Layout = provider
			return c.view(g, opts)
		},
	}

	addViewFlags(cmd, &vf)
	addLayoutFlags(cmd, &lf)
	cmd.Flags().StringVarP(&export, "export", "o", "", "also write the graph to this file (.json, .yaml)")

	return cmd
}

// exportGraph writes a graph to a file, picking the codec from the
// extension.
func exportGraph(g *graph.Graph, path string) error {
	switch filepath.Ext(path) {
	case ".json":
		return graphio.ExportJSON(g, path)
	case ".yaml", ".yml":
		return graphio.ExportYAML(g, path)
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown export format %q (want .json, .yaml, or .yml)", path)
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/store"
)

// sceneStoreFlags locate the scene store. Empty fields use the store
// package defaults (local mongod, database graph3d, collection scenes).
type sceneStoreFlags struct {
	uri        string
	db         string
	collection string
}

// scenesCommand creates the scene persistence command.
func (c *CLI) scenesCommand() *cobra.Command {
	var sf sceneStoreFlags

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Save, load, and inspect named scenes",
		Long: `Save, load, and inspect named scenes.

A scene is a graph together with its computed layout and the visual
attributes it had when saved, stored as a document in MongoDB. Saving
under an existing name replaces that scene.`,
	}

	cmd.PersistentFlags().StringVar(&sf.uri, "mongo", "", "mongodb connection URI (default mongodb://localhost:27017)")
	cmd.PersistentFlags().StringVar(&sf.db, "db", "", `database name (default "graph3d")`)
	cmd.PersistentFlags().StringVar(&sf.collection, "collection", "", `collection name (default "scenes")`)

	cmd.AddCommand(c.scenesSaveCommand(&sf))
	cmd.AddCommand(c.scenesLoadCommand(&sf))
	cmd.AddCommand(c.scenesListCommand(&sf))
	cmd.AddCommand(c.scenesDeleteCommand(&sf))

	return cmd
}

func (c *CLI) openStore(ctx context.Context, sf *sceneStoreFlags) (store.Store, error) {
	return store.NewMongoStore(ctx, store.MongoOptions{
		URI:        sf.uri,
		Database:   sf.db,
		Collection: sf.collection,
	})
}

// scenesSaveCommand creates the "scenes save" subcommand.
func (c *CLI) scenesSaveCommand(sf *sceneStoreFlags) *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "save <name> [graph.json|graph.yaml]",
		Short: "Lay out a graph and save it as a named scene",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			g, err := loadGraph(path)
			if err != nil {
				return err
			}

			provider, err := c.provider(ctx, lf)
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			pos, err := layout.Resolve(g, provider)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Computed layout for %d nodes", g.NodeCount()))

			st, err := c.openStore(ctx, sf)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			spinner := newSpinnerWithContext(ctx, "Saving scene...")
			spinner.Start()
			err = st.Save(ctx, store.FromGraph(name, g, pos))
			if err != nil {
				spinner.StopWithError("Save failed")
				return err
			}
			spinner.Stop()

			printSuccess("Saved scene %q", name)
			printStats(g.NodeCount(), g.EdgeCount(), false)
			printNextStep("View it", fmt.Sprintf("%s scenes load %s", appName, name))
			return nil
		},
	}

	addLayoutFlags(cmd, &lf)
	return cmd
}

// scenesLoadCommand creates the "scenes load" subcommand.
func (c *CLI) scenesLoadCommand(sf *sceneStoreFlags) *cobra.Command {
	var (
		vf     viewFlags
		export string
	)

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Open a saved scene in the viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, sf)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			doc, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			g, _, err := doc.Graph()
			if err != nil {
				return err
			}

			if export != "" {
				if err := exportGraph(g, export); err != nil {
					return err
				}
				printFile(export)
				return nil
			}

			opts := vf.options(c.Logger)
			// Saved scenes carry their positions; no layout run.
			opts.Layout = layout.Passthrough{}
			return c.view(g, opts)
		},
	}

	addViewFlags(cmd, &vf)
	cmd.Flags().StringVarP(&export, "export", "o", "", "write the scene's graph to a file instead of viewing")
	return cmd
}

// scenesListCommand creates the "scenes list" subcommand.
func (c *CLI) scenesListCommand(sf *sceneStoreFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, sf)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			infos, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No saved scenes")
				return nil
			}
			for _, info := range infos {
				printKeyValue(info.Name, fmt.Sprintf("%s · %d nodes · %d edges · %s",
					info.Kind, info.NodeCount, info.EdgeCount,
					info.UpdatedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// scenesDeleteCommand creates the "scenes delete" subcommand.
func (c *CLI) scenesDeleteCommand(sf *sceneStoreFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, sf)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted scene %q", args[0])
			return nil
		},
	}
}

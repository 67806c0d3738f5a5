// Package cli implements the graph3d command-line interface.
//
// This package provides commands for plotting graph files as interactive 3D
// scenes, running the bundled simulations (diffusion, Game of Life),
// managing the layout cache, and saving/loading named scenes. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
//   - plot: Render a graph file (or the demo graph) in the 3D viewer
//   - diffusion: Animated color diffusion demo
//   - life: Conway's Game of Life on a grid with diagonal adjacency
//   - cache: Manage the layout cache
//   - scenes: Save, load, list, and delete named scenes
//
// Running graph3d with no subcommand opens an interactive demo picker.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ekalosak/graph3d/internal/softrender"
	"github.com/ekalosak/graph3d/pkg/buildinfo"
	"github.com/ekalosak/graph3d/pkg/cache"
	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/graphio"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/viz"
)

// appName is the application name used for directories and display.
const appName = "graph3d"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// newEngine builds the render backend; tests swap in a fake.
	newEngine func(title string) engine.Engine
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		newEngine: func(title string) engine.Engine {
			return softrender.New(softrender.Options{Title: title})
		},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. With no subcommand it opens the interactive demo picker.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graph3d renders mathematical graphs as interactive 3D scenes",
		Long:         `graph3d is a 3D renderer for mathematical graphs: nodes and edges are laid out in space, drawn as lit primitives, and optionally animated by a state-transition function. Point it at a graph file or run one of the bundled demos.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPicker(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.plotCommand())
	root.AddCommand(c.diffusionCommand())
	root.AddCommand(c.lifeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.scenesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// viewFlags are the viewer options shared by plot and the demo commands.
type viewFlags struct {
	autolabel bool
	mouse     bool
	axes      bool
	noOverlay bool
	settings  string
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().BoolVar(&f.autolabel, "autolabel", false, "label every node and edge with its key")
	cmd.Flags().BoolVar(&f.mouse, "mouse", false, "use the engine's mouse orbit controls instead of wasd")
	cmd.Flags().BoolVar(&f.axes, "axes", false, "draw the coordinate axes at the origin")
	cmd.Flags().BoolVar(&f.noOverlay, "no-overlay", false, "hide the on-screen help and diagnostics")
	cmd.Flags().StringVar(&f.settings, "settings", "", "TOML settings file, watched for changes while running")
}

// options projects the flags onto viewer options.
func (f viewFlags) options(logger *log.Logger) viz.Options {
	return viz.Options{
		AutoLabel:    f.autolabel,
		Mouse:        f.mouse,
		Axes:         f.axes,
		NoOverlay:    f.noOverlay,
		SettingsPath: f.settings,
		Logger:       logger,
	}
}

// view opens the renderer window for the graph and blocks until it closes.
func (c *CLI) view(g *graph.Graph, opts viz.Options) error {
	app, err := viz.New(c.newEngine(appName), g, opts)
	if err != nil {
		return err
	}
	printInfo("Opening viewer")
	printStats(g.NodeCount(), g.EdgeCount(), false)
	return app.Run()
}

// loadGraph reads a graph file, or returns the demo graph when path is
// empty.
func loadGraph(path string) (*graph.Graph, error) {
	if path == "" {
		return graph.Frucht(), nil
	}
	return graphio.ImportFile(path)
}

// layoutFlags select and parameterize the layout provider.
type layoutFlags struct {
	provider   string
	seed       uint64
	iterations int
	noCache    bool
	redisAddr  string
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().StringVar(&f.provider, "layout", "spring", "layout provider: spring, lattice, neato")
	cmd.Flags().Uint64Var(&f.seed, "seed", layout.DefaultSpringSeed, "spring layout seed")
	cmd.Flags().IntVar(&f.iterations, "iterations", layout.DefaultSpringIterations, "spring layout iterations")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().StringVar(&f.redisAddr, "redis", "", "redis address for the layout cache (default: file cache)")
}

// provider builds the layout provider the flags describe, wrapped in the
// layout cache unless caching is disabled.
func (c *CLI) provider(ctx context.Context, f layoutFlags) (layout.Provider, error) {
	var p layout.Provider
	switch f.provider {
	case "spring":
		p = layout.NewSpring(layout.SpringOptions{Seed: f.seed, Iterations: f.iterations})
	case "lattice":
		p = layout.Lattice{}
	case "neato":
		p = layout.Graphviz{}
	default:
		return nil, errors.New(errors.ErrCodeInvalidOption,
			"unknown layout provider %q (want spring, lattice, or neato)", f.provider)
	}

	store, err := c.newCache(ctx, f)
	if err != nil {
		c.Logger.Warn("layout cache unavailable, computing fresh", "err", err)
		return p, nil
	}
	return &cache.CachedProvider{
		Provider: p,
		Cache:    store,
		Keyer:    keyerFor(f),
		KeyOpts: cache.LayoutKeyOpts{
			Provider:   f.provider,
			Iterations: f.iterations,
			Seed:       f.seed,
		},
	}, nil
}

// keyerFor picks the cache key scheme. A shared Redis gets keys scoped
// under the application name so graph3d never collides with other tenants;
// the file cache lives in its own directory and needs no scope.
func keyerFor(f layoutFlags) cache.Keyer {
	if f.redisAddr != "" {
		return cache.NewScopedKeyer(nil, appName+":")
	}
	return cache.NewDefaultKeyer()
}

func (c *CLI) newCache(ctx context.Context, f layoutFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: f.redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/graph3d/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

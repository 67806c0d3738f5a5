package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ekalosak/graph3d/pkg/cache"
	"github.com/ekalosak/graph3d/pkg/engine"
	"github.com/ekalosak/graph3d/pkg/engine/enginetest"
	"github.com/ekalosak/graph3d/pkg/errors"
	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/graphio"
)

func testCLI(t *testing.T) (*CLI, *enginetest.Fake) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	fake := enginetest.New()
	c := New(io.Discard, LogInfo)
	c.newEngine = func(string) engine.Engine { return fake }
	return c, fake
}

func TestRootCommandWiring(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()

	want := map[string]bool{
		"plot": false, "diffusion": false, "life": false,
		"cache": false, "scenes": false, "completion": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPlotCommandBuildsScene(t *testing.T) {
	c, fake := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"plot", "--no-cache", "--no-overlay"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("plot = %v", err)
	}

	g := graph.Frucht()
	if fake.HandleCount() != g.NodeCount()+g.EdgeCount() {
		t.Errorf("handles = %d, want %d for the demo graph", fake.HandleCount(), g.NodeCount()+g.EdgeCount())
	}
}

func TestLifeCommandBuildsBoard(t *testing.T) {
	c, fake := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"life", "--rows", "4", "--cols", "4"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("life = %v", err)
	}

	g := graph.MooreGrid(4, 4)
	if fake.HandleCount() != g.NodeCount()+g.EdgeCount() {
		t.Errorf("handles = %d, want %d for a 4x4 board", fake.HandleCount(), g.NodeCount()+g.EdgeCount())
	}
}

func TestDiffusionCommandAnimates(t *testing.T) {
	c, fake := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"diffusion", "--no-cache", "--period", "0.5"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("diffusion = %v", err)
	}

	// The fake records the frame callback; drive a step past the period and
	// check the sim's labels reached the scene.
	if err := fake.Step(1, 0.6); err != nil {
		t.Fatalf("Step = %v", err)
	}
	labeled := false
	for _, l := range fake.Labels {
		if l.Text != "" {
			labeled = true
		}
	}
	if !labeled {
		t.Error("no label text after a diffusion step")
	}
}

func TestProviderSelection(t *testing.T) {
	c, _ := testCLI(t)
	ctx := context.Background()

	for _, name := range []string{"spring", "lattice", "neato"} {
		p, err := c.provider(ctx, layoutFlags{provider: name, noCache: true})
		if err != nil {
			t.Fatalf("provider(%s) = %v", name, err)
		}
		if _, ok := p.(*cache.CachedProvider); !ok {
			t.Errorf("provider(%s) = %T, want cache-wrapped", name, p)
		}
	}

	if _, err := c.provider(ctx, layoutFlags{provider: "circular"}); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("provider(circular) = %v, want INVALID_OPTION", err)
	}
}

func TestProviderUsesFileCacheByDefault(t *testing.T) {
	c, _ := testCLI(t)
	p, err := c.provider(context.Background(), layoutFlags{provider: "spring"})
	if err != nil {
		t.Fatalf("provider = %v", err)
	}
	cp := p.(*cache.CachedProvider)
	if _, ok := cp.Cache.(*cache.NullCache); ok {
		t.Error("default cache is the null cache")
	}
}

func TestKeyerScopesRedis(t *testing.T) {
	// A shared Redis gets application-scoped keys; the file cache does not.
	scoped := keyerFor(layoutFlags{redisAddr: "localhost:6379"})
	key := scoped.LayoutKey("h", cache.LayoutKeyOpts{Provider: "spring"})
	if !strings.HasPrefix(key, "graph3d:") {
		t.Errorf("redis key = %q, want graph3d: prefix", key)
	}

	plain := keyerFor(layoutFlags{})
	if strings.HasPrefix(plain.LayoutKey("h", cache.LayoutKeyOpts{}), "graph3d:") {
		t.Error("file-cache keys should not be scoped")
	}
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "graph3d") {
		t.Errorf("cacheDir = %q", got)
	}
}

func TestExportGraph(t *testing.T) {
	g := graph.Frucht()
	path := filepath.Join(t.TempDir(), "out.json")
	if err := exportGraph(g, path); err != nil {
		t.Fatalf("exportGraph = %v", err)
	}
	back, err := graphio.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile = %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip lost elements: %d/%d nodes, %d/%d edges",
			back.NodeCount(), g.NodeCount(), back.EdgeCount(), g.EdgeCount())
	}

	if err := exportGraph(g, "out.toml"); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("exportGraph(.toml) = %v, want INVALID_OPTION", err)
	}
}

func TestViewFlagsOptions(t *testing.T) {
	f := viewFlags{autolabel: true, mouse: true, axes: true, settings: "s.toml"}
	opts := f.options(nil)
	if !opts.AutoLabel || !opts.Mouse || !opts.Axes || opts.SettingsPath != "s.toml" {
		t.Errorf("options = %+v", opts)
	}
}

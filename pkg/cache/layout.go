package cache

import (
	"context"
	"encoding/json"
	"time"

	"cogentcore.org/core/math32"

	"github.com/ekalosak/graph3d/pkg/graph"
	"github.com/ekalosak/graph3d/pkg/layout"
	"github.com/ekalosak/graph3d/pkg/observability"
)

// CachedProvider wraps a layout provider with a cache. Hits skip the
// computation entirely; misses compute and store. Cache failures are never
// fatal: the provider falls back to computing.
type CachedProvider struct {
	// Provider computes layouts on a miss.
	Provider layout.Provider
	// Cache is the backing store.
	Cache Cache
	// Keyer generates keys. Nil means the default scheme.
	Keyer Keyer
	// KeyOpts distinguishes this provider's results from other option sets.
	KeyOpts LayoutKeyOpts
	// TTL bounds entry lifetime. Zero means no expiration.
	TTL time.Duration
}

// Layout implements [layout.Provider].
func (p *CachedProvider) Layout(g *graph.Graph) (layout.Positions, error) {
	keyer := p.Keyer
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	key := keyer.LayoutKey(GraphHash(g), p.KeyOpts)
	ctx := context.Background()

	if data, hit, err := p.Cache.Get(ctx, key); err == nil && hit {
		pos, err := decodePositions(data)
		if err == nil {
			observability.Cache().OnCacheHit("layout")
			return pos, nil
		}
		// Corrupt entry: drop it and recompute.
		_ = p.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss("layout")

	pos, err := p.Provider.Layout(g)
	if err != nil {
		return nil, err
	}
	if data, err := encodePositions(pos); err == nil {
		if err := p.Cache.Set(ctx, key, data, p.TTL); err == nil {
			observability.Cache().OnCacheSet("layout", len(data))
		}
	}
	return pos, nil
}

func encodePositions(pos layout.Positions) ([]byte, error) {
	out := make(map[string][3]float32, len(pos))
	for id, p := range pos {
		out[id] = [3]float32{p.X, p.Y, p.Z}
	}
	return json.Marshal(out)
}

func decodePositions(data []byte) (layout.Positions, error) {
	var raw map[string][3]float32
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	pos := make(layout.Positions, len(raw))
	for id, p := range raw {
		pos[id] = math32.Vec3(p[0], p[1], p[2])
	}
	return pos, nil
}

// Ensure CachedProvider implements layout.Provider.
var _ layout.Provider = (*CachedProvider)(nil)

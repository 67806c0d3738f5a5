package viz

import (
	"path/filepath"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/ekalosak/graph3d/pkg/errors"
)

// Settings is the TOML settings file. Zero fields mean "keep the default";
// the file can therefore override any subset.
//
//	state_period = 0.25
//	autolabel = true
//
//	[camera]
//	theta_speed = 120.0
//
//	[colors]
//	node = [0.4, 0.0, 0.3, 1.0]
type Settings struct {
	StatePeriod float32 `toml:"state_period"`
	NodeSize    float32 `toml:"node_size"`
	AutoLabel   bool    `toml:"autolabel"`
	Axes        bool    `toml:"axes"`
	Mouse       bool    `toml:"mouse"`

	Camera struct {
		ThetaSpeed float32 `toml:"theta_speed"`
		PhiSpeed   float32 `toml:"phi_speed"`
		ZoomSpeed  float32 `toml:"zoom_speed"`
	} `toml:"camera"`

	Colors struct {
		Node      []float32 `toml:"node"`
		Edge      []float32 `toml:"edge"`
		NodeLabel []float32 `toml:"node_label"`
		EdgeLabel []float32 `toml:"edge_label"`
	} `toml:"colors"`
}

// LoadSettings parses a TOML settings file.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "settings file %s", path)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	for name, c := range map[string][]float32{
		"colors.node":       s.Colors.Node,
		"colors.edge":       s.Colors.Edge,
		"colors.node_label": s.Colors.NodeLabel,
		"colors.edge_label": s.Colors.EdgeLabel,
	} {
		if c != nil && len(c) != 4 {
			return errors.New(errors.ErrCodeInvalidColor, "%s has %d channels, want 4", name, len(c))
		}
	}
	if s.StatePeriod < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "state_period must be non-negative")
	}
	return nil
}

func (s Settings) nodeColor() *math32.Vector4 { return colorPtr(s.Colors.Node) }
func (s Settings) edgeColor() *math32.Vector4 { return colorPtr(s.Colors.Edge) }

func colorPtr(c []float32) *math32.Vector4 {
	if len(c) != 4 {
		return nil
	}
	v := math32.Vec4(c[0], c[1], c[2], c[3])
	return &v
}

// apply overlays the settings onto startup options.
func (s Settings) apply(o *Options) {
	if s.StatePeriod > 0 {
		o.StatePeriod = s.StatePeriod
	}
	if s.NodeSize > 0 {
		o.NodeSize = s.NodeSize
	}
	if s.AutoLabel {
		o.AutoLabel = true
	}
	if s.Axes {
		o.Axes = true
	}
	if s.Mouse {
		o.Mouse = true
	}
	if c := colorPtr(s.Colors.Node); c != nil {
		o.NodeColor = c
	}
	if c := colorPtr(s.Colors.Edge); c != nil {
		o.EdgeColor = c
	}
	if c := colorPtr(s.Colors.NodeLabel); c != nil {
		o.NodeLabelColor = c
	}
	if c := colorPtr(s.Colors.EdgeLabel); c != nil {
		o.EdgeLabelColor = c
	}
}

// settingsWatcher reloads the settings file on change. The fsnotify events
// arrive on a background goroutine; the frame loop polls pending so all
// scene mutation stays on the loop's goroutine.
type settingsWatcher struct {
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	next   *Settings
	closed bool
}

func watchSettings(path string, logger *log.Logger) (*settingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	sw := &settingsWatcher{watcher: w}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				s, err := LoadSettings(path)
				if err != nil {
					logger.Warn("ignoring invalid settings file", "err", err)
					continue
				}
				sw.mu.Lock()
				sw.next = &s
				sw.mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher", "err", err)
			}
		}
	}()
	return sw, nil
}

// pending returns the most recent unconsumed reload.
func (w *settingsWatcher) pending() (Settings, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.next == nil {
		return Settings{}, false
	}
	s := *w.next
	w.next = nil
	return s, true
}

func (w *settingsWatcher) stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()
	_ = w.watcher.Close()
}

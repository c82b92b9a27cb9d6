package system

import (
	"path/filepath"
	"strings"

	"github.com/milk9111/hollowkeep/assets"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/obj"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures a World. Zero values pick defaults.
type Options struct {
	Seed     uint64
	Logger   *zap.Logger
	Controls obj.Controls
	Assets   *assets.Registry
}

// World owns level loading, restarts and prefab hot reload. It is not safe
// for concurrent use; hosts call it from the goroutine that ticks.
type World struct {
	Level   *obj.Level
	Catalog *prefabs.Catalog

	name string
	opts Options
	log  *zap.Logger
}

// NewWorld creates a new world and loads the requested level.
func NewWorld(name string, opts Options) (*World, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Assets == nil {
		opts.Assets = assets.NewRegistry()
	}
	if opts.Controls == nil {
		opts.Controls = &obj.CommandState{}
	}
	c, err := prefabs.LoadCatalog()
	if err != nil {
		return nil, err
	}
	w := &World{Catalog: c, opts: opts, log: opts.Logger}
	if err := w.Load(name); err != nil {
		return nil, err
	}
	return w, nil
}

// Load replaces the current level with a fresh copy of name.
func (w *World) Load(name string) error {
	if name == "" {
		return errors.New("system: level name is empty")
	}
	data, err := levels.Load(name)
	if err != nil {
		return errors.Wrapf(err, "system: load level %s", name)
	}
	lvl, err := obj.NewLevel(data, obj.Options{
		Catalog:  w.Catalog,
		Assets:   w.opts.Assets,
		Logger:   w.log,
		Seed:     w.opts.Seed,
		Controls: w.opts.Controls,
	})
	if err != nil {
		return err
	}
	if s, ok := w.opts.Controls.(*obj.CommandState); ok {
		s.Release()
	}
	w.Level = lvl
	w.name = name
	return nil
}

// Restart reloads the current level from its map data.
func (w *World) Restart() error {
	w.log.Info("restarting level", zap.String("level", w.name))
	return w.Load(w.name)
}

func (w *World) Name() string { return w.name }

func (w *World) Controls() obj.Controls { return w.opts.Controls }

func (w *World) Assets() *assets.Registry { return w.opts.Assets }

// ReloadCatalog reacts to changed prefab files. Species changes apply to
// entities spawned afterwards; script changes restart the level since
// triggers compile at load. On error the previous catalog stays in place.
func (w *World) ReloadCatalog(changed []string) error {
	if len(changed) == 0 {
		return nil
	}
	var specs, scripts bool
	for _, name := range changed {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			specs = true
		case ".tengo":
			scripts = true
		}
	}

	if specs {
		c, err := prefabs.LoadCatalog()
		if err != nil {
			return errors.Wrap(err, "system: reload prefabs")
		}
		w.Catalog = c
		w.Level.SetCatalog(c)
		w.log.Info("species reloaded", zap.Strings("files", changed))
	}
	if scripts {
		return w.Restart()
	}
	return nil
}

package obj

import (
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hollowkeep/common"
	"github.com/milk9111/hollowkeep/levels"
	"github.com/milk9111/hollowkeep/prefabs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// scriptDispatch runs the condition function every script must define.
const scriptDispatch = "\n__result := check(__world)\n"

// trigger fires its actions when its condition becomes true. Repeating
// triggers fire again each time the condition goes from false to true.
type trigger struct {
	id      string
	cond    func(l *Level) bool
	actions []func(l *Level)
	repeat  bool
	fired   bool
	last    bool
}

func (l *Level) tickTriggers() {
	for _, t := range l.triggers {
		if t.fired && !t.repeat {
			continue
		}
		ok := t.cond(l)
		if ok && !t.last {
			t.fired = true
			l.log.Info("trigger fired", zap.String("trigger", t.id), zap.Int("tick", l.ticks))
			for _, a := range t.actions {
				a(l)
			}
		}
		t.last = ok
	}
}

func (l *Level) compileTrigger(td levels.Trigger) (*trigger, error) {
	t := &trigger{id: td.ID, repeat: td.Repeat}

	c := td.Condition
	switch c.Type {
	case "enter_area":
		if c.Area == nil {
			return nil, errors.New("enter_area needs an area")
		}
		area := common.TileRect(c.Area.X, c.Area.Y, c.Area.W, c.Area.H)
		t.cond = func(l *Level) bool {
			p := l.player
			return p != nil && p.Alive() && p.Box().Intersects(area)
		}
	case "no_mobs_with_tag":
		if c.Tag == "" {
			return nil, errors.New("no_mobs_with_tag needs a tag")
		}
		tag := c.Tag
		t.cond = func(l *Level) bool {
			for _, e := range l.EntitiesWithTag(tag) {
				if e.IsMob() && e.Kind != KindPlayer {
					return false
				}
			}
			return true
		}
	case "script":
		cond, err := l.compileScript(td.ID, c)
		if err != nil {
			return nil, err
		}
		t.cond = cond
	default:
		return nil, errors.Errorf("unknown condition %q", c.Type)
	}

	for i, ad := range td.Actions {
		a, err := compileAction(ad)
		if err != nil {
			return nil, errors.Wrapf(err, "action %d", i)
		}
		t.actions = append(t.actions, a)
	}
	return t, nil
}

func (l *Level) compileScript(id string, c levels.Condition) (func(*Level) bool, error) {
	src := c.Source
	if c.File != "" {
		b, err := prefabs.LoadScript(c.File)
		if err != nil {
			return nil, errors.Wrapf(err, "load script %s", c.File)
		}
		src = string(b)
	}
	if src == "" {
		return nil, errors.New("script condition without source")
	}

	script := tengo.NewScript([]byte(src + scriptDispatch))
	if err := script.Add("__world", map[string]any{}); err != nil {
		return nil, errors.Wrap(err, "script globals")
	}
	script.SetImports(stdlib.GetModuleMap("math"))
	compiled, err := script.Compile()
	if err != nil {
		return nil, errors.Wrap(err, "compile script")
	}

	return func(l *Level) bool {
		if err := compiled.Set("__world", l.scriptWorld()); err != nil {
			l.log.Warn("trigger script", zap.String("trigger", id), zap.Error(err))
			return false
		}
		if err := compiled.Run(); err != nil {
			l.log.Warn("trigger script", zap.String("trigger", id), zap.Error(err))
			return false
		}
		return compiled.Get("__result").Bool()
	}, nil
}

// scriptWorld is the read-only view of the level handed to trigger scripts.
func (l *Level) scriptWorld() *tengo.ImmutableMap {
	v := map[string]tengo.Object{
		"mobs":            &tengo.Int{Value: int64(l.Mobs())},
		"tick":            &tengo.Int{Value: int64(l.ticks)},
		"boundary_left":   &tengo.Float{Value: l.boundary.Left},
		"boundary_right":  &tengo.Float{Value: l.boundary.Right},
		"boundary_top":    &tengo.Float{Value: l.boundary.Top},
		"boundary_bottom": &tengo.Float{Value: l.boundary.Bottom},
		"player_x":        &tengo.Float{Value: 0},
		"player_y":        &tengo.Float{Value: 0},
		"player_health":   &tengo.Int{Value: 0},
		"player_grounded": tengo.FalseValue,
	}
	if p := l.player; p != nil && p.Alive() {
		v["player_x"] = &tengo.Float{Value: p.Pos.X}
		v["player_y"] = &tengo.Float{Value: p.Pos.Y}
		v["player_health"] = &tengo.Int{Value: int64(p.Health.Current)}
		if p.OnGround {
			v["player_grounded"] = tengo.TrueValue
		}
	}
	return &tengo.ImmutableMap{Value: v}
}

func compileAction(ad levels.Action) (func(*Level), error) {
	switch ad.Type {
	case "set_boundary":
		if ad.Area == nil {
			return nil, errors.New("set_boundary needs an area")
		}
		b := common.TileRect(ad.Area.X, ad.Area.Y, ad.Area.W, ad.Area.H)
		return func(l *Level) { l.SetBoundary(b) }, nil
	case "spawn":
		if ad.Entity == nil {
			return nil, errors.New("spawn needs an entity")
		}
		kind, ok := ParseKind(ad.Entity.Type)
		if !ok || kind == KindPlayer || kind == KindArrow {
			return nil, errors.Errorf("cannot spawn %q", ad.Entity.Type)
		}
		at := TileFeet(ad.Entity.X, ad.Entity.Y)
		props := ad.Entity.Props
		return func(l *Level) {
			if _, err := l.Spawn(kind, at, props); err != nil {
				l.log.Warn("trigger spawn", zap.Error(err))
			}
		}, nil
	case "cure_player":
		if ad.Amount <= 0 {
			return nil, errors.New("cure_player needs a positive amount")
		}
		amount := ad.Amount
		return func(l *Level) {
			if l.player != nil {
				l.player.Cure(amount)
			}
		}, nil
	}
	return nil, errors.Errorf("unknown action %q", ad.Type)
}

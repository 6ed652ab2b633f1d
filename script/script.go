// Package script runs an optional tengo demo driver against the lab:
// timed ball drops, gravity sweeps, whatever the script wants. The
// script defines a tick(lab, state, frame) function; state is a
// persistent map, lab exposes the engine functions below.
package script

import (
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Hooks is the surface the driver exposes to scripts. All hooks run on
// the game loop goroutine.
type Hooks struct {
	Drop       func(scene int)
	SetGravity func(scene int, g float64)
	BallCount  func(scene int) int
	SceneCount func() int
}

const dispatchScript = `
tick(__lab, __state, __frame)
`

// Driver owns one compiled script. A runtime error disables the driver
// permanently; the app keeps running without it.
type Driver struct {
	compiled *tengo.Compiled
	state    *tengo.Map
	frame    int64
	failed   bool
	lastErr  error
	start    time.Time
}

// New compiles the script source with the engine bound to hooks.
func New(src []byte, hooks Hooks) (*Driver, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+dispatchScript)...))
	_ = s.Add("__lab", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__frame", int64(0))
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}

	d := &Driver{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		start:    time.Now(),
	}
	if err := d.compiled.Set("__lab", buildEngine(hooks, d)); err != nil {
		return nil, fmt.Errorf("script: bind engine: %w", err)
	}
	return d, nil
}

// Failed reports whether a runtime error disabled the driver.
func (d *Driver) Failed() bool {
	return d != nil && d.failed
}

// Err returns the error that disabled the driver, if any.
func (d *Driver) Err() error {
	if d == nil {
		return nil
	}
	return d.lastErr
}

// Tick runs the script once for the current frame. After a failure it
// is a no-op.
func (d *Driver) Tick() error {
	if d == nil || d.compiled == nil || d.failed {
		return d.Err()
	}
	d.frame++
	if err := d.compiled.Set("__state", d.state); err != nil {
		d.fail(err)
		return d.lastErr
	}
	if err := d.compiled.Set("__frame", d.frame); err != nil {
		d.fail(err)
		return d.lastErr
	}
	if err := d.compiled.Run(); err != nil {
		d.fail(err)
		return d.lastErr
	}
	return nil
}

func (d *Driver) fail(err error) {
	d.failed = true
	d.lastErr = fmt.Errorf("script: frame %d: %w", d.frame, err)
}

func buildEngine(hooks Hooks, d *Driver) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["drop"] = &tengo.UserFunction{Name: "drop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hooks.Drop == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		idx, ok := objectAsInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		hooks.Drop(idx)
		return tengo.TrueValue, nil
	}}

	values["set_gravity"] = &tengo.UserFunction{Name: "set_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hooks.SetGravity == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		idx, ok := objectAsInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		g, ok := objectAsFloat(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		hooks.SetGravity(idx, g)
		return tengo.TrueValue, nil
	}}

	values["ball_count"] = &tengo.UserFunction{Name: "ball_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hooks.BallCount == nil || len(args) < 1 {
			return &tengo.Int{Value: 0}, nil
		}
		idx, ok := objectAsInt(args[0])
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(hooks.BallCount(idx))}, nil
	}}

	values["scene_count"] = &tengo.UserFunction{Name: "scene_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if hooks.SceneCount == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(hooks.SceneCount())}, nil
	}}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: time.Since(d.start).Seconds()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsInt(obj tengo.Object) (int, bool) {
	switch v := obj.(type) {
	case *tengo.Int:
		return int(v.Value), true
	case *tengo.Float:
		return int(v.Value), true
	default:
		return 0, false
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

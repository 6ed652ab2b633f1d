package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/supershekhar/gravitylab/config"
	"github.com/supershekhar/gravitylab/scene"
	"github.com/supershekhar/gravitylab/script"
)

// hudHeight is the strip at the top of each scene reserved for the
// gravity input; clicks there never spawn balls.
const hudHeight = 56

// App drives every scene from one shared clock. It implements
// ebiten.Game; Update, Draw, and the input handlers all run on the game
// loop goroutine, so no scene state needs locking.
type App struct {
	cfg    *config.Config
	scenes []*scene.Scene

	ui     *ebitenui.UI
	inputs []gravityField

	driver  *script.Driver
	watcher *config.Watcher
	cfgPath string

	width, height int
	last          time.Time
	stopped       bool
	debug         bool
}

func NewApp(cfg *config.Config, debug bool) *App {
	a := &App{
		cfg:   cfg,
		debug: debug,
	}
	for _, spec := range cfg.Scenes {
		a.scenes = append(a.scenes, scene.New(spec.Name, spec.Gravity, cfg))
	}
	a.ui, a.inputs = newGravityHUD(a.scenes)
	return a
}

// SetWatcher attaches a live-reload watcher for the tuning file.
func (a *App) SetWatcher(w *config.Watcher, path string) {
	a.watcher = w
	a.cfgPath = path
}

// SetScriptDriver attaches an optional tengo demo driver.
func (a *App) SetScriptDriver(d *script.Driver) {
	a.driver = d
}

// ScriptHooks exposes the scenes to a script driver. Indices outside
// the scene range are ignored.
func (a *App) ScriptHooks() script.Hooks {
	return script.Hooks{
		Drop: func(i int) {
			if i >= 0 && i < len(a.scenes) {
				a.scenes[i].AddBall()
			}
		},
		SetGravity: func(i int, g float64) {
			if i >= 0 && i < len(a.scenes) {
				a.scenes[i].SetGravity(g)
				a.inputs[i].refresh()
			}
		},
		BallCount: func(i int) int {
			if i >= 0 && i < len(a.scenes) {
				return len(a.scenes[i].Balls())
			}
			return 0
		},
		SceneCount: func() int { return len(a.scenes) },
	}
}

// Start runs the game loop until Stop or window close.
func (a *App) Start() error {
	a.last = time.Now()
	return ebiten.RunGame(a)
}

// Stop terminates the run loop on the next Update.
func (a *App) Stop() {
	a.stopped = true
}

func (a *App) Update() error {
	if a.stopped {
		return ebiten.Termination
	}

	now := time.Now()
	elapsed := now.Sub(a.last).Seconds()
	a.last = now

	a.ui.Update()
	a.pollWatcher()

	if a.driver != nil && !a.driver.Failed() {
		if err := a.driver.Tick(); err != nil {
			log.Printf("%v", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.Stop()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.routeClick(float64(x), float64(y))
	}

	for _, sc := range a.scenes {
		sc.Step(elapsed)
	}
	return nil
}

// routeClick spawns one ball in the scene under the cursor.
func (a *App) routeClick(x, y float64) {
	if y < hudHeight {
		return
	}
	for _, sc := range a.scenes {
		if sc.Camera().Contains(x, y) {
			sc.AddBall()
			return
		}
	}
}

// pollWatcher drains pending tuning-file events without blocking the
// frame.
func (a *App) pollWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.reloadConfig()
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("config watch: %v", err)
		default:
			return
		}
	}
}

func (a *App) reloadConfig() {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		log.Printf("config reload skipped: %v", err)
		return
	}
	a.cfg = cfg
	for i, sc := range a.scenes {
		sc.ApplyTuning(cfg.Ball, cfg.Settle)
		if i < len(cfg.Scenes) {
			sc.SetGravity(cfg.Scenes[i].Gravity)
			a.inputs[i].refresh()
		}
	}
	log.Printf("config reloaded from %s", a.cfgPath)
}

func (a *App) Draw(screen *ebiten.Image) {
	for _, sc := range a.scenes {
		sc.Draw(screen)
	}
	a.ui.Draw(screen)

	if a.debug {
		msg := fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
		for _, sc := range a.scenes {
			msg += fmt.Sprintf("    %s: %d balls (g=%.2f)", sc.Name(), len(sc.Balls()), sc.Gravity())
		}
		ebitenutil.DebugPrintAt(screen, msg, 4, a.height-18)
	}
}

// Layout splits the window into equal-width viewports, one per scene.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width = outsideWidth
	a.height = outsideHeight

	n := len(a.scenes)
	if n > 0 {
		third := outsideWidth / n
		for i, sc := range a.scenes {
			x := i * third
			w := third
			if i == n-1 {
				w = outsideWidth - x
			}
			sc.SetViewport(float64(x), 0, float64(w), float64(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}

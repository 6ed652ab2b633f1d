package scene

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/supershekhar/gravitylab/config"
)

func newTestScene(gravity float64) *Scene {
	return New("test", gravity, config.Default())
}

func TestAddBallPairsHandles(t *testing.T) {
	cases := []struct {
		name  string
		count int
	}{
		{"single", 1},
		{"three", 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestScene(9.8)
			for i := 0; i < c.count; i++ {
				before := len(s.Balls())
				b := s.AddBall()
				if len(s.Balls()) != before+1 {
					t.Fatalf("active slice grew by %d, want 1", len(s.Balls())-before)
				}
				if b.Body == nil || b.Shape == nil || b.Sprite == nil {
					t.Fatalf("ball missing a handle: body=%v shape=%v sprite=%v", b.Body, b.Shape, b.Sprite)
				}
			}
			if got := s.Renderer().BallCount(); got != c.count {
				t.Fatalf("renderer has %d ball sprites, want %d", got, c.count)
			}
			// ground sprite stays alongside the balls
			if got := s.Renderer().Count(); got != c.count+1 {
				t.Fatalf("renderer has %d sprites, want %d", got, c.count+1)
			}
		})
	}
}

func TestSetGravityTakesEffectNextStep(t *testing.T) {
	slow := newTestScene(9.8)
	fast := newTestScene(9.8)
	fast.SetGravity(24.8)

	if got := fast.Gravity(); got != 24.8 {
		t.Fatalf("Gravity() = %v, want 24.8", got)
	}

	sb := slow.AddBall()
	fb := fast.AddBall()
	dt := config.Default().World.SubstepDT
	slow.Step(dt)
	fast.Step(dt)

	sv := sb.Body.Velocity().Y
	fv := fb.Body.Velocity().Y
	if sv >= 0 || fv >= 0 {
		t.Fatalf("balls should fall: slow vy=%v fast vy=%v", sv, fv)
	}
	if fv >= sv {
		t.Fatalf("higher gravity should fall faster after one step: slow vy=%v fast vy=%v", sv, fv)
	}
}

func TestSettledBallCulledWithinOneTick(t *testing.T) {
	s := newTestScene(9.8)
	b := s.AddBall()

	// park the ball resting on the ground, barely penetrating so a
	// contact exists, with negligible velocity
	b.Body.SetPosition(cp.Vector{X: 0, Y: s.groundY + b.Radius - 0.02})
	b.Body.SetVelocity(0, 0)

	if b.Settled() {
		t.Fatal("ball reported settled before any step")
	}

	s.Step(s.substep)

	if !b.Settled() {
		t.Fatal("culled ball should report settled")
	}
	if got := len(s.Balls()); got != 0 {
		t.Fatalf("active slice has %d balls, want 0", got)
	}
	if got := s.Renderer().BallCount(); got != 0 {
		t.Fatalf("renderer kept %d ball sprites, want 0", got)
	}
	if got := s.Renderer().Count(); got != 1 {
		t.Fatalf("renderer has %d sprites, want ground only", got)
	}
}

func TestFastBallNearGroundIsKept(t *testing.T) {
	s := newTestScene(9.8)
	b := s.AddBall()

	// at ground level but still moving fast: the heuristic must not fire
	b.Body.SetPosition(cp.Vector{X: 0, Y: s.groundY + b.Radius + 0.1})
	b.Body.SetVelocity(0, -4)

	s.Step(s.substep)

	if got := len(s.Balls()); got != 1 {
		t.Fatalf("active slice has %d balls, want 1", got)
	}
}

func TestStepSyncsSpriteTransforms(t *testing.T) {
	s := newTestScene(9.8)
	b := s.AddBall()

	for i := 0; i < 10; i++ {
		s.Step(s.substep)
	}

	pos := b.Body.Position()
	if b.Sprite.X != pos.X || b.Sprite.Y != pos.Y {
		t.Fatalf("sprite at (%v,%v), body at (%v,%v)", b.Sprite.X, b.Sprite.Y, pos.X, pos.Y)
	}
	if b.Sprite.Angle != b.Body.Angle() {
		t.Fatalf("sprite angle %v, body angle %v", b.Sprite.Angle, b.Body.Angle())
	}
}

func TestResizeUpdatesAspectExactly(t *testing.T) {
	cases := []struct {
		name string
		w, h float64
	}{
		{"landscape", 800, 600},
		{"third", 426, 720},
		{"odd", 333, 777},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestScene(9.8)
			s.Resize(c.w, c.h)
			if got, want := s.Camera().Aspect(), c.w/c.h; got != want {
				t.Fatalf("aspect = %v, want %v", got, want)
			}
		})
	}
}

func TestThreeBallsEventuallySettle(t *testing.T) {
	s := newTestScene(9.8)

	const (
		spawnEvery = 90    // steps between drops
		maxSteps   = 20000 // well past any plausible settle time
	)

	spawned := 0
	for step := 0; step < maxSteps; step++ {
		if spawned < 3 && step%spawnEvery == 0 {
			s.AddBall()
			spawned++
		}
		s.Step(s.substep)
		if spawned == 3 && len(s.Balls()) == 0 {
			break
		}
	}

	if got := len(s.Balls()); got != 0 {
		t.Fatalf("%d balls still active after %d steps", got, maxSteps)
	}
	if got := s.Renderer().BallCount(); got != 0 {
		t.Fatalf("renderer kept %d ball sprites after settling", got)
	}
}

func TestAccumulatorDropsBacklog(t *testing.T) {
	s := newTestScene(9.8)
	s.AddBall()

	// a huge stall must not replay every missed substep
	s.Step(10.0)

	if s.accumulator != 0 {
		t.Fatalf("accumulator = %v after capped catch-up, want 0", s.accumulator)
	}
}

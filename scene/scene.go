package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"

	"github.com/supershekhar/gravitylab/common"
	"github.com/supershekhar/gravitylab/config"
)

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypeBall
)

// Scene owns one Chipmunk space, one retained-sprite renderer, one
// camera, the static ground, and the active balls. All methods must be
// called from the game loop goroutine.
type Scene struct {
	name     string
	space    *cp.Space
	camera   *Camera
	renderer *Renderer

	ground       *cp.Shape
	groundSprite *Sprite
	groundY      float64

	balls  []*Ball
	ball   config.BallSpec
	settle config.SettleSpec

	gravity     float64
	substep     float64
	maxSubsteps int
	accumulator float64
}

// New builds a scene simulating the given downward gravity magnitude.
func New(name string, gravity float64, cfg *config.Config) *Scene {
	space := cp.NewSpace()
	space.Iterations = uint(cfg.World.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	space.SetDamping(cfg.Ball.Damping)

	s := &Scene{
		name:        name,
		space:       space,
		camera:      NewCamera(cfg.World.PixelsPerMeter),
		renderer:    NewRenderer(),
		groundY:     cfg.World.GroundY,
		ball:        cfg.Ball,
		settle:      cfg.Settle,
		gravity:     gravity,
		substep:     cfg.World.SubstepDT,
		maxSubsteps: cfg.World.MaxSubsteps,
	}

	hw := cfg.World.GroundHalfWidth
	ground := cp.NewSegment(space.StaticBody,
		cp.Vector{X: -hw, Y: s.groundY},
		cp.Vector{X: hw, Y: s.groundY}, 0)
	ground.SetFriction(cfg.World.GroundFriction)
	ground.SetElasticity(cfg.World.GroundElastic)
	ground.SetCollisionType(collisionTypeGround)
	space.AddShape(ground)

	s.ground = ground
	s.groundSprite = s.renderer.AddGroundSprite(s.groundY, hw)
	return s
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) Camera() *Camera {
	return s.camera
}

func (s *Scene) Renderer() *Renderer {
	return s.renderer
}

func (s *Scene) Balls() []*Ball {
	return s.balls
}

func (s *Scene) Gravity() float64 {
	return s.gravity
}

// AddBall spawns one ball at the configured drop point and registers it
// in the physics space, the sprite list, and the active slice. It
// always succeeds.
func (s *Scene) AddBall() *Ball {
	radius := s.ball.Radius
	mass := s.ball.Mass

	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: s.ball.DropX, Y: s.ball.DropY})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(s.ball.Friction)
	shape.SetElasticity(s.ball.Elasticity)
	shape.SetCollisionType(collisionTypeBall)

	s.space.AddBody(body)
	s.space.AddShape(shape)

	sprite := s.renderer.AddBallSprite(s.ball.DropX, s.ball.DropY, radius)

	b := &Ball{
		Body:   body,
		Shape:  shape,
		Sprite: sprite,
		Radius: radius,
	}
	s.balls = append(s.balls, b)
	return b
}

// SetGravity replaces the downward gravity component. It takes effect
// on the next substep; no interpolation.
func (s *Scene) SetGravity(g float64) {
	s.gravity = g
	s.space.SetGravity(cp.Vector{X: 0, Y: -g})
}

// ApplyTuning swaps in new ball and settle parameters. Tuning affects
// balls spawned afterwards; balls already in flight keep their shape
// properties, though damping and the settle thresholds apply to them
// immediately.
func (s *Scene) ApplyTuning(ball config.BallSpec, settle config.SettleSpec) {
	s.ball = ball
	s.settle = settle
	s.space.SetDamping(ball.Damping)
}

// Resize recomputes the camera viewport dimensions and aspect ratio.
func (s *Scene) Resize(w, h float64) {
	vx, vy, _, _ := s.camera.Viewport()
	s.camera.SetViewport(vx, vy, w, h)
}

// SetViewport moves the scene onto a screen rectangle.
func (s *Scene) SetViewport(x, y, w, h float64) {
	s.camera.SetViewport(x, y, w, h)
}

// Step advances the simulation by the wall-clock elapsed seconds using
// fixed substeps, mirrors body transforms onto sprites, and culls
// settled balls.
func (s *Scene) Step(elapsed float64) {
	// cap the hint so a stall doesn't buy a catch-up spiral
	s.accumulator += common.Clamp(elapsed, 0, 0.25)
	steps := 0
	for s.accumulator >= s.substep && steps < s.maxSubsteps {
		s.space.Step(s.substep)
		s.accumulator -= s.substep
		steps++
	}
	if steps == s.maxSubsteps {
		s.accumulator = 0
	}

	s.syncAndMark()
	s.cullSettled()
}

// syncAndMark copies physics transforms to sprites and marks balls that
// meet the removal heuristic: slow AND at ground level. Angular
// velocity is deliberately ignored and a transient low-speed dip (the
// top of a small bounce) can trigger it; the margin keeps that cheap
// check honest enough.
func (s *Scene) syncAndMark() {
	for _, b := range s.balls {
		pos := b.Body.Position()
		b.Sprite.X = pos.X
		b.Sprite.Y = pos.Y
		b.Sprite.Angle = b.Body.Angle()

		speed := b.Body.Velocity().Length()
		if speed < s.settle.Speed && pos.Y <= s.groundY+b.Radius+s.settle.Margin {
			b.settled = true
		}
	}
}

// cullSettled compacts the active slice in one pass, releasing both
// handles of every settled ball.
func (s *Scene) cullSettled() {
	kept := s.balls[:0]
	for _, b := range s.balls {
		if !b.settled {
			kept = append(kept, b)
			continue
		}
		s.space.RemoveShape(b.Shape)
		s.space.RemoveBody(b.Body)
		s.renderer.Remove(b.Sprite)
		b.Shape = nil
		b.Body = nil
		b.Sprite = nil
	}
	for i := len(kept); i < len(s.balls); i++ {
		s.balls[i] = nil
	}
	s.balls = kept
}

// Draw renders the scene through its camera.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.camera)
}

package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type SpriteKind int

const (
	KindGround SpriteKind = iota
	KindBall
)

// Sprite is a retained visual handle. Positions are world coordinates;
// the renderer projects them through the camera at draw time.
type Sprite struct {
	Kind   SpriteKind
	X, Y   float64
	Angle  float64
	Radius float64
	Color  color.RGBA
}

var ballPalette = []color.RGBA{
	{R: 0xe6, G: 0x5b, B: 0x4f, A: 0xff},
	{R: 0x4f, G: 0x9d, B: 0xe6, A: 0xff},
	{R: 0x5f, G: 0xc2, B: 0x6a, A: 0xff},
	{R: 0xe6, G: 0xc4, B: 0x4f, A: 0xff},
	{R: 0xa8, G: 0x6f, B: 0xd1, A: 0xff},
}

// Renderer owns the retained sprite list for one scene. Sprites are
// added and removed by the scene; Draw only reads them.
type Renderer struct {
	sprites []*Sprite
	spawned int

	Background color.RGBA
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background: color.RGBA{R: 0x14, G: 0x18, B: 0x1f, A: 0xff},
	}
}

// AddBallSprite creates a ball sprite with the next palette color.
func (r *Renderer) AddBallSprite(x, y, radius float64) *Sprite {
	s := &Sprite{
		Kind:   KindBall,
		X:      x,
		Y:      y,
		Radius: radius,
		Color:  ballPalette[r.spawned%len(ballPalette)],
	}
	r.spawned++
	r.sprites = append(r.sprites, s)
	return s
}

// AddGroundSprite creates the immutable ground strip sprite. Radius
// holds the half width.
func (r *Renderer) AddGroundSprite(topY, halfWidth float64) *Sprite {
	s := &Sprite{
		Kind:   KindGround,
		Y:      topY,
		Radius: halfWidth,
		Color:  color.RGBA{R: 0x3a, G: 0x42, B: 0x4e, A: 0xff},
	}
	r.sprites = append(r.sprites, s)
	return s
}

// Remove drops a sprite from the retained list.
func (r *Renderer) Remove(s *Sprite) {
	for i, sp := range r.sprites {
		if sp == s {
			r.sprites = append(r.sprites[:i], r.sprites[i+1:]...)
			return
		}
	}
}

// Count returns the total retained sprite count, ground included.
func (r *Renderer) Count() int {
	return len(r.sprites)
}

// BallCount returns the number of retained ball sprites.
func (r *Renderer) BallCount() int {
	n := 0
	for _, s := range r.sprites {
		if s.Kind == KindBall {
			n++
		}
	}
	return n
}

// Draw renders the scene into its camera viewport, clipped so one scene
// never paints over its neighbors.
func (r *Renderer) Draw(screen *ebiten.Image, cam *Camera) {
	vx, vy, vw, vh := cam.Viewport()
	clip := image.Rect(int(vx), int(vy), int(vx+vw), int(vy+vh))
	dst := screen.SubImage(clip).(*ebiten.Image)

	vector.FillRect(dst, float32(vx), float32(vy), float32(vw), float32(vh), r.Background, false)

	for _, s := range r.sprites {
		switch s.Kind {
		case KindGround:
			gx0, gy := cam.WorldToScreen(-s.Radius, s.Y)
			gx1, _ := cam.WorldToScreen(s.Radius, s.Y)
			bottom := vy + vh
			vector.FillRect(dst, float32(gx0), float32(gy), float32(gx1-gx0), float32(bottom-gy), s.Color, false)
		case KindBall:
			cx, cy := cam.WorldToScreen(s.X, s.Y)
			pr := s.Radius * cam.Scale()
			vector.FillCircle(dst, float32(cx), float32(cy), float32(pr), s.Color, true)
			// spin indicator so rotation from ball-on-ball friction is visible
			ex := cx + math.Cos(s.Angle)*pr
			ey := cy - math.Sin(s.Angle)*pr
			vector.StrokeLine(dst, float32(cx), float32(cy), float32(ex), float32(ey), 1.0, color.RGBA{A: 0x90}, true)
		}
	}

	// separator on the right edge of the viewport
	vector.StrokeLine(dst, float32(vx+vw-1), float32(vy), float32(vx+vw-1), float32(vy+vh), 1.0, color.RGBA{R: 0x2a, G: 0x2f, B: 0x38, A: 0xff}, false)
}

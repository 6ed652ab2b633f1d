package scene

// Camera maps world coordinates (meters, Y up, origin at the bottom
// center of the scene) onto a pixel viewport (Y down). Only the
// viewport is mutable; scale is fixed at construction.
type Camera struct {
	viewX, viewY  float64
	width, height float64
	aspect        float64
	scale         float64 // pixels per meter
}

func NewCamera(pixelsPerMeter float64) *Camera {
	return &Camera{scale: pixelsPerMeter}
}

// SetViewport places the camera over a screen rectangle and recomputes
// the aspect ratio. Nothing else changes.
func (c *Camera) SetViewport(x, y, w, h float64) {
	c.viewX = x
	c.viewY = y
	c.width = w
	c.height = h
	if h != 0 {
		c.aspect = w / h
	}
}

func (c *Camera) Aspect() float64 {
	return c.aspect
}

func (c *Camera) Viewport() (x, y, w, h float64) {
	return c.viewX, c.viewY, c.width, c.height
}

func (c *Camera) Scale() float64 {
	return c.scale
}

// WorldToScreen converts a world point to screen pixels. World x=0 maps
// to the horizontal center of the viewport, world y=0 to its bottom
// edge.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := c.viewX + c.width/2 + wx*c.scale
	sy := c.viewY + c.height - wy*c.scale
	return sx, sy
}

// Contains reports whether a screen point falls inside the viewport.
func (c *Camera) Contains(sx, sy float64) bool {
	return sx >= c.viewX && sx < c.viewX+c.width &&
		sy >= c.viewY && sy < c.viewY+c.height
}

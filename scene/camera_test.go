package scene

import "testing"

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera(10)
	cam.SetViewport(100, 0, 300, 600)

	cases := []struct {
		name   string
		wx, wy float64
		sx, sy float64
	}{
		{"origin_bottom_center", 0, 0, 250, 600},
		{"up_and_right", 2, 3, 270, 570},
		{"left_of_center", -5, 0, 200, 600},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(c.wx, c.wy)
			if sx != c.sx || sy != c.sy {
				t.Fatalf("WorldToScreen(%v,%v) = (%v,%v), want (%v,%v)", c.wx, c.wy, sx, sy, c.sx, c.sy)
			}
		})
	}
}

func TestCameraContains(t *testing.T) {
	cam := NewCamera(10)
	cam.SetViewport(100, 0, 300, 600)

	cases := []struct {
		name   string
		x, y   float64
		inside bool
	}{
		{"center", 250, 300, true},
		{"left_edge", 100, 0, true},
		{"right_edge_exclusive", 400, 300, false},
		{"outside_left", 99, 300, false},
		{"below", 250, 600, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cam.Contains(c.x, c.y); got != c.inside {
				t.Fatalf("Contains(%v,%v) = %v, want %v", c.x, c.y, got, c.inside)
			}
		})
	}
}

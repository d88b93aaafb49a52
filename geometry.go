package gridlegend

// Pixel-space geometry primitives. All coordinates are y-up: a Rect's
// origin is its lower-left corner, matching the host chart convention.
// Raster backends flip to image coordinates at draw time.

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y float64 // lower-left corner
	W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// Extent is the measured size of a rendered text label in pixels.
type Extent struct {
	Width  float64
	Height float64
}

// Offset is a pixel displacement applied to the legend corner after all
// other placement math.
type Offset struct {
	DX, DY float64
}

package gridlegend

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Renderer is the host rendering capability the legend layout calls into.
// It measures label extents and manages overlay regions on chart areas.
// Implementations are expected to be fast and side-effect-free for
// MeasureText.
type Renderer interface {
	// MeasureText returns the pixel extent of a rendered label. Labels
	// may contain newlines; the extent covers the whole block.
	MeasureText(text string, f *Font) Extent

	// CreateOverlay allocates a drawable region of the given bounds
	// (host pixel space, y-up) attached to the host chart area.
	CreateOverlay(host *ChartArea, bounds Rect) (Overlay, error)

	// RemoveOverlay discards any existing overlay on the host, giving
	// Place its idempotent replace semantics.
	RemoveOverlay(host *ChartArea)
}

// Overlay is one legend's drawable region. Coordinates passed to the
// draw methods are legend-local and y-up.
type Overlay interface {
	// MoveTo re-anchors the region's lower-left corner in host space.
	MoveTo(x, y float64)
	// DrawFrame paints the legend background and border rectangle.
	DrawFrame(fill, edge Color, lineWidth float64)
	// DrawText draws a label anchored horizontally at x per align and
	// centered vertically on y.
	DrawText(x, y float64, text string, f *Font, align HAlign)
	// DrawLine draws a sample line segment styled by the item.
	DrawLine(x1, y1, x2, y2 float64, item *SampleItem)
	// DrawMarker draws a marker glyph centered at (x, y).
	DrawMarker(x, y float64, item *SampleItem)
	// Close releases the region.
	Close()
}

// TextInterpreter is an optional Overlay capability: overlays that
// implement text markup receive the interpreter mode (InterpreterNone,
// InterpreterTeX) before any labels are drawn. The bundled raster
// overlay does not implement it and draws labels literally.
type TextInterpreter interface {
	SetTextInterpreter(mode string)
}

// Discoverer is an optional Renderer capability: enumerating the current
// chart area and its legendable series. Sources that omit an explicit
// binding need it.
type Discoverer interface {
	// DiscoverHost returns the chart area to attach to when the caller
	// did not bind one explicitly.
	DiscoverHost() *ChartArea
	// DiscoverItems returns sample descriptors for the series plotted
	// in the given chart area, in plot order.
	DiscoverItems(host *ChartArea) []*SampleItem
}

// --- Raster backend ---

// ImageRenderer implements Renderer on an RGBA raster. Text is measured
// and drawn with TrueType fonts from a FontCache, falling back to the
// embedded 7x13 bitmap face when no matching font file is found.
//
// The image uses the usual y-down convention internally; all public
// coordinates remain y-up with the origin at the bottom-left.
type ImageRenderer struct {
	width, height int
	background    color.RGBA
	dpi           float64
	fonts         *FontCache

	host     *ChartArea
	overlays map[*ChartArea]*imageOverlay
}

// NewImageRenderer creates a raster renderer of the given pixel size with
// a white background. Extra font directories are searched in addition to
// the OS font directories.
func NewImageRenderer(width, height int, fontDirs ...string) *ImageRenderer {
	return &ImageRenderer{
		width:      width,
		height:     height,
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		dpi:        96,
		fonts:      NewFontCache(fontDirs...),
		overlays:   make(map[*ChartArea]*imageOverlay),
	}
}

// SetBackground overrides the background color.
func (r *ImageRenderer) SetBackground(c Color) { r.background = c.RGBA() }

// SetDPI sets the rendering DPI for font sizing. Default: 96.
func (r *ImageRenderer) SetDPI(dpi float64) {
	if dpi > 0 {
		r.dpi = dpi
	}
}

// FontCache exposes the renderer's font cache so fonts can be registered
// manually or shared across renderers.
func (r *ImageRenderer) FontCache() *FontCache { return r.fonts }

// DiscoverHost returns a chart area covering the full image, created on
// first use. DiscoverItems returns nothing: a plain raster has no plotted
// series to enumerate.
func (r *ImageRenderer) DiscoverHost() *ChartArea {
	if r.host == nil {
		r.host = NewChartArea(Rect{W: float64(r.width), H: float64(r.height)})
	}
	return r.host
}

// DiscoverItems implements Discoverer. See DiscoverHost.
func (r *ImageRenderer) DiscoverItems(host *ChartArea) []*SampleItem { return nil }

// facePx converts the font's point size to pixels at the renderer DPI.
func (r *ImageRenderer) facePx(f *Font) float64 {
	size := 10.0
	if f != nil && f.Size > 0 {
		size = f.Size
	}
	return size * r.dpi / 72.0
}

// getFace returns a hinted face for drawing, with common fallbacks.
func (r *ImageRenderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	name := f.Name
	if name == "" {
		name = "Helvetica"
	}
	px := r.facePx(f)
	if face := r.fonts.GetFace(name, px, f.Bold, f.Italic); face != nil {
		return face
	}
	for _, fallback := range []string{"helvetica", "arial", "dejavu sans", "liberation sans", "noto sans"} {
		if face := r.fonts.GetFace(fallback, px, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// getMeasureFace returns an unhinted face for measurement, so extents use
// ideal glyph advances independent of rasterization.
func (r *ImageRenderer) getMeasureFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	name := f.Name
	if name == "" {
		name = "Helvetica"
	}
	px := r.facePx(f)
	if face := r.fonts.GetMeasureFace(name, px, f.Bold, f.Italic); face != nil {
		return face
	}
	for _, fallback := range []string{"helvetica", "arial", "dejavu sans", "liberation sans", "noto sans"} {
		if face := r.fonts.GetMeasureFace(fallback, px, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// MeasureText implements Renderer. Multi-line labels report the max line
// width and the stacked line height.
func (r *ImageRenderer) MeasureText(text string, f *Font) Extent {
	face := r.getMeasureFace(f)
	lineH := face.Metrics().Height.Ceil()
	if lineH <= 0 {
		lineH = 14
	}
	var maxW int
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxW {
			maxW = w
		}
	}
	return Extent{Width: float64(maxW), Height: float64(lineH * len(lines))}
}

// CreateOverlay implements Renderer.
func (r *ImageRenderer) CreateOverlay(host *ChartArea, bounds Rect) (Overlay, error) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return nil, fmt.Errorf("overlay bounds must be positive, got %gx%g", bounds.W, bounds.H)
	}
	ov := &imageOverlay{
		renderer: r,
		buf:      image.NewRGBA(image.Rect(0, 0, int(math.Ceil(bounds.W)), int(math.Ceil(bounds.H)))),
		x:        bounds.X,
		y:        bounds.Y,
	}
	r.overlays[host] = ov
	return ov, nil
}

// RemoveOverlay implements Renderer.
func (r *ImageRenderer) RemoveOverlay(host *ChartArea) {
	if ov, ok := r.overlays[host]; ok {
		ov.closed = true
		delete(r.overlays, host)
	}
}

// Render composites the background and all live overlays into an image.
func (r *ImageRenderer) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{r.background}, image.Point{}, draw.Src)
	for _, ov := range r.overlays {
		if ov.closed {
			continue
		}
		b := ov.buf.Bounds()
		ix := int(math.Round(ov.x))
		iy := r.height - int(math.Round(ov.y)) - b.Dy()
		dst := image.Rect(ix, iy, ix+b.Dx(), iy+b.Dy())
		draw.Draw(img, dst, ov.buf, b.Min, draw.Over)
	}
	return img
}

// SavePNG composites the current state and writes it as a PNG file,
// creating parent directories as needed.
func (r *ImageRenderer) SavePNG(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, r.Render())
}

// --- Overlay ---

type imageOverlay struct {
	renderer *ImageRenderer
	buf      *image.RGBA
	x, y     float64 // lower-left corner in host space
	closed   bool
}

func (o *imageOverlay) MoveTo(x, y float64) {
	o.x = x
	o.y = y
}

func (o *imageOverlay) Close() { o.closed = true }

// py flips a legend-local y-up coordinate into buffer row space.
func (o *imageOverlay) py(y float64) int {
	return o.buf.Bounds().Dy() - int(math.Round(y))
}

func (o *imageOverlay) setPixel(x, y int, c color.RGBA) {
	b := o.buf.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		o.buf.SetRGBA(x, y, c)
	}
}

func (o *imageOverlay) DrawFrame(fill, edge Color, lineWidth float64) {
	b := o.buf.Bounds()
	if !fill.IsZero() {
		draw.Draw(o.buf, b, &image.Uniform{fill.RGBA()}, image.Point{}, draw.Src)
	}
	if edge.IsZero() {
		return
	}
	w := int(math.Round(lineWidth))
	if w < 1 {
		w = 1
	}
	ec := edge.RGBA()
	for i := 0; i < w; i++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o.setPixel(x, b.Min.Y+i, ec)
			o.setPixel(x, b.Max.Y-1-i, ec)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			o.setPixel(b.Min.X+i, y, ec)
			o.setPixel(b.Max.X-1-i, y, ec)
		}
	}
}

func (o *imageOverlay) DrawText(x, y float64, text string, f *Font, align HAlign) {
	face := o.renderer.getFace(f)
	lineH := face.Metrics().Height.Ceil()
	if lineH <= 0 {
		lineH = 14
	}
	tc := color.RGBA{A: 255}
	if f != nil && !f.Color.IsZero() {
		tc = f.Color.RGBA()
	}

	lines := strings.Split(text, "\n")
	cy := o.py(y)
	top := cy - lineH*len(lines)/2
	curY := top
	for _, line := range lines {
		curY += lineH
		w := font.MeasureString(face, line).Ceil()
		drawX := int(math.Round(x))
		switch align {
		case AlignCenter:
			drawX -= w / 2
		case AlignRight:
			drawX -= w
		}
		d := &font.Drawer{
			Dst:  o.buf,
			Src:  &image.Uniform{tc},
			Face: face,
			Dot:  fixed.P(drawX, curY-face.Metrics().Descent.Ceil()),
		}
		d.DrawString(line)
	}
}

// dashPatterns gives on/off pixel run lengths per line style.
var dashPatterns = map[LineStyle][]int{
	LineDash:    {6, 4},
	LineDot:     {2, 3},
	LineDashDot: {7, 3, 2, 3},
}

func (o *imageOverlay) DrawLine(x1, y1, x2, y2 float64, item *SampleItem) {
	c := color.RGBA{A: 255}
	if !item.Color.IsZero() {
		c = item.Color.RGBA()
	}
	w := int(math.Round(item.LineWidth))
	if w < 1 {
		w = 1
	}
	o.strokeLine(int(math.Round(x1)), o.py(y1), int(math.Round(x2)), o.py(y2), c, w, dashPatterns[item.LineStyle])
}

// strokeLine rasterizes a line with Bresenham's algorithm, a dash pattern
// (nil for solid), and a pixel width applied perpendicular to the major
// axis.
func (o *imageOverlay) strokeLine(x1, y1, x2, y2 int, c color.RGBA, width int, pattern []int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	errAcc := dx - dy

	run, patIdx, on := 0, 0, true
	for {
		if on {
			for t := 0; t < width; t++ {
				off := t - width/2
				if dx >= dy {
					o.setPixel(x1, y1+off, c)
				} else {
					o.setPixel(x1+off, y1, c)
				}
			}
		}
		if len(pattern) > 0 {
			run++
			if run >= pattern[patIdx] {
				run = 0
				patIdx = (patIdx + 1) % len(pattern)
				on = !on
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * errAcc
		if e2 > -dy {
			errAcc -= dy
			x1 += sx
		}
		if e2 < dx {
			errAcc += dx
			y1 += sy
		}
	}
}

func (o *imageOverlay) DrawMarker(x, y float64, item *SampleItem) {
	size := item.MarkerSize
	if size <= 0 {
		size = 6
	}
	edge := item.MarkerEdgeColor
	if edge.IsZero() {
		edge = item.Color
	}
	ec := color.RGBA{A: 255}
	if !edge.IsZero() {
		ec = edge.RGBA()
	}
	var fc color.RGBA
	filled := !item.MarkerFaceColor.IsZero()
	if filled {
		fc = item.MarkerFaceColor.RGBA()
	}

	cx := int(math.Round(x))
	cy := o.py(y)
	r := int(math.Round(size / 2))
	if r < 1 {
		r = 1
	}

	switch item.Marker {
	case MarkerCircle:
		if filled {
			o.fillCircle(cx, cy, r, fc)
		}
		o.strokeCircle(cx, cy, r, ec)
	case MarkerDot:
		o.fillCircle(cx, cy, maxInt(1, r/2), ec)
	case MarkerSquare:
		if filled {
			for py := cy - r; py <= cy+r; py++ {
				for px := cx - r; px <= cx+r; px++ {
					o.setPixel(px, py, fc)
				}
			}
		}
		o.strokeLine(cx-r, cy-r, cx+r, cy-r, ec, 1, nil)
		o.strokeLine(cx+r, cy-r, cx+r, cy+r, ec, 1, nil)
		o.strokeLine(cx+r, cy+r, cx-r, cy+r, ec, 1, nil)
		o.strokeLine(cx-r, cy+r, cx-r, cy-r, ec, 1, nil)
	case MarkerDiamond:
		if filled {
			for py := -r; py <= r; py++ {
				span := r - abs(py)
				for px := -span; px <= span; px++ {
					o.setPixel(cx+px, cy+py, fc)
				}
			}
		}
		o.strokeLine(cx, cy-r, cx+r, cy, ec, 1, nil)
		o.strokeLine(cx+r, cy, cx, cy+r, ec, 1, nil)
		o.strokeLine(cx, cy+r, cx-r, cy, ec, 1, nil)
		o.strokeLine(cx-r, cy, cx, cy-r, ec, 1, nil)
	case MarkerTriangle:
		if filled {
			for py := -r; py <= r; py++ {
				// Width grows linearly from apex to base.
				span := (py + r) / 2
				for px := -span; px <= span; px++ {
					o.setPixel(cx+px, cy+py, fc)
				}
			}
		}
		o.strokeLine(cx, cy-r, cx+r, cy+r, ec, 1, nil)
		o.strokeLine(cx+r, cy+r, cx-r, cy+r, ec, 1, nil)
		o.strokeLine(cx-r, cy+r, cx, cy-r, ec, 1, nil)
	case MarkerPlus:
		o.strokeLine(cx-r, cy, cx+r, cy, ec, 1, nil)
		o.strokeLine(cx, cy-r, cx, cy+r, ec, 1, nil)
	case MarkerX:
		o.strokeLine(cx-r, cy-r, cx+r, cy+r, ec, 1, nil)
		o.strokeLine(cx-r, cy+r, cx+r, cy-r, ec, 1, nil)
	case MarkerStar:
		o.strokeLine(cx-r, cy, cx+r, cy, ec, 1, nil)
		o.strokeLine(cx, cy-r, cx, cy+r, ec, 1, nil)
		o.strokeLine(cx-r, cy-r, cx+r, cy+r, ec, 1, nil)
		o.strokeLine(cx-r, cy+r, cx+r, cy-r, ec, 1, nil)
	case MarkerDash:
		o.strokeLine(cx-r, cy, cx+r, cy, ec, 1, nil)
	}
}

func (o *imageOverlay) fillCircle(cx, cy, r int, c color.RGBA) {
	for py := cy - r; py <= cy+r; py++ {
		for px := cx - r; px <= cx+r; px++ {
			ddx := float64(px-cx) + 0.5
			ddy := float64(py-cy) + 0.5
			if ddx*ddx+ddy*ddy <= float64(r*r)+0.25 {
				o.setPixel(px, py, c)
			}
		}
	}
}

func (o *imageOverlay) strokeCircle(cx, cy, r int, c color.RGBA) {
	steps := r * 8
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		px := cx + int(math.Round(float64(r)*math.Cos(angle)))
		py := cy + int(math.Round(float64(r)*math.Sin(angle)))
		o.setPixel(px, py, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

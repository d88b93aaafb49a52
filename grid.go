package gridlegend

import "fmt"

// Marker symbol constants.
const (
	MarkerCircle   = "circle"
	MarkerDash     = "dash"
	MarkerDiamond  = "diamond"
	MarkerDot      = "dot"
	MarkerPlus     = "plus"
	MarkerSquare   = "square"
	MarkerStar     = "star"
	MarkerTriangle = "triangle"
	MarkerX        = "x"
	MarkerNone     = "none"
)

// SampleItem mirrors the visual identity of one already-rendered series:
// the legend draws a short line segment and a marker glyph styled with
// these attributes. A nil *SampleItem in a grid cell means the cell's
// label exists but no glyph is drawn.
type SampleItem struct {
	Color           Color
	LineStyle       LineStyle
	LineWidth       float64
	Marker          string
	MarkerEdgeColor Color
	MarkerFaceColor Color
	MarkerSize      float64
}

// NewSampleItem creates a solid-line sample in the given color with no marker.
func NewSampleItem(c Color) *SampleItem {
	return &SampleItem{
		Color:      c,
		LineStyle:  LineSolid,
		LineWidth:  1,
		Marker:     MarkerNone,
		MarkerSize: 6,
	}
}

// SetLineStyle sets the sample line style.
func (s *SampleItem) SetLineStyle(ls LineStyle) *SampleItem {
	s.LineStyle = ls
	return s
}

// SetLineWidth sets the sample line width in pixels.
func (s *SampleItem) SetLineWidth(w float64) *SampleItem {
	if w < 0 {
		w = 0
	}
	s.LineWidth = w
	return s
}

// SetMarker sets the marker shape (one of the Marker* constants).
func (s *SampleItem) SetMarker(m string) *SampleItem {
	s.Marker = m
	return s
}

// SetMarkerColors sets the marker edge and face colors.
func (s *SampleItem) SetMarkerColors(edge, face Color) *SampleItem {
	s.MarkerEdgeColor = edge
	s.MarkerFaceColor = face
	return s
}

// SetMarkerSize sets the marker size in pixels.
func (s *SampleItem) SetMarkerSize(sz float64) *SampleItem {
	if sz < 0 {
		sz = 0
	}
	s.MarkerSize = sz
	return s
}

// GridSpec describes the legend contents: R row labels, C column labels,
// and an R×C matrix of sample items (nil entries draw no glyph).
type GridSpec struct {
	RowLabels []string
	ColLabels []string
	items     [][]*SampleItem
}

// NewGridSpec creates a grid with the given labels and an all-empty item
// matrix.
func NewGridSpec(rowLabels, colLabels []string) *GridSpec {
	g := &GridSpec{RowLabels: rowLabels, ColLabels: colLabels}
	g.items = make([][]*SampleItem, len(rowLabels))
	for i := range g.items {
		g.items[i] = make([]*SampleItem, len(colLabels))
	}
	return g
}

// Rows returns the number of content rows R.
func (g *GridSpec) Rows() int { return len(g.RowLabels) }

// Cols returns the number of item columns C.
func (g *GridSpec) Cols() int { return len(g.ColLabels) }

// Item returns the sample item at content row i, column j (both zero
// based), or nil if the cell is empty or out of range.
func (g *GridSpec) Item(i, j int) *SampleItem {
	if i < 0 || i >= len(g.items) || j < 0 || j >= len(g.items[i]) {
		return nil
	}
	return g.items[i][j]
}

// SetItems fills the grid from a flat row-major item sequence. A sequence
// shorter than R*C pads the remaining cells as empty; a longer one is an
// error.
func (g *GridSpec) SetItems(flat ...*SampleItem) error {
	r, c := g.Rows(), g.Cols()
	if len(flat) > r*c {
		return fmt.Errorf("%w: got %d items for a %dx%d grid", ErrTooManyItems, len(flat), r, c)
	}
	for n, item := range flat {
		g.items[n/c][n%c] = item
	}
	for n := len(flat); n < r*c; n++ {
		g.items[n/c][n%c] = nil
	}
	return nil
}

// SetItemMatrix supplies the items as an explicit matrix, whose dimensions
// must be exactly R×C.
func (g *GridSpec) SetItemMatrix(m [][]*SampleItem) error {
	r, c := g.Rows(), g.Cols()
	if len(m) != r {
		return fmt.Errorf("item matrix has %d rows, want %d", len(m), r)
	}
	for i, row := range m {
		if len(row) != c {
			return fmt.Errorf("item matrix row %d has %d columns, want %d", i, len(row), c)
		}
	}
	for i, row := range m {
		copy(g.items[i], row)
	}
	return nil
}

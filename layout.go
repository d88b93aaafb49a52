package gridlegend

import "math"

// Geometry holds the derived pixel sizes of the legend box. It is
// computed once per placement and never mutated afterwards; container
// resizes reuse it unchanged because label extents do not depend on the
// host size.
type Geometry struct {
	// RowHeight is the max measured height over the row labels.
	RowHeight float64
	// HeaderHeight is the max measured height over the column labels.
	HeaderHeight float64
	// ColWidths has length C+1; index 0 is the row-label column width,
	// indices 1..C are max(columnLabelWidth, itemLineLength).
	ColWidths []float64

	TotalWidth  float64
	TotalHeight float64
}

// CellKind distinguishes the three populated cell roles of the virtual
// (R+1)x(C+1) legend grid. The (0,0) corner stays empty.
type CellKind int

const (
	CellColumnLabel CellKind = iota
	CellRowLabel
	CellSample
)

// CellPlacement positions one label or one sample glyph in legend-local
// y-up coordinates (origin at the legend box's lower-left corner).
type CellPlacement struct {
	Row, Col int // virtual grid indices; row 0 = header, col 0 = row labels
	Kind     CellKind

	// Label cells: text anchored horizontally at X per Align and
	// centered vertically on Y.
	Text  string
	Align HAlign
	X, Y  float64

	// Sample cells: a line segment from (LineX1, LineY) to
	// (LineX2, LineY) and a marker centered at (MarkerX, MarkerY).
	// Item is nil for an empty cell, which draws nothing.
	LineX1, LineX2, LineY float64
	MarkerX, MarkerY      float64
	Item                  *SampleItem
}

// ComputeLayout measures every label through the renderer and derives the
// legend geometry plus a placement for each populated cell of the virtual
// (R+1)x(C+1) grid. Placements for body cells are emitted even when the
// cell's item is empty, so callers always see R*C sample placements.
func ComputeLayout(r Renderer, g *GridSpec, opts *Options) (*Geometry, []CellPlacement, error) {
	R, C := g.Rows(), g.Cols()
	if R == 0 || C == 0 {
		return nil, nil, ErrEmptyGrid
	}

	aligns, err := normalizeAlignments(opts.Alignments, C)
	if err != nil {
		return nil, nil, err
	}

	rowExt := make([]Extent, R)
	for i, label := range g.RowLabels {
		rowExt[i] = r.MeasureText(label, opts.Font)
	}
	colExt := make([]Extent, C)
	for j, label := range g.ColLabels {
		colExt[j] = r.MeasureText(label, opts.Font)
	}

	geom := &Geometry{ColWidths: make([]float64, C+1)}
	for _, e := range rowExt {
		geom.RowHeight = math.Max(geom.RowHeight, e.Height)
		geom.ColWidths[0] = math.Max(geom.ColWidths[0], e.Width)
	}
	geom.RowHeight = math.Ceil(geom.RowHeight)
	geom.ColWidths[0] = math.Ceil(geom.ColWidths[0])
	for j, e := range colExt {
		geom.HeaderHeight = math.Max(geom.HeaderHeight, e.Height)
		geom.ColWidths[j+1] = math.Ceil(math.Max(e.Width, opts.ItemLineLength))
	}
	geom.HeaderHeight = math.Ceil(geom.HeaderHeight)

	for _, w := range geom.ColWidths {
		geom.TotalWidth += w
	}
	geom.TotalWidth += float64(C)*opts.MarginWidth + 2*opts.PaddingWidth
	geom.TotalHeight = geom.HeaderHeight + float64(R)*(geom.RowHeight+opts.MarginHeight) + 2*opts.PaddingHeight

	// Cumulative left edges of the C+1 columns.
	xLeft := make([]float64, C+1)
	x := opts.PaddingWidth
	for k := 0; k <= C; k++ {
		xLeft[k] = x
		x += geom.ColWidths[k] + opts.MarginWidth
	}

	L := opts.ItemLineLength
	cells := make([]CellPlacement, 0, R*C+R+C)
	for i := 0; i <= R; i++ {
		// Rows are counted from the bottom of the box: the header
		// sits on top of all R content rows.
		var yBottom, height float64
		if i == 0 {
			yBottom = opts.PaddingHeight + float64(R)*(geom.RowHeight+opts.MarginHeight)
			height = geom.HeaderHeight
		} else {
			yBottom = opts.PaddingHeight + float64(R-i)*(geom.RowHeight+opts.MarginHeight)
			height = geom.RowHeight
		}
		y0 := yBottom + height/2

		for k := 0; k <= C; k++ {
			if i == 0 && k == 0 {
				continue // empty corner
			}

			xl := xLeft[k]
			xr := xl + geom.ColWidths[k]
			var x0, spanStart, spanEnd float64
			switch aligns[k] {
			case AlignCenter:
				x0 = (xl + xr) / 2
				spanStart, spanEnd = x0-L/2, x0+L/2
			case AlignRight:
				x0 = xr
				spanStart, spanEnd = x0-L, x0
			default: // AlignLeft
				x0 = xl
				spanStart, spanEnd = x0, x0+L
			}

			switch {
			case i == 0:
				cells = append(cells, CellPlacement{
					Row: i, Col: k, Kind: CellColumnLabel,
					Text: g.ColLabels[k-1], Align: aligns[k],
					X: x0, Y: y0,
				})
			case k == 0:
				// Row labels carry a one-margin vertical nudge.
				cells = append(cells, CellPlacement{
					Row: i, Col: k, Kind: CellRowLabel,
					Text: g.RowLabels[i-1], Align: aligns[k],
					X: x0, Y: y0 + opts.MarginHeight,
				})
			default:
				cells = append(cells, CellPlacement{
					Row: i, Col: k, Kind: CellSample,
					LineX1: spanStart, LineX2: spanEnd, LineY: y0,
					MarkerX: (spanStart + spanEnd) / 2, MarkerY: y0,
					Item: g.Item(i-1, k-1),
				})
			}
		}
	}

	return geom, cells, nil
}

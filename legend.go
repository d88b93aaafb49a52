// Package gridlegend arranges existing plotted line/marker samples and
// text labels into a row/column grid legend overlaid on a host chart
// area. It computes pixel-level layout from measured label extents,
// resolves a named placement keyword against the host rectangle, and
// repositions the overlay when the host container resizes.
//
// The package does not render charts itself: drawing, text measurement,
// and overlay management are capabilities of a Renderer supplied by the
// caller. A raster Renderer backed by image/draw and TrueType fonts is
// bundled; see ImageRenderer.
package gridlegend

import (
	"errors"
	"fmt"
)

// Source identifies where the legend's sample items come from and which
// chart area hosts the overlay. It is a closed three-variant union: an
// explicit host binding, an explicit item list, or renderer discovery.
type Source interface {
	isSource()
}

type hostSource struct{ host *ChartArea }
type itemsSource struct{ items []*SampleItem }
type autoSource struct{}

func (hostSource) isSource()  {}
func (itemsSource) isSource() {}
func (autoSource) isSource()  {}

// BindHost attaches the legend to an explicit chart area. Sample items
// are discovered from the series plotted in that area.
func BindHost(host *ChartArea) Source { return hostSource{host: host} }

// BindItems supplies the sample items explicitly as a flat row-major
// sequence. The host chart area comes from Options.Host or renderer
// discovery.
func BindItems(items ...*SampleItem) Source { return itemsSource{items: items} }

// Discover asks the renderer for both the host chart area and the
// legendable series currently plotted in it.
func Discover() Source { return autoSource{} }

// Legend is the handle of a placed grid legend. It owns the overlay
// region and the resize subscription, and keeps the placement parameters
// needed to re-anchor the box when the host container resizes.
type Legend struct {
	renderer Renderer
	host     *ChartArea
	overlay  Overlay
	geom     *Geometry
	cells    []CellPlacement

	location    string
	offset      Offset
	outerMargin float64

	// preShrink is the host rectangle before the latest outside-placement
	// shrink, kept so Remove can give the room back.
	preShrink    Rect
	corner       Placement
	cancelResize func()
	removed      bool
}

// Place computes the legend layout, anchors it against the host chart
// area, draws it into a fresh overlay region, and subscribes to host
// resize notifications. Any overlay created before an error is torn down
// again, so no partial legend is left rendered.
//
// When the source relies on discovery and no legendable items exist,
// Place is a silent no-op: it returns (nil, nil).
func Place(r Renderer, src Source, rowLabels, colLabels []string, opts *Options) (*Legend, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if src == nil {
		src = Discover()
	}

	host, items, explicit, err := resolveSource(r, src, opts)
	if err != nil {
		return nil, err
	}
	if !explicit && len(items) == 0 {
		return nil, nil // nothing to legend: silent no-op, no handle
	}

	if len(rowLabels) == 0 || len(colLabels) == 0 {
		return nil, ErrEmptyGrid
	}
	spec := NewGridSpec(rowLabels, colLabels)
	if err := spec.SetItems(items...); err != nil {
		return nil, err
	}

	geom, cells, err := ComputeLayout(r, spec, opts)
	if err != nil {
		return nil, err
	}

	bounds := host.Bounds()
	p := resolveLocation(bounds, opts.Location, opts.Offset, geom.TotalWidth, geom.TotalHeight, opts.OuterMargin)

	// Idempotent replace: clear any prior overlay on this host before
	// creating the new region.
	r.RemoveOverlay(host)
	ov, err := r.CreateOverlay(host, Rect{X: p.X, Y: p.Y, W: geom.TotalWidth, H: geom.TotalHeight})
	if err != nil {
		return nil, fmt.Errorf("create overlay: %w", err)
	}
	// Commit the outside-placement shrink only once the overlay exists,
	// so a failed placement leaves the plotting area untouched.
	if p.Mutated {
		host.SetBounds(p.Host)
	}

	l := &Legend{
		renderer:    r,
		host:        host,
		overlay:     ov,
		geom:        geom,
		cells:       cells,
		location:    opts.Location,
		offset:      opts.Offset,
		outerMargin: opts.OuterMargin,
		preShrink:   bounds,
		corner:      p,
	}
	l.draw(opts)
	l.cancelResize = host.OnResize(l.reposition)
	return l, nil
}

// resolveSource reduces a Source to a host area and a flat item list.
// explicit reports whether the items were caller-supplied, in which case
// an empty list still produces a legend (labels without glyphs).
func resolveSource(r Renderer, src Source, opts *Options) (host *ChartArea, items []*SampleItem, explicit bool, err error) {
	disc, _ := r.(Discoverer)

	switch s := src.(type) {
	case hostSource:
		host = s.host
		if host == nil {
			return nil, nil, false, errors.New("nil host chart area")
		}
		if disc != nil {
			items = disc.DiscoverItems(host)
		}
		return host, items, false, nil
	case itemsSource:
		host = opts.Host
		if host == nil && disc != nil {
			host = disc.DiscoverHost()
		}
		if host == nil {
			return nil, nil, false, errors.New("no host chart area: bind one explicitly or use a discovering renderer")
		}
		return host, s.items, true, nil
	default: // autoSource
		host = opts.Host
		if host == nil && disc != nil {
			host = disc.DiscoverHost()
		}
		if host == nil || disc == nil {
			return host, nil, false, nil // no-op upstream
		}
		return host, disc.DiscoverItems(host), false, nil
	}
}

// draw paints the frame and every populated cell into the overlay, in
// legend-local coordinates.
func (l *Legend) draw(opts *Options) {
	if ti, ok := l.overlay.(TextInterpreter); ok {
		ti.SetTextInterpreter(opts.Interpreter)
	}
	if opts.BoxVisible {
		l.overlay.DrawFrame(opts.FillColor, opts.EdgeColor, opts.LineWidth)
	}
	for _, c := range l.cells {
		switch c.Kind {
		case CellColumnLabel, CellRowLabel:
			l.overlay.DrawText(c.X, c.Y, c.Text, opts.Font, c.Align)
		case CellSample:
			if c.Item == nil {
				continue
			}
			if c.Item.LineStyle != LineNone {
				l.overlay.DrawLine(c.LineX1, c.LineY, c.LineX2, c.LineY, c.Item)
			}
			if c.Item.Marker != "" && c.Item.Marker != MarkerNone {
				l.overlay.DrawMarker(c.MarkerX, c.MarkerY, c.Item)
			}
		}
	}
}

// reposition re-resolves the anchor against the now-current host bounds
// and moves the overlay. Geometry is not recomputed: label extents do not
// change when the container resizes.
func (l *Legend) reposition(bounds Rect) {
	if l.removed {
		return
	}
	p := resolveLocation(bounds, l.location, l.offset, l.geom.TotalWidth, l.geom.TotalHeight, l.outerMargin)
	if p.Mutated {
		l.host.SetBounds(p.Host)
	}
	l.preShrink = bounds
	l.corner = p
	l.overlay.MoveTo(p.X, p.Y)
}

// Geometry returns the computed legend geometry.
func (l *Legend) Geometry() *Geometry { return l.geom }

// Corner returns the current lower-left corner of the legend box in host
// pixel space.
func (l *Legend) Corner() (x, y float64) { return l.corner.X, l.corner.Y }

// Host returns the chart area the legend is anchored to.
func (l *Legend) Host() *ChartArea { return l.host }

// Remove cancels the resize subscription, tears the overlay down, and
// gives back the room an outside placement took from the plotting area.
// The room is restored only while the host bounds still match the shrink
// this legend committed; if something else changed them in between, they
// are left alone.
func (l *Legend) Remove() {
	if l.removed {
		return
	}
	l.removed = true
	if l.cancelResize != nil {
		l.cancelResize()
	}
	if l.corner.Mutated && l.host.Bounds() == l.corner.Host {
		l.host.SetBounds(l.preShrink)
	}
	l.overlay.Close()
	l.renderer.RemoveOverlay(l.host)
}

package gridlegend

import (
	"errors"
	"testing"
)

// The canonical end-to-end scenario: 2x2 grid, 7x13 rune extents, so the
// legend box is 123x47 pixels (see layout tests), host 400x300.

func placeTwoByTwo(t *testing.T, r *stubRenderer, opts *Options) *Legend {
	t.Helper()
	items := []*SampleItem{
		NewSampleItem(ColorRed),
		NewSampleItem(ColorGreen),
		NewSampleItem(ColorBlue),
		NewSampleItem(ColorBlack),
	}
	l, err := Place(r, BindItems(items...), []string{"A", "B"}, []string{"X", "Y"}, opts)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l == nil {
		t.Fatal("Place returned no legend for explicit items")
	}
	return l
}

func TestPlace_NortheastCorner(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, nil)

	x, y := l.Corner()
	if x != 400-10-123 || y != 300-10-47 {
		t.Errorf("corner (%g,%g), want (267,243)", x, y)
	}
	if host.Bounds() != (Rect{W: 400, H: 300}) {
		t.Errorf("inside placement changed host bounds: %+v", host.Bounds())
	}
	if r.overlay == nil {
		t.Fatal("no overlay created")
	}
	if r.overlay.frames != 1 {
		t.Errorf("frames drawn = %d, want 1", r.overlay.frames)
	}
	if len(r.overlay.texts) != 4 {
		t.Errorf("labels drawn = %d, want 4", len(r.overlay.texts))
	}
	if len(r.overlay.lines) != 4 {
		t.Errorf("sample lines drawn = %d, want 4", len(r.overlay.lines))
	}
}

func TestPlace_EastOutsideShrinksHost(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, DefaultOptions().SetLocation("eastoutside"))

	want := Rect{W: 400 - (123 + 10), H: 300}
	if host.Bounds() != want {
		t.Errorf("host bounds %+v, want %+v", host.Bounds(), want)
	}
	x, y := l.Corner()
	if x != 277 || y != 126.5 {
		t.Errorf("corner (%g,%g), want (277,126.5)", x, y)
	}
	// Legend stays flush with the original right edge.
	if x+123 != 400 {
		t.Errorf("legend right edge = %g, want 400", x+123)
	}
}

func TestPlace_SilentNoOp(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host} // no discoverable items
	l, err := Place(r, Discover(), []string{"A"}, []string{"X"}, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l != nil {
		t.Error("expected nil legend when discovery finds nothing")
	}
	if r.overlay != nil {
		t.Error("no-op placement created an overlay")
	}
}

func TestPlace_DiscoveredItems(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{
		host:  host,
		items: []*SampleItem{NewSampleItem(ColorRed), NewSampleItem(ColorBlue)},
	}
	l, err := Place(r, Discover(), []string{"A"}, []string{"X", "Y"}, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l == nil {
		t.Fatal("expected a legend for discovered items")
	}
	if len(r.overlay.lines) != 2 {
		t.Errorf("sample lines drawn = %d, want 2", len(r.overlay.lines))
	}
}

func TestPlace_BindHostDiscoversItems(t *testing.T) {
	bound := NewChartArea(Rect{W: 200, H: 150})
	r := &stubRenderer{
		host:  NewChartArea(Rect{W: 400, H: 300}), // must be ignored
		items: []*SampleItem{NewSampleItem(ColorRed)},
	}
	l, err := Place(r, BindHost(bound), []string{"A"}, []string{"X"}, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l == nil {
		t.Fatal("expected a legend")
	}
	if l.Host() != bound {
		t.Error("legend not anchored to the bound host")
	}
}

func TestPlace_OptionsHostOverride(t *testing.T) {
	custom := NewChartArea(Rect{W: 200, H: 150})
	r := &stubRenderer{host: NewChartArea(Rect{W: 400, H: 300})}
	l, err := Place(r, BindItems(NewSampleItem(ColorRed)), []string{"A"}, []string{"X"},
		DefaultOptions().SetHost(custom))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l.Host() != custom {
		t.Error("Options.Host did not override renderer discovery")
	}
}

func TestPlace_ExplicitEmptyItemsStillPlaces(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l, err := Place(r, BindItems(), []string{"A"}, []string{"X"}, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if l == nil {
		t.Fatal("explicit empty item list must still place labels")
	}
	if len(r.overlay.lines) != 0 {
		t.Errorf("sample lines drawn = %d, want 0", len(r.overlay.lines))
	}
	if len(r.overlay.texts) != 2 {
		t.Errorf("labels drawn = %d, want 2", len(r.overlay.texts))
	}
}

func TestPlace_TooManyItems(t *testing.T) {
	r := &stubRenderer{host: NewChartArea(Rect{W: 400, H: 300})}
	items := make([]*SampleItem, 5)
	for i := range items {
		items[i] = NewSampleItem(ColorBlack)
	}
	_, err := Place(r, BindItems(items...), []string{"A", "B"}, []string{"X", "Y"}, nil)
	if !errors.Is(err, ErrTooManyItems) {
		t.Errorf("err = %v, want ErrTooManyItems", err)
	}
}

func TestPlace_EmptyLabels(t *testing.T) {
	r := &stubRenderer{host: NewChartArea(Rect{W: 400, H: 300})}
	_, err := Place(r, BindItems(NewSampleItem(ColorRed)), nil, []string{"X"}, nil)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("err = %v, want ErrEmptyGrid", err)
	}
}

func TestPlace_OverlayCreationFailure(t *testing.T) {
	r := &stubRenderer{host: NewChartArea(Rect{W: 400, H: 300}), failCreate: true}
	_, err := Place(r, BindItems(NewSampleItem(ColorRed)), []string{"A"}, []string{"X"}, nil)
	if err == nil {
		t.Fatal("expected error from overlay creation")
	}
}

func TestPlace_OutsideOverlayFailureKeepsHost(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host, failCreate: true}
	items := []*SampleItem{
		NewSampleItem(ColorRed), NewSampleItem(ColorGreen),
		NewSampleItem(ColorBlue), NewSampleItem(ColorBlack),
	}
	_, err := Place(r, BindItems(items...), []string{"A", "B"}, []string{"X", "Y"},
		DefaultOptions().SetLocation("eastoutside"))
	if err == nil {
		t.Fatal("expected error from overlay creation")
	}
	// The failed placement must not have taken room from the plot.
	if host.Bounds() != (Rect{W: 400, H: 300}) {
		t.Errorf("host bounds after failed placement: %+v, want unchanged 400x300", host.Bounds())
	}
}

func TestPlace_ForwardsInterpreter(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	placeTwoByTwo(t, r, DefaultOptions().SetInterpreter(InterpreterTeX))
	if r.overlay.interp != InterpreterTeX {
		t.Errorf("overlay interpreter = %q, want %q", r.overlay.interp, InterpreterTeX)
	}
}

func TestPlace_ReplacesExistingOverlay(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	placeTwoByTwo(t, r, nil)
	placeTwoByTwo(t, r, nil)
	if r.removals < 2 {
		t.Errorf("RemoveOverlay calls = %d, want one per placement", r.removals)
	}
}

func TestLegend_ResizeRepositions(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, nil)
	geomBefore := l.Geometry()

	host.Resize(Rect{W: 500, H: 400})

	x, y := l.Corner()
	if x != 500-10-123 || y != 400-10-47 {
		t.Errorf("corner after resize (%g,%g), want (367,343)", x, y)
	}
	if r.overlay.moves != 1 {
		t.Errorf("MoveTo calls = %d, want 1", r.overlay.moves)
	}
	if l.Geometry() != geomBefore {
		t.Error("resize recomputed the geometry")
	}
}

func TestLegend_ResizeUnchangedBoundsKeepsCorner(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, nil)
	x0, y0 := l.Corner()

	host.Resize(host.Bounds())

	x1, y1 := l.Corner()
	if x0 != x1 || y0 != y1 {
		t.Errorf("no-op resize moved corner from (%g,%g) to (%g,%g)", x0, y0, x1, y1)
	}
}

func TestLegend_OutsideResizeReshrinks(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, DefaultOptions().SetLocation("eastoutside"))

	// The container grows back to full size; the legend takes its strip
	// from the new bounds again.
	host.Resize(Rect{W: 600, H: 300})

	want := Rect{W: 600 - (123 + 10), H: 300}
	if host.Bounds() != want {
		t.Errorf("host bounds %+v, want %+v", host.Bounds(), want)
	}
	x, _ := l.Corner()
	if x+123 != 600 {
		t.Errorf("legend right edge = %g, want 600", x+123)
	}
}

func TestLegend_Remove(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, nil)
	removalsBefore := r.removals

	l.Remove()
	if !r.overlay.closed {
		t.Error("overlay not closed")
	}
	if r.removals != removalsBefore+1 {
		t.Errorf("RemoveOverlay calls = %d, want %d", r.removals, removalsBefore+1)
	}

	// Resize after removal must not touch the dead overlay.
	moves := r.overlay.moves
	host.Resize(Rect{W: 800, H: 600})
	if r.overlay.moves != moves {
		t.Error("removed legend still repositions on resize")
	}

	l.Remove() // second removal is a no-op
	if r.removals != removalsBefore+1 {
		t.Error("double Remove tore down twice")
	}
}

func TestLegend_RemoveRestoresOutsideShrink(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, DefaultOptions().SetLocation("eastoutside"))
	if host.Bounds() != (Rect{W: 267, H: 300}) {
		t.Fatalf("host not shrunk: %+v", host.Bounds())
	}

	l.Remove()
	if host.Bounds() != (Rect{W: 400, H: 300}) {
		t.Errorf("host bounds after Remove: %+v, want restored 400x300", host.Bounds())
	}
}

func TestLegend_RemoveRestoresLatestResizeBounds(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, DefaultOptions().SetLocation("eastoutside"))

	host.Resize(Rect{W: 600, H: 300})
	if host.Bounds() != (Rect{W: 467, H: 300}) {
		t.Fatalf("host not re-shrunk: %+v", host.Bounds())
	}

	// Remove gives back the room against the resized bounds, not the
	// bounds at placement time.
	l.Remove()
	if host.Bounds() != (Rect{W: 600, H: 300}) {
		t.Errorf("host bounds after Remove: %+v, want 600x300", host.Bounds())
	}
}

func TestLegend_RemoveLeavesForeignBoundsAlone(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, DefaultOptions().SetLocation("eastoutside"))

	// Someone else rewrote the bounds behind the legend's back; Remove
	// must not clobber them with a stale restore.
	foreign := Rect{X: 10, Y: 10, W: 100, H: 100}
	host.SetBounds(foreign)
	l.Remove()
	if host.Bounds() != foreign {
		t.Errorf("host bounds after Remove: %+v, want untouched %+v", host.Bounds(), foreign)
	}
}

func TestLegend_RemoveInsidePlacementKeepsBounds(t *testing.T) {
	host := NewChartArea(Rect{W: 400, H: 300})
	r := &stubRenderer{host: host}
	l := placeTwoByTwo(t, r, nil)
	l.Remove()
	if host.Bounds() != (Rect{W: 400, H: 300}) {
		t.Errorf("inside placement Remove changed bounds: %+v", host.Bounds())
	}
}

// bareRenderer implements Renderer without the Discoverer capability.
type bareRenderer struct{ stub stubRenderer }

func (b *bareRenderer) MeasureText(text string, f *Font) Extent {
	return b.stub.MeasureText(text, f)
}

func (b *bareRenderer) CreateOverlay(host *ChartArea, bounds Rect) (Overlay, error) {
	return b.stub.CreateOverlay(host, bounds)
}

func (b *bareRenderer) RemoveOverlay(host *ChartArea) { b.stub.RemoveOverlay(host) }

func TestPlace_NoDiscovererNeedsExplicitHost(t *testing.T) {
	r := &bareRenderer{}
	_, err := Place(r, BindItems(NewSampleItem(ColorRed)), []string{"A"}, []string{"X"}, nil)
	if err == nil {
		t.Fatal("expected error without a host or discoverer")
	}

	host := NewChartArea(Rect{W: 400, H: 300})
	l, err := Place(r, BindItems(NewSampleItem(ColorRed)), []string{"A"}, []string{"X"},
		DefaultOptions().SetHost(host))
	if err != nil {
		t.Fatalf("Place with explicit host: %v", err)
	}
	if l == nil || l.Host() != host {
		t.Error("explicit host binding not honored")
	}
}

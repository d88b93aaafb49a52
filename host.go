package gridlegend

// ChartArea owns the pixel-space bounding box of the chart area a legend
// is anchored to. The legend has writer access to the bounds (outside
// placements shrink them) but does not assume exclusive ownership: two
// legends sharing one ChartArea are not coordinated and will clobber each
// other's shrink.
//
// A ChartArea is not safe for concurrent use; the layout model is
// single-threaded and resize delivery must be serialized by the host.
type ChartArea struct {
	bounds   Rect
	onResize func(Rect)
	subID    int
}

// NewChartArea creates a chart area with the given bounds.
func NewChartArea(bounds Rect) *ChartArea {
	return &ChartArea{bounds: bounds}
}

// Bounds returns the current chart-area rectangle.
func (c *ChartArea) Bounds() Rect { return c.bounds }

// SetBounds commits new bounds without notifying the resize callback.
// Outside placements use this to take room from the plotting area.
func (c *ChartArea) SetBounds(r Rect) { c.bounds = r }

// Resize commits new bounds and synchronously invokes the subscribed
// resize callback, if any. Each call runs to completion before the next;
// there is no debouncing or queuing.
func (c *ChartArea) Resize(r Rect) {
	c.bounds = r
	if c.onResize != nil {
		c.onResize(r)
	}
}

// OnResize subscribes the single resize callback for this container,
// replacing any previous one. The returned cancel func unsubscribes,
// unless another callback has replaced this one in the meantime.
func (c *ChartArea) OnResize(fn func(Rect)) (cancel func()) {
	c.subID++
	id := c.subID
	c.onResize = fn
	return func() {
		if c.subID == id {
			c.onResize = nil
		}
	}
}

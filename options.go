package gridlegend

import (
	"fmt"
	"strings"
)

// Layout constants (defaults, all pixels).
const (
	DefaultItemLineLength = 40
	DefaultMarginHeight   = 2
	DefaultMarginWidth    = 10
	DefaultPaddingHeight  = 2
	DefaultPaddingWidth   = 8
	DefaultOuterMargin    = 10
)

// Text interpreter modes. The mode is handed to overlays implementing
// TextInterpreter before labels are drawn; the bundled raster overlay
// draws labels literally in every mode.
const (
	InterpreterNone = "none"
	InterpreterTeX  = "tex"
)

// Options configures legend formatting and placement. The zero value is
// not useful; start from DefaultOptions.
type Options struct {
	// Alignments holds per-column horizontal alignment tokens
	// ("left", "center", "right"). A single entry broadcasts to every
	// column; exactly C entries get a leading "left" for the row-label
	// column; C+1 entries are used verbatim.
	Alignments []string

	// BoxVisible draws the legend background fill and frame.
	BoxVisible bool
	EdgeColor  Color
	FillColor  Color
	LineWidth  float64 // frame line width in pixels

	Font        *Font
	Interpreter string

	// ItemLineLength is the pixel length of each sample line segment.
	ItemLineLength float64

	MarginWidth   float64 // horizontal gap between columns
	MarginHeight  float64 // vertical gap between rows
	PaddingWidth  float64 // horizontal inset inside the legend box
	PaddingHeight float64 // vertical inset inside the legend box
	OuterMargin   float64 // inset from the host rectangle edges

	// Location is a placement keyword such as "northeast" or
	// "eastoutside"; full names and 1–3 letter abbreviations are
	// accepted, case-insensitive. Unrecognized keywords fall back to
	// northeast placement.
	Location string

	// Offset is added to the legend corner after all placement math.
	Offset Offset

	// Host binds the legend to an explicit chart area, overriding
	// renderer discovery for sources that do not carry a host.
	Host *ChartArea
}

// DefaultOptions returns options with the documented defaults.
func DefaultOptions() *Options {
	return &Options{
		BoxVisible:     true,
		EdgeColor:      ColorBlack,
		FillColor:      ColorWhite,
		LineWidth:      1,
		Font:           NewFont(),
		Interpreter:    InterpreterNone,
		ItemLineLength: DefaultItemLineLength,
		MarginWidth:    DefaultMarginWidth,
		MarginHeight:   DefaultMarginHeight,
		PaddingWidth:   DefaultPaddingWidth,
		PaddingHeight:  DefaultPaddingHeight,
		OuterMargin:    DefaultOuterMargin,
		Location:       "northeast",
	}
}

// SetAlignments sets the per-column alignment tokens.
func (o *Options) SetAlignments(aligns ...string) *Options {
	o.Alignments = aligns
	return o
}

// SetBoxVisible toggles the legend background and frame.
func (o *Options) SetBoxVisible(v bool) *Options {
	o.BoxVisible = v
	return o
}

// SetFont sets the label font.
func (o *Options) SetFont(f *Font) *Options {
	o.Font = f
	return o
}

// SetInterpreter sets the text interpreter mode.
func (o *Options) SetInterpreter(mode string) *Options {
	o.Interpreter = mode
	return o
}

// SetLocation sets the placement keyword.
func (o *Options) SetLocation(keyword string) *Options {
	o.Location = keyword
	return o
}

// SetOffset sets the pixel offset added to the final corner.
func (o *Options) SetOffset(dx, dy float64) *Options {
	o.Offset = Offset{DX: dx, DY: dy}
	return o
}

// SetOuterMargin sets the inset from the host rectangle edges.
func (o *Options) SetOuterMargin(m float64) *Options {
	o.OuterMargin = m
	return o
}

// SetItemLineLength sets the sample line length in pixels.
func (o *Options) SetItemLineLength(l float64) *Options {
	o.ItemLineLength = l
	return o
}

// SetHost binds an explicit host chart area.
func (o *Options) SetHost(h *ChartArea) *Options {
	o.Host = h
	return o
}

// normalizeAlignment validates one alignment token.
func normalizeAlignment(token string) (HAlign, error) {
	switch HAlign(strings.ToLower(strings.TrimSpace(token))) {
	case AlignLeft:
		return AlignLeft, nil
	case AlignCenter:
		return AlignCenter, nil
	case AlignRight:
		return AlignRight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAlignment, token)
}

// normalizeAlignments expands the alignment option into C+1 entries where
// index 0 is the row-label column. A single token broadcasts everywhere;
// C tokens get a leading left entry; C+1 tokens are used verbatim. Any
// other count is an error.
func normalizeAlignments(tokens []string, cols int) ([]HAlign, error) {
	out := make([]HAlign, cols+1)

	switch len(tokens) {
	case 0:
		for i := range out {
			out[i] = AlignLeft
		}
		return out, nil
	case 1:
		a, err := normalizeAlignment(tokens[0])
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = a
		}
		return out, nil
	case cols:
		out[0] = AlignLeft
		for i, tok := range tokens {
			a, err := normalizeAlignment(tok)
			if err != nil {
				return nil, err
			}
			out[i+1] = a
		}
		return out, nil
	case cols + 1:
		for i, tok := range tokens {
			a, err := normalizeAlignment(tok)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: got %d entries, want 1, %d, or %d", ErrAlignmentLengthMismatch, len(tokens), cols, cols+1)
}

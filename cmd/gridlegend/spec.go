package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/VantageDataChat/gridlegend"
)

// legendSpec is the TOML shape of a legend description.
//
//	rows = ["Series A", "Series B"]
//	cols = ["Trial 1", "Trial 2"]
//	location = "northeast"
//	align = ["left", "center", "center"]
//
//	[font]
//	name = "Helvetica"
//	size = 10
//
//	[[items]]
//	color = "#CC0000"
//	line = "solid"
//	marker = "circle"
type legendSpec struct {
	Rows     []string   `toml:"rows"`
	Cols     []string   `toml:"cols"`
	Location string     `toml:"location"`
	Align    []string   `toml:"align"`
	Box      *bool      `toml:"box"`
	Offset   []float64  `toml:"offset"`
	Font     fontSpec   `toml:"font"`
	Items    []itemSpec `toml:"items"`
}

type fontSpec struct {
	Name   string  `toml:"name"`
	Size   float64 `toml:"size"`
	Bold   bool    `toml:"bold"`
	Italic bool    `toml:"italic"`
}

type itemSpec struct {
	Color      string  `toml:"color"`
	Line       string  `toml:"line"`
	Width      float64 `toml:"width"`
	Marker     string  `toml:"marker"`
	MarkerSize float64 `toml:"marker_size"`
	EdgeColor  string  `toml:"edge_color"`
	FaceColor  string  `toml:"face_color"`
	Empty      bool    `toml:"empty"`
}

func loadSpec(path string) (*legendSpec, error) {
	var cfg legendSpec
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Rows) == 0 || len(cfg.Cols) == 0 {
		return nil, fmt.Errorf("spec needs at least one row and one column label")
	}
	return &cfg, nil
}

// build converts the decoded spec into library options and sample items.
func (c *legendSpec) build() (*gridlegend.Options, []*gridlegend.SampleItem, error) {
	opts := gridlegend.DefaultOptions()
	if c.Location != "" {
		opts.SetLocation(c.Location)
	}
	if len(c.Align) > 0 {
		opts.SetAlignments(c.Align...)
	}
	if c.Box != nil {
		opts.SetBoxVisible(*c.Box)
	}
	switch len(c.Offset) {
	case 0:
	case 2:
		opts.SetOffset(c.Offset[0], c.Offset[1])
	default:
		return nil, nil, fmt.Errorf("offset needs exactly two values, got %d", len(c.Offset))
	}

	font := gridlegend.NewFont()
	if c.Font.Name != "" {
		font.SetName(c.Font.Name)
	}
	if c.Font.Size > 0 {
		font.SetSize(c.Font.Size)
	}
	font.SetBold(c.Font.Bold).SetItalic(c.Font.Italic)
	opts.SetFont(font)

	items := make([]*gridlegend.SampleItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Empty {
			items = append(items, nil)
			continue
		}
		item := gridlegend.NewSampleItem(gridlegend.NewColor(it.Color))
		if it.Line != "" {
			item.SetLineStyle(gridlegend.LineStyle(it.Line))
		}
		if it.Width > 0 {
			item.SetLineWidth(it.Width)
		}
		if it.Marker != "" {
			item.SetMarker(it.Marker)
		}
		if it.MarkerSize > 0 {
			item.SetMarkerSize(it.MarkerSize)
		}
		if it.EdgeColor != "" || it.FaceColor != "" {
			var edge, face gridlegend.Color
			if it.EdgeColor != "" {
				edge = gridlegend.NewColor(it.EdgeColor)
			}
			if it.FaceColor != "" {
				face = gridlegend.NewColor(it.FaceColor)
			}
			item.SetMarkerColors(edge, face)
		}
		items = append(items, item)
	}
	return opts, items, nil
}

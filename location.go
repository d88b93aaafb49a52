package gridlegend

import "strings"

// axisAnchor selects which side of the host rectangle a coordinate is
// anchored to along one axis.
type axisAnchor int

const (
	anchorMin axisAnchor = iota
	anchorCenter
	anchorMax
)

// shrinkEdge names the host edge an outside placement takes room from.
type shrinkEdge int

const (
	shrinkNone shrinkEdge = iota
	shrinkLeft
	shrinkRight
	shrinkBottom
	shrinkTop
)

// locationSpec parameterizes the single placement formula in
// resolveLocation, so each keyword is one table row instead of a branch.
type locationSpec struct {
	h, v    axisAnchor
	outside bool
	edge    shrinkEdge
}

// locations maps every accepted keyword (full names and their 1–3 letter
// abbreviations, already lowercased) to its placement parameters.
// "best" and "bestoutside" are accepted but unresolved: they reuse the
// northeast and eastoutside math. Do not replace them with a real
// overlap-avoidance search.
var locations = map[string]locationSpec{
	"north":     {h: anchorCenter, v: anchorMax},
	"south":     {h: anchorCenter, v: anchorMin},
	"east":      {h: anchorMax, v: anchorCenter},
	"west":      {h: anchorMin, v: anchorCenter},
	"northeast": {h: anchorMax, v: anchorMax},
	"northwest": {h: anchorMin, v: anchorMax},
	"southeast": {h: anchorMax, v: anchorMin},
	"southwest": {h: anchorMin, v: anchorMin},

	"northoutside":     {h: anchorCenter, outside: true, edge: shrinkTop},
	"southoutside":     {h: anchorCenter, outside: true, edge: shrinkBottom},
	"eastoutside":      {v: anchorCenter, outside: true, edge: shrinkRight},
	"westoutside":      {v: anchorCenter, outside: true, edge: shrinkLeft},
	"northeastoutside": {v: anchorMax, outside: true, edge: shrinkRight},
	"northwestoutside": {v: anchorMax, outside: true, edge: shrinkLeft},
	"southeastoutside": {v: anchorMin, outside: true, edge: shrinkRight},
	"southwestoutside": {v: anchorMin, outside: true, edge: shrinkLeft},

	// Northeast and eastoutside fallbacks.
	"best":        {h: anchorMax, v: anchorMax},
	"bestoutside": {v: anchorCenter, outside: true, edge: shrinkRight},
}

// locationAliases maps short keyword forms to full names.
var locationAliases = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
	"no": "northoutside", "so": "southoutside", "eo": "eastoutside", "wo": "westoutside",
	"neo": "northeastoutside", "nwo": "northwestoutside",
	"seo": "southeastoutside", "swo": "southwestoutside",
	"b": "best", "bo": "bestoutside",
}

// Placement is the resolved legend corner plus the (possibly shrunk) host
// rectangle. Mutated reports whether the host lost room to an outside
// placement and must commit the new bounds.
type Placement struct {
	X, Y    float64
	Host    Rect
	Mutated bool
}

// anchorCoord places a box of the given size along one host axis: flush
// to either edge with an outerMargin inset, or centered.
func anchorCoord(a axisAnchor, min, hostSize, size, margin float64) float64 {
	switch a {
	case anchorCenter:
		return min + (hostSize-size)/2
	case anchorMax:
		return min + hostSize - margin - size
	default:
		return min + margin
	}
}

// resolveLocation translates a location keyword, host rectangle, legend
// box size, and outer margin into the absolute lower-left corner of the
// legend box. Outside keywords additionally shrink the host rectangle by
// size+outerMargin along the shrink edge and park the legend in the freed
// strip, flush with the host's original outer edge. The pixel offset is
// added last, after all other math. Unrecognized keywords place northeast.
func resolveLocation(host Rect, keyword string, off Offset, totalW, totalH, outerMargin float64) Placement {
	key := strings.ToLower(strings.TrimSpace(keyword))
	if full, ok := locationAliases[key]; ok {
		key = full
	}
	spec, ok := locations[key]
	if !ok {
		spec = locations["northeast"]
	}

	p := Placement{Host: host}
	m := outerMargin

	if spec.outside {
		switch spec.edge {
		case shrinkRight:
			p.Host.W -= totalW + m
			p.X = p.Host.Right() + m
			p.Y = anchorCoord(spec.v, p.Host.Y, p.Host.H, totalH, m)
		case shrinkLeft:
			p.Host.X += totalW + m
			p.Host.W -= totalW + m
			p.X = p.Host.X - m - totalW
			p.Y = anchorCoord(spec.v, p.Host.Y, p.Host.H, totalH, m)
		case shrinkTop:
			p.Host.H -= totalH + m
			p.Y = p.Host.Top() + m
			p.X = anchorCoord(spec.h, p.Host.X, p.Host.W, totalW, m)
		case shrinkBottom:
			p.Host.Y += totalH + m
			p.Host.H -= totalH + m
			p.Y = p.Host.Y - m - totalH
			p.X = anchorCoord(spec.h, p.Host.X, p.Host.W, totalW, m)
		}
		p.Mutated = true
	} else {
		p.X = anchorCoord(spec.h, host.X, host.W, totalW, m)
		p.Y = anchorCoord(spec.v, host.Y, host.H, totalH, m)
	}

	p.X += off.DX
	p.Y += off.DY
	return p
}

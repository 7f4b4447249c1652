package layout

import (
	"fmt"
	"math"
	"strings"
)

// Geometry is a page size and uniform margin in document units (mm for the
// default A4 page).
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

var A4 = Geometry{Width: 210, Height: 297, Margin: 20}

func (g Geometry) Validate() error {
	for _, v := range [...]float64{g.Width, g.Height, g.Margin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidGeometryError{Geometry: g}
		}
	}
	if g.Width <= 2*g.Margin || g.Height <= 2*g.Margin {
		return &InvalidGeometryError{Geometry: g}
	}
	return nil
}

// ContentWidth is the usable width between the side margins.
func (g Geometry) ContentWidth() float64 { return g.Width - 2*g.Margin }

// Bottom is the lowest y a block may reach before a page break.
func (g Geometry) Bottom() float64 { return g.Height - g.Margin }

type InvalidGeometryError struct {
	Geometry Geometry
}

func (e *InvalidGeometryError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid page geometry: %gx%g with margin %g leaves no content area",
		e.Geometry.Width, e.Geometry.Height, e.Geometry.Margin)
}

// Sections selects which parts of the plan are laid out.
type Sections uint8

const (
	SectionGuide Sections = 1 << iota
	SectionTimetable

	SectionBoth = SectionGuide | SectionTimetable
)

func (s Sections) Has(x Sections) bool { return s&x == x }

func (s Sections) String() string {
	switch s {
	case SectionGuide:
		return "guide"
	case SectionTimetable:
		return "timetable"
	case SectionBoth:
		return "both"
	default:
		return "none"
	}
}

// ParseSections accepts guide, timetable or both; empty means both.
func ParseSections(raw string) (Sections, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "both":
		return SectionBoth, nil
	case "guide":
		return SectionGuide, nil
	case "timetable":
		return SectionTimetable, nil
	default:
		return 0, fmt.Errorf("unknown section set %q (want guide, timetable or both)", raw)
	}
}

// Package render paints paginated draw commands into downloadable documents.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
)

type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown export format %q", raw)
	}
}

func (f Format) Extension() string { return string(f) }

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "application/pdf"
}

// Meta is document-level information written into the output.
type Meta struct {
	Title     string
	Subject   string
	CreatedAt time.Time
}

// Renderer measures text for the paginator and paints the resulting commands.
type Renderer interface {
	Format() Format
	Measure(text string, fontSize float64) float64
	Render(w io.Writer, cmds []layout.DrawCommand, geom layout.Geometry, meta Meta) error
}

// BoldMeasurer is implemented by renderers whose bold face has its own
// advance widths.
type BoldMeasurer interface {
	MeasureBold(text string, fontSize float64) float64
}

// pages groups commands by page index, preserving paint order. An empty
// command list still yields one blank page.
func pages(cmds []layout.DrawCommand) ([][]layout.DrawCommand, error) {
	n := 1
	for _, c := range cmds {
		if c.Page < 0 {
			return nil, fmt.Errorf("draw command has negative page %d", c.Page)
		}
		if c.Page+1 > n {
			n = c.Page + 1
		}
	}
	out := make([][]layout.DrawCommand, n)
	for _, c := range cmds {
		out[c.Page] = append(out[c.Page], c)
	}
	return out, nil
}

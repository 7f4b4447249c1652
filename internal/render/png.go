package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
)

const (
	DefaultPNGDPI = 96
	pageGapPx     = 16
)

// PNGRenderer rasterises every page and stacks them into a single tall image
// with a grey gutter between pages.
type PNGRenderer struct {
	fonts       *fonts.Set
	dpi         float64
	concurrency int
}

func NewPNGRenderer(fs *fonts.Set, dpi float64, concurrency int) *PNGRenderer {
	if dpi <= 0 {
		dpi = DefaultPNGDPI
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &PNGRenderer{fonts: fs, dpi: dpi, concurrency: concurrency}
}

func (r *PNGRenderer) Format() Format { return FormatPNG }

func (r *PNGRenderer) Measure(text string, fontSize float64) float64 {
	return r.fonts.Measure(text, fontSize)
}

func (r *PNGRenderer) MeasureBold(text string, fontSize float64) float64 {
	return r.fonts.Width(text, fontSize, true)
}

func (r *PNGRenderer) pxPerMM() float64 { return r.dpi / 25.4 }

func (r *PNGRenderer) Render(w io.Writer, cmds []layout.DrawCommand, geom layout.Geometry, _ Meta) error {
	img, err := r.RenderImage(context.Background(), cmds, geom)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderImage paints pages concurrently and composes them top to bottom.
func (r *PNGRenderer) RenderImage(ctx context.Context, cmds []layout.DrawCommand, geom layout.Geometry) (image.Image, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	grouped, err := pages(cmds)
	if err != nil {
		return nil, err
	}

	pageW := int(math.Ceil(geom.Width * r.pxPerMM()))
	pageH := int(math.Ceil(geom.Height * r.pxPerMM()))
	rendered := make([]image.Image, len(grouped))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, page := range grouped {
		i, page := i, page
		g.Go(func() error {
			rendered[i] = r.renderPage(page, pageW, pageH)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalH := len(rendered)*pageH + (len(rendered)-1)*pageGapPx
	out := image.NewRGBA(image.Rect(0, 0, pageW, totalH))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}}, image.Point{}, draw.Src)
	for i, p := range rendered {
		y := i * (pageH + pageGapPx)
		draw.Draw(out, image.Rect(0, y, pageW, y+pageH), p, image.Point{}, draw.Src)
	}
	return out, nil
}

func (r *PNGRenderer) renderPage(cmds []layout.DrawCommand, w, h int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	scale := r.pxPerMM()
	type faceKey struct {
		size float64
		bold bool
	}
	faces := map[faceKey]font.Face{}
	for _, c := range cmds {
		sizePx := c.FontSize * fonts.PointsToMM * scale
		k := faceKey{size: sizePx, bold: c.Bold}
		face, ok := faces[k]
		if !ok {
			face = r.fonts.NewFace(sizePx, c.Bold)
			faces[k] = face
		}
		dc.SetFontFace(face)
		dc.DrawString(c.Text, c.X*scale, c.Y*scale)
	}
	return dc.Image()
}

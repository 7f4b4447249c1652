package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
)

const pdfFontFamily = "studyguide"

// PDFRenderer writes one PDF page per draw-command page, in millimetres,
// embedding the font set so measured widths match what is printed.
type PDFRenderer struct {
	fonts *fonts.Set
}

func NewPDFRenderer(fs *fonts.Set) *PDFRenderer {
	return &PDFRenderer{fonts: fs}
}

func (r *PDFRenderer) Format() Format { return FormatPDF }

func (r *PDFRenderer) Measure(text string, fontSize float64) float64 {
	return r.fonts.Measure(text, fontSize)
}

func (r *PDFRenderer) MeasureBold(text string, fontSize float64) float64 {
	return r.fonts.Width(text, fontSize, true)
}

func (r *PDFRenderer) Render(w io.Writer, cmds []layout.DrawCommand, geom layout.Geometry, meta Meta) error {
	if err := geom.Validate(); err != nil {
		return err
	}
	grouped, err := pages(cmds)
	if err != nil {
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geom.Width, Ht: geom.Height},
	})
	pdf.SetMargins(geom.Margin, geom.Margin, geom.Margin)
	pdf.SetAutoPageBreak(false, geom.Margin)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", r.fonts.RegularTTF())
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", r.fonts.BoldTTF())
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator("studyguide-backend", true)
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
		pdf.SetModificationDate(meta.CreatedAt)
	}
	pdf.SetTextColor(0, 0, 0)

	for _, page := range grouped {
		pdf.AddPage()
		for _, c := range page {
			style := ""
			if c.Bold {
				style = "B"
			}
			pdf.SetFont(pdfFontFamily, style, c.FontSize)
			pdf.Text(c.X, c.Y, c.Text)
		}
		if pdf.Err() {
			break
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
)

func testFonts(t *testing.T) *fonts.Set {
	t.Helper()
	fs, err := fonts.Default()
	if err != nil {
		t.Fatalf("fonts.Default: %v", err)
	}
	return fs
}

func samplePlan() types.StudyPlan {
	return types.StudyPlan{
		Subject:     "Chemistry",
		HoursPerDay: 2,
		TotalDays:   2,
		Overview:    "Atoms, bonds and reactions.",
		Topics: []types.Topic{
			{Title: "Atoms", Summary: "Structure of the atom", Priority: types.PriorityHigh, Difficulty: types.DifficultyEasy, EstimatedHours: 2, KeyPoints: []string{"Protons", "Electrons"}},
		},
		Timetable: []types.Day{
			{Sessions: []types.Session{{Topic: "Atoms", Duration: 2, Priority: types.PriorityHigh, Description: "Study Atoms"}}},
		},
	}
}

func layoutFor(t *testing.T, r Renderer) []layout.DrawCommand {
	t.Helper()
	fixed := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	p := layout.New(r.Measure, layout.WithClock(func() time.Time { return fixed }))
	cmds, err := p.Paginate(samplePlan(), layout.A4, layout.SectionBoth)
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	return cmds
}

func TestMeasureBoldUsesBoldFace(t *testing.T) {
	fs := testFonts(t)
	for _, r := range []Renderer{NewPDFRenderer(fs), NewPNGRenderer(fs, DefaultPNGDPI, 1)} {
		bm, ok := r.(BoldMeasurer)
		if !ok {
			t.Fatalf("%s renderer does not measure bold text", r.Format())
		}
		text := "Chemistry Study Plan"
		if got, want := bm.MeasureBold(text, 24), fs.Width(text, 24, true); got != want {
			t.Fatalf("%s MeasureBold = %v, want %v", r.Format(), got, want)
		}
	}
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer(testFonts(t))
	cmds := layoutFor(t, r)

	var buf bytes.Buffer
	err := r.Render(&buf, cmds, layout.A4, Meta{Title: "Chemistry Study Plan", CreatedAt: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestPNGRendererStacksPages(t *testing.T) {
	r := NewPNGRenderer(testFonts(t), 50, 2)
	cmds := layoutFor(t, r)
	n := layout.PageCount(cmds)
	if n != 2 {
		t.Fatalf("expected 2 pages (forced timetable break), got %d", n)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, cmds, layout.A4, Meta{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pageH := int(math.Ceil(297 * 50 / 25.4))
	wantH := n*pageH + (n-1)*pageGapPx
	if img.Bounds().Dy() != wantH {
		t.Fatalf("height = %d, want %d", img.Bounds().Dy(), wantH)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	r := NewPDFRenderer(testFonts(t))
	if err := r.Render(&bytes.Buffer{}, nil, layout.Geometry{Width: 10, Height: 10, Margin: 20}, Meta{}); err == nil {
		t.Fatalf("expected geometry error")
	}
	bad := []layout.DrawCommand{{Page: -1, Text: "x", FontSize: 10}}
	if err := r.Render(&bytes.Buffer{}, bad, layout.A4, Meta{}); err == nil {
		t.Fatalf("expected negative page error")
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatPDF, "PDF": FormatPDF, "png": FormatPNG}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatalf("expected error for docx")
	}
	if FormatPNG.ContentType() != "image/png" || FormatPDF.ContentType() != "application/pdf" {
		t.Fatalf("content types wrong")
	}
}

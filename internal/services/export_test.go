package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/generator"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/apierr"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/render"
)

func exportPlan(t *testing.T) types.StudyPlan {
	t.Helper()
	plan, err := generator.New(nil).Generate(context.Background(), types.StudyRequest{Subject: "Linear Algebra", HoursPerDay: 2, TotalDays: 4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return plan
}

func newExportService(t *testing.T, geom layout.Geometry) ExportService {
	t.Helper()
	fs, err := fonts.Default()
	if err != nil {
		t.Fatalf("fonts.Default: %v", err)
	}
	return NewExportService(logger.Nop(), geom, nil,
		render.NewPDFRenderer(fs),
		render.NewPNGRenderer(fs, render.DefaultPNGDPI, 2),
	)
}

func TestExportPDFAndPNG(t *testing.T) {
	svc := newExportService(t, layout.A4)
	plan := exportPlan(t)

	pdf, err := svc.Export(context.Background(), plan, layout.SectionBoth, render.FormatPDF)
	if err != nil {
		t.Fatalf("Export pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf.Body, []byte("%PDF-")) {
		t.Fatalf("expected PDF header")
	}
	if pdf.ContentType != "application/pdf" || pdf.Pages < 1 {
		t.Fatalf("unexpected artifact: type=%s pages=%d", pdf.ContentType, pdf.Pages)
	}
	if !strings.HasPrefix(pdf.Filename, "linear_algebra_study_both_") || !strings.HasSuffix(pdf.Filename, ".pdf") {
		t.Fatalf("filename = %q", pdf.Filename)
	}

	png, err := svc.Export(context.Background(), plan, layout.SectionTimetable, render.FormatPNG)
	if err != nil {
		t.Fatalf("Export png: %v", err)
	}
	if !bytes.HasPrefix(png.Body, []byte("\x89PNG")) {
		t.Fatalf("expected PNG header")
	}
}

func TestExportRejectsBadGeometry(t *testing.T) {
	svc := newExportService(t, layout.Geometry{Width: 30, Height: 30, Margin: 20})
	_, err := svc.Export(context.Background(), exportPlan(t), layout.SectionBoth, render.FormatPDF)
	ae, ok := apierr.As(err)
	if !ok || ae.Status != http.StatusBadRequest || ae.Code != "invalid_geometry" {
		t.Fatalf("expected 400 invalid_geometry, got %v", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	svc := NewExportService(logger.Nop(), layout.A4, nil)
	_, err := svc.Export(context.Background(), exportPlan(t), layout.SectionBoth, render.FormatPNG)
	if ae, ok := apierr.As(err); !ok || ae.Code != "unsupported_format" {
		t.Fatalf("expected unsupported_format, got %v", err)
	}
}

func TestLayoutWithoutRenderers(t *testing.T) {
	svc := NewExportService(logger.Nop(), layout.A4, nil)
	res, err := svc.Layout(context.Background(), exportPlan(t), layout.SectionGuide)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if res.Pages < 1 || len(res.Commands) == 0 {
		t.Fatalf("unexpected layout: pages=%d commands=%d", res.Pages, len(res.Commands))
	}
	if res.Commands[0].Page != 0 {
		t.Fatalf("first command on page %d", res.Commands[0].Page)
	}
}

func TestExportFilename(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	got := ExportFilename("C++ & Go!", layout.SectionGuide, render.FormatPNG, at)
	if got != "c_____go__study_guide_1700000000123.png" {
		t.Fatalf("filename = %q", got)
	}
}

func TestExportFilenameNonASCIISubject(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"İstanbul 😀": "_stanbul___study_guide_1700000000123.pdf",
		"ÄBC":        "_bc_study_guide_1700000000123.pdf",
		"Go 2":       "go_2_study_guide_1700000000123.pdf",
	}
	for subject, want := range cases {
		if got := ExportFilename(subject, layout.SectionGuide, render.FormatPDF, at); got != want {
			t.Fatalf("ExportFilename(%q) = %q, want %q", subject, got, want)
		}
	}
}

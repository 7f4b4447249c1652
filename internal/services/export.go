package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/observability"
	"github.com/yungbote/studyguide-backend/internal/platform/apierr"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/render"
)

// Artifact is a rendered document ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Pages       int
	Body        []byte
}

// LayoutResult is the raw pagination of a plan.
type LayoutResult struct {
	Pages    int                  `json:"pages"`
	Geometry layout.Geometry      `json:"geometry"`
	Commands []layout.DrawCommand `json:"commands"`
}

type ExportService interface {
	Export(ctx context.Context, plan types.StudyPlan, sections layout.Sections, format render.Format) (*Artifact, error)
	Layout(ctx context.Context, plan types.StudyPlan, sections layout.Sections) (*LayoutResult, error)
}

type exportService struct {
	log       *logger.Logger
	renderers map[render.Format]render.Renderer
	geometry  layout.Geometry
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewExportService(baseLog *logger.Logger, geometry layout.Geometry, metrics *observability.Metrics, renderers ...render.Renderer) ExportService {
	byFormat := make(map[render.Format]render.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &exportService{
		log:       baseLog.With("service", "ExportService"),
		renderers: byFormat,
		geometry:  geometry,
		metrics:   metrics,
		now:       time.Now,
	}
}

// paginator measures with r, or with ApproxMeasure when r is nil.
func (s *exportService) paginator(r render.Renderer) *layout.Paginator {
	if r == nil {
		return layout.New(layout.ApproxMeasure, layout.WithClock(s.now))
	}
	opts := []layout.Option{layout.WithClock(s.now)}
	if bm, ok := r.(render.BoldMeasurer); ok {
		opts = append(opts, layout.WithBoldMeasure(bm.MeasureBold))
	}
	return layout.New(r.Measure, opts...)
}

func (s *exportService) Export(ctx context.Context, plan types.StudyPlan, sections layout.Sections, format render.Format) (*Artifact, error) {
	start := time.Now()
	r, ok := s.renderers[format]
	if !ok {
		return nil, apierr.BadRequest("unsupported_format", fmt.Errorf("export format %q is not available", format))
	}

	cmds, err := s.paginator(r).Paginate(plan, s.geometry, sections)
	if err != nil {
		s.metrics.ObserveExport(string(format), sections.String(), "error", time.Since(start))
		return nil, geometryError(err)
	}

	now := s.now()
	var buf bytes.Buffer
	meta := render.Meta{Title: plan.Subject + " Study Plan", Subject: plan.Subject, CreatedAt: now}
	if err := r.Render(&buf, cmds, s.geometry, meta); err != nil {
		s.metrics.ObserveExport(string(format), sections.String(), "error", time.Since(start))
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	s.metrics.ObserveExport(string(format), sections.String(), "ok", time.Since(start))

	pages := layout.PageCount(cmds)
	s.log.Info("Study plan exported", "subject", plan.Subject, "format", format, "sections", sections.String(), "pages", pages, "bytes", buf.Len())
	return &Artifact{
		Filename:    ExportFilename(plan.Subject, sections, format, now),
		ContentType: format.ContentType(),
		Pages:       pages,
		Body:        buf.Bytes(),
	}, nil
}

func (s *exportService) Layout(ctx context.Context, plan types.StudyPlan, sections layout.Sections) (*LayoutResult, error) {
	cmds, err := s.paginator(s.renderers[render.FormatPDF]).Paginate(plan, s.geometry, sections)
	if err != nil {
		return nil, geometryError(err)
	}
	return &LayoutResult{Pages: layout.PageCount(cmds), Geometry: s.geometry, Commands: cmds}, nil
}

func geometryError(err error) error {
	var ge *layout.InvalidGeometryError
	if errors.As(err, &ge) {
		return apierr.BadRequest("invalid_geometry", ge)
	}
	return err
}

var unsafeFilenameChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

// ExportFilename is "<subject>_study_<sections>_<unix ms>.<ext>". Every rune
// of the subject outside ASCII letters and digits becomes "_" before the
// result is lowercased.
func ExportFilename(subject string, sections layout.Sections, format render.Format, at time.Time) string {
	safe := strings.ToLower(unsafeFilenameChars.ReplaceAllString(subject, "_"))
	return fmt.Sprintf("%s_study_%s_%d.%s", safe, sections.String(), at.UnixMilli(), format.Extension())
}

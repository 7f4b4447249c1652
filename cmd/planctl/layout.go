package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/fonts"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/render"
	"github.com/yungbote/studyguide-backend/internal/services"
)

type pageFlags struct {
	width, height, margin float64
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&p.width, "page-width", layout.A4.Width, "Page width in mm")
	cmd.Flags().Float64Var(&p.height, "page-height", layout.A4.Height, "Page height in mm")
	cmd.Flags().Float64Var(&p.margin, "margin", layout.A4.Margin, "Page margin in mm")
}

func (p pageFlags) geometry() layout.Geometry {
	return layout.Geometry{Width: p.width, Height: p.height, Margin: p.margin}
}

func newExportService(log *logger.Logger, geom layout.Geometry) (services.ExportService, error) {
	fs, err := fonts.Default()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	return services.NewExportService(log, geom, nil,
		render.NewPDFRenderer(fs),
		render.NewPNGRenderer(fs, render.DefaultPNGDPI, 4),
	), nil
}

func newLayoutCmd(logFor func() *logger.Logger) *cobra.Command {
	var (
		planPath string
		kind     string
		page     pageFlags
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the paginated draw commands for a plan as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sections, err := layout.ParseSections(kind)
			if err != nil {
				return err
			}
			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			svc, err := newExportService(logFor(), page.geometry())
			if err != nil {
				return err
			}
			res, err := svc.Layout(cmd.Context(), plan, sections)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Plan file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&kind, "type", "t", "both", "Sections: guide, timetable or both")
	page.register(cmd)
	return cmd
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/layout"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
	"github.com/yungbote/studyguide-backend/internal/render"
)

func newExportCmd(logFor func() *logger.Logger) *cobra.Command {
	var (
		planPath string
		kind     string
		format   string
		outPath  string
		page     pageFlags
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a plan to PDF or PNG",
		Long: `Renders the plan and writes it to --out. When --out is a directory, or is
omitted, the generated file name is used inside it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sections, err := layout.ParseSections(kind)
			if err != nil {
				return err
			}
			f, err := render.ParseFormat(format)
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
			art, err := svc.Export(cmd.Context(), plan, sections, f)
			if err != nil {
				return err
			}

			dest := outPath
			if dest == "" {
				dest = art.Filename
			} else if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
				dest = filepath.Join(dest, art.Filename)
			}
			if err := os.WriteFile(dest, art.Body, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages, %d bytes)\n", dest, art.Pages, len(art.Body))
			return nil
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Plan file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&kind, "type", "t", "both", "Sections: guide, timetable or both")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format: pdf or png")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file or directory")
	page.register(cmd)
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Validate, lay out and export study plan files",
		Long:          `planctl works on study plans stored as JSON or YAML files, without a running server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	logFor := func() *logger.Logger {
		if !verbose {
			return logger.Nop()
		}
		log, err := logger.New("development")
		if err != nil {
			return logger.Nop()
		}
		return log
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newLayoutCmd(logFor))
	root.AddCommand(newExportCmd(logFor))
	return root
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/studyguide-backend/internal/modules/studyplan/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		planPath string
		subject  string
		hours    float64
		days     int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a plan against a daily hour budget",
		Long: `Runs the same checks the server applies to a generated plan. Subject and
hours default to the values stored in the plan file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			in := validation.Input{Subject: plan.Subject, HoursPerDay: plan.HoursPerDay, TotalDays: plan.TotalDays}
			if cmd.Flags().Changed("subject") {
				in.Subject = subject
			}
			if cmd.Flags().Changed("hours") {
				in.HoursPerDay = hours
			}
			if cmd.Flags().Changed("days") {
				in.TotalDays = days
			}

			v := validation.Validate(in, plan)
			out := cmd.OutOrStdout()
			if v.Accepted {
				fmt.Fprintf(out, "accepted: %d topics, %d days, busiest day %gh of %gh\n",
					len(plan.Topics), len(plan.Timetable), validation.MaxDailyHours(plan.Timetable), in.HoursPerDay)
				return nil
			}
			fmt.Fprintf(out, "rejected (%s): %s\n", v.Reason.Code(), v.Reason.Message())
			return v.Err()
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Plan file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject to validate against")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Daily hour budget")
	cmd.Flags().IntVar(&days, "days", 0, "Number of study days")
	return cmd
}

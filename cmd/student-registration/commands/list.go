package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-registration/internal/report"
	"github.com/aanand-mishra/student-registration/internal/utils/status"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every registered student",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := report.ParseFormat(format)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			students, err := a.service.List(cmd.Context())
			if st := status.List(students, err); st.IsError() {
				return errors.New(st.Message)
			}

			f, _ := report.ParseFormat(format)
			return report.Write(cmd.OutOrStdout(), f, students)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table, json or yaml")

	return cmd
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-registration/internal/utils/status"
)

func newRegisterCmd(a *app) *cobra.Command {
	var name, roll, course, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register one student without the form",
		Example: `  student-registration register --name "Ada Lovelace" --roll 1001 \
    --course CS101 --email ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			student, err := a.service.Register(cmd.Context(), name, roll, course, email)
			st := status.Register(student, err)
			if st.IsError() {
				return errors.New(st.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), st.Message)
			return nil
		},
	}

	// Empty values are reported by validation, not by cobra, so the user
	// sees the same message as on the form.
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&roll, "roll", "", "Roll number (digits only)")
	cmd.Flags().StringVar(&course, "course", "", "Course")
	cmd.Flags().StringVar(&email, "email", "", "Email address")

	return cmd
}

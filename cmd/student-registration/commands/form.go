package commands

import (
	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-registration/internal/tui"
)

const formTitle = "Student Registration Form"

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive registration form (default)",
		Long: `Open the interactive registration form.

Keys:
  tab/↓, shift+tab/↑   move between fields
  enter, ctrl+s        register the student
  ctrl+l               print all registered students above the form
  esc, ctrl+c          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runForm()
		},
	}
}

func (a *app) runForm() error {
	return tui.Run(formTitle, a.service)
}

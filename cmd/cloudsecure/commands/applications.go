package commands

import (
	"github.com/spf13/cobra"
)

// NewApplicationsCommand creates the applications command group.
func NewApplicationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Manage applications",
		Long:    "List discovered cloud applications",
	}

	cmd.AddCommand(newApplicationsListCommand())

	return cmd
}

func newApplicationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			api, err := client.Resource("applications")
			if err != nil {
				return err
			}

			applications, err := api.GetAll(cmd.Context(), nil)
			if err != nil {
				return err
			}

			return RenderOutput(applications)
		},
	}
}

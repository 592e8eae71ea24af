package commands

import (
	"fmt"

	"github.com/cloudsec-io/cloudsecure/internal/constants"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check connection",
		Long:  "Verify that the API endpoint is reachable with the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			opts := &cloudsecure.RequestOptions{Timeout: constants.ShortHTTPTimeout}
			if !client.CheckConnection(cmd.Context(), opts) {
				return ErrConnectionFailed
			}

			fmt.Println("Connection successful")

			return nil
		},
	}
}

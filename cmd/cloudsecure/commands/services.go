package commands

import (
	"fmt"
	"os"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/spf13/cobra"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Manage services",
		Long:    "List and import service policy objects",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesImportCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var policyVersion string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.Get(cmd.Context(), fmt.Sprintf("/sec_policy/%s/services", policyVersion), nil)
			if err != nil {
				return err
			}

			return RenderBody(body)
		},
	}

	cmd.Flags().StringVar(&policyVersion, "policy-version", string(cloudsecure.PolicyDraft), "policy version (draft or active)")

	return cmd
}

func newServicesImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import services from a JSON file",
		Long:  "Create every service from the file that has ports defined and does not already exist in the draft policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return ErrInputFileRequired
			}

			var services []cloudsecure.Service

			err := readJSONFile(file, &services)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			existing, err := existingNames(cmd, client, "/sec_policy/draft/services", "services")
			if err != nil {
				return err
			}

			api, err := client.Resource("services")
			if err != nil {
				return err
			}

			for i := range services {
				service := &services[i]

				if len(service.ServicePorts) == 0 {
					continue
				}

				if existing[service.Name] {
					fmt.Printf("Service %q already exists, skipping\n", service.Name)

					continue
				}

				if service.Description == "" {
					service.Description = "No description provided"
				}

				_, err := api.Create(cmd.Context(), service, nil)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to create service %q: %v\n", service.Name, err)

					continue
				}

				fmt.Printf("Created service %q\n", service.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with a list of service definitions")

	return cmd
}

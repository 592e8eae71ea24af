package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/spf13/cobra"
)

// NewIPListsCommand creates the iplists command group.
func NewIPListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iplists",
		Aliases: []string{"iplist", "ipl"},
		Short:   "Manage IP lists",
		Long:    "List, create, and import IP list policy objects",
	}

	cmd.AddCommand(newIPListsListCommand())
	cmd.AddCommand(newIPListsCreateCommand())
	cmd.AddCommand(newIPListsImportCommand())

	return cmd
}

func newIPListsListCommand() *cobra.Command {
	var policyVersion string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List IP lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.Get(cmd.Context(), fmt.Sprintf("/sec_policy/%s/ip_lists", policyVersion), nil)
			if err != nil {
				return err
			}

			return RenderBody(body)
		},
	}

	cmd.Flags().StringVar(&policyVersion, "policy-version", string(cloudsecure.PolicyActive), "policy version (draft or active)")

	return cmd
}

func newIPListsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an IP list from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return ErrInputFileRequired
			}

			var ipList cloudsecure.IPList

			err := readJSONFile(file, &ipList)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			api, err := client.Resource("ip_lists")
			if err != nil {
				return err
			}

			created, err := api.Create(cmd.Context(), &ipList, nil)
			if err != nil {
				return err
			}

			return RenderOutput(created)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the IP list definition")

	return cmd
}

func newIPListsImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import IP lists from a JSON file",
		Long:  "Create every IP list from the file that does not already exist in the draft policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return ErrInputFileRequired
			}

			var ipLists []cloudsecure.IPList

			err := readJSONFile(file, &ipLists)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			existing, err := existingNames(cmd, client, "/sec_policy/draft/ip_lists", "ip_lists")
			if err != nil {
				return err
			}

			api, err := client.Resource("ip_lists")
			if err != nil {
				return err
			}

			for i := range ipLists {
				ipList := &ipLists[i]

				if existing[ipList.Name] {
					fmt.Printf("IP list %q already exists, skipping\n", ipList.Name)

					continue
				}

				_, err := api.Create(cmd.Context(), ipList, nil)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to create IP list %q: %v\n", ipList.Name, err)

					continue
				}

				fmt.Printf("Created IP list %q\n", ipList.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with a list of IP list definitions")

	return cmd
}

// readJSONFile decodes one JSON file into out.
func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

// existingNames fetches a draft policy collection and indexes the object
// names it already contains. The response may be either a bare list or a
// mapping keyed by the resource name.
func existingNames(cmd *cobra.Command, client cloudsecure.Client, endpoint, key string) (map[string]bool, error) {
	body, err := client.Get(cmd.Context(), endpoint, nil)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)

	var objects []struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(body, &objects); err != nil {
		var keyed map[string]json.RawMessage

		if err := json.Unmarshal(body, &keyed); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", endpoint, err)
		}

		if raw, ok := keyed[key]; ok {
			if err := json.Unmarshal(raw, &objects); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", endpoint, err)
			}
		}
	}

	for _, object := range objects {
		if object.Name != "" {
			names[object.Name] = true
		}
	}

	return names, nil
}

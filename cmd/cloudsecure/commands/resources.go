package commands

import (
	"net/url"
	"strings"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/spf13/cobra"
)

// ResourcesListOptions holds the filters for listing inventory resources.
type ResourcesListOptions struct {
	Limit       int
	Clouds      string
	ObjectTypes string
	AccountIDs  string
}

// NewResourcesCommand creates the resources command group.
func NewResourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Inspect inventory resources",
		Long:  "Query the discovered cloud resource inventory",
	}

	cmd.AddCommand(newResourcesListCommand())
	cmd.AddCommand(newResourcesObjectTypesCommand())

	return cmd
}

func newResourcesListCommand() *cobra.Command {
	var opts ResourcesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"max_results": opts.Limit,
				"sortBy": map[string]interface{}{
					"asc":   true,
					"field": "STATE",
				},
			}

			if opts.Clouds != "" {
				payload["clouds"] = strings.Split(opts.Clouds, ",")
			}

			if opts.ObjectTypes != "" {
				payload["object_types"] = strings.Split(opts.ObjectTypes, ",")
			}

			if opts.AccountIDs != "" {
				payload["account_ids"] = strings.Split(opts.AccountIDs, ",")
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			body, err := client.Post(cmd.Context(), "/bridge/resources", payload, nil)
			if err != nil {
				return err
			}

			return RenderBody(body)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum number of resources")
	cmd.Flags().StringVar(&opts.Clouds, "clouds", "aws", "comma-separated cloud providers")
	cmd.Flags().StringVar(&opts.ObjectTypes, "object-types", "", "comma-separated resource object types")
	cmd.Flags().StringVar(&opts.AccountIDs, "account-ids", "", "comma-separated account IDs")

	return cmd
}

func newResourcesObjectTypesCommand() *cobra.Command {
	var clouds string

	cmd := &cobra.Command{
		Use:   "object-types",
		Short: "List resource object types",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := url.Values{}
			params.Set("clouds", clouds)
			params.Set("metadata_type", "OBJECTTYPE")

			body, err := client.Get(cmd.Context(), "/inventory/metadata", &cloudsecure.RequestOptions{Params: params})
			if err != nil {
				return err
			}

			return RenderBody(body)
		},
	}

	cmd.Flags().StringVar(&clouds, "clouds", "aws", "comma-separated cloud providers")

	return cmd
}

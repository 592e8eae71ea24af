package commands

import (
	"fmt"
	"strings"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/spf13/cobra"
)

// NewOnboardingCommand creates the onboarding command group.
func NewOnboardingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Onboard cloud accounts",
		Long:  "Register cloud flow-log destinations for ingestion",
	}

	cmd.AddCommand(newOnboardAWSS3Command())
	cmd.AddCommand(newOnboardAzureStorageCommand())

	return cmd
}

func newOnboardAWSS3Command() *cobra.Command {
	var (
		accountID string
		arns      string
	)

	cmd := &cobra.Command{
		Use:   "aws-s3",
		Short: "Onboard S3 flow-log buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			credential := &cloudsecure.CloudCredential{
				Type:         "AWSFlow",
				AccountID:    accountID,
				Destinations: strings.Split(arns, ","),
			}

			return createCredential(cmd, credential,
				fmt.Sprintf("S3 buckets %s on account %s", arns, accountID))
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "AWS account ID")
	cmd.Flags().StringVar(&arns, "arns", "", "comma-separated S3 bucket ARNs")
	_ = cmd.MarkFlagRequired("account-id")
	_ = cmd.MarkFlagRequired("arns")

	return cmd
}

func newOnboardAzureStorageCommand() *cobra.Command {
	var (
		subscriptionID string
		storageAccount string
	)

	cmd := &cobra.Command{
		Use:   "azure-storage",
		Short: "Onboard an Azure flow-log storage account",
		RunE: func(cmd *cobra.Command, args []string) error {
			credential := &cloudsecure.CloudCredential{
				Type:           "AzureFlow",
				SubscriptionID: subscriptionID,
				Destinations:   []string{storageAccount},
			}

			return createCredential(cmd, credential,
				fmt.Sprintf("storage account %s on subscription %s", storageAccount, subscriptionID))
		},
	}

	cmd.Flags().StringVar(&subscriptionID, "subscription-id", "", "Azure subscription ID")
	cmd.Flags().StringVar(&storageAccount, "storage-account", "", "storage account name")
	_ = cmd.MarkFlagRequired("subscription-id")
	_ = cmd.MarkFlagRequired("storage-account")

	return cmd
}

func createCredential(cmd *cobra.Command, credential *cloudsecure.CloudCredential, what string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	api, err := client.Resource("cloud_credentials")
	if err != nil {
		return err
	}

	_, err = api.Create(cmd.Context(), credential, nil)
	if err != nil {
		return fmt.Errorf("onboarding %s: %w", what, err)
	}

	fmt.Println("Successfully onboarded", what)

	return nil
}

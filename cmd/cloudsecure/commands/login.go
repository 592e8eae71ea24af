package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cloudsec-io/cloudsecure/internal/constants"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/cloudsec-io/cloudsecure/pkg/csclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiURL   string
		tenantID string
		key      string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for the CloudSecure API",
		Long:  "Verify service account credentials against an API endpoint and save them to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			if apiURL == "" {
				apiURL = viper.GetString("api-url")
			}

			if apiURL == "" {
				fmt.Print("API endpoint: ")
				apiURL, _ = reader.ReadString('\n')
				apiURL = strings.TrimSpace(apiURL)
			}

			if apiURL == "" {
				return ErrAPIURLRequired
			}

			if tenantID == "" {
				tenantID = viper.GetString("tenant-id")
			}

			if tenantID == "" {
				fmt.Print("Tenant ID: ")
				tenantID, _ = reader.ReadString('\n')
				tenantID = strings.TrimSpace(tenantID)
			}

			if tenantID == "" {
				return ErrTenantIDRequired
			}

			if key == "" {
				fmt.Print("Service account key: ")
				key, _ = reader.ReadString('\n')
				key = strings.TrimSpace(key)
			}

			if token == "" {
				fmt.Print("Service account token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = string(byteToken)

				fmt.Println()
			}

			if key == "" || token == "" {
				return ErrCredentialsRequired
			}

			client, err := csclient.New(&cloudsecure.Config{
				Endpoint:            apiURL,
				TenantID:            tenantID,
				ServiceAccountKey:   key,
				ServiceAccountToken: token,
			})
			if err != nil {
				return err
			}

			err = client.MustConnect(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			err = saveConfig(apiURL, tenantID, key, token)
			if err != nil {
				return err
			}

			fmt.Println("Login successful")

			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "API endpoint URL")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "tenant ID")
	cmd.Flags().StringVar(&key, "service-account-key", "", "service account key ID")
	cmd.Flags().StringVar(&token, "service-account-token", "", "service account token")

	return cmd
}

// saveConfig writes the verified credentials to the default config file.
func saveConfig(apiURL, tenantID, key, token string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".cloudsecure")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	config := map[string]string{
		"api-url":               apiURL,
		"tenant-id":             tenantID,
		"service-account-key":   key,
		"service-account-token": token,
	}

	encoded, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")

	err = os.WriteFile(configPath, encoded, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println("Saved config to", configPath)

	return nil
}

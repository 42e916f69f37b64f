package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/extsecrets/internal/config"
	extserrors "github.com/systmms/extsecrets/internal/errors"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		storeName  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get <secret-name>",
		Short: "Get a single secret value",
		Long: `Sync the named store and print one secret's value to stdout.

By default only the raw value is printed, making it suitable for scripting:

  export DB_PASSWORD=$(extsecrets get --store production db-password)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secretName := args[0]

			if storeName == "" {
				return extserrors.UserError{
					Message:    "Store name is required",
					Suggestion: "Use --store <store-name> to specify which store to query",
				}
			}

			p, err := buildStore(cfg, storeName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := connectStore(ctx, p); err != nil {
				return err
			}
			if err := p.Update(ctx); err != nil {
				return err
			}

			value, err := p.GetSecret(secretName)
			if err != nil {
				available := p.SecretNames()
				suggestion := fmt.Sprintf("Check that the secret exists in store '%s'", storeName)
				if len(available) > 0 && len(available) <= 10 {
					suggestion = fmt.Sprintf("Available secrets in '%s': %v", storeName, available)
				} else if len(available) > 10 {
					suggestion = fmt.Sprintf("Store '%s' holds %d secrets. Use 'extsecrets sync %s' to list them", storeName, len(available), storeName)
				}
				return extserrors.UserError{
					Message:    fmt.Sprintf("Secret '%s' not found in store '%s'", secretName, storeName),
					Suggestion: suggestion,
					Err:        err,
				}
			}

			if jsonOutput {
				out := map[string]string{
					"store": storeName,
					"name":  secretName,
					"value": value,
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			}

			fmt.Println(value)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeName, "store", "", "Secret store to query")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output value with metadata as JSON")

	return cmd
}

package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/extsecrets/internal/config"
	"github.com/systmms/extsecrets/internal/providers"
)

func NewStoresCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List available secret store types and configured stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := providers.NewRegistry(cfg.Logger)

			fmt.Println("Built-in Store Types:")
			fmt.Println("=====================")

			supportedTypes := registry.SupportedTypes()
			sort.Strings(supportedTypes)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "TYPE\tDESCRIPTION\n")
			_, _ = fmt.Fprintf(w, "----\t-----------\n")
			for _, storeType := range supportedTypes {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", storeType, storeDescription(storeType))
			}
			_ = w.Flush()

			// Show configured stores if a config file is available.
			if err := cfg.Load(); err == nil && cfg.Definition != nil {
				fmt.Println("\nConfigured Stores:")
				fmt.Println("==================")

				if len(cfg.Definition.SecretStores) == 0 {
					fmt.Println("No stores configured")
					return nil
				}

				names := make([]string, 0, len(cfg.Definition.SecretStores))
				for name := range cfg.Definition.SecretStores {
					names = append(names, name)
				}
				sort.Strings(names)

				w2 := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				_, _ = fmt.Fprintf(w2, "NAME\tTYPE\tSTATUS\n")
				_, _ = fmt.Fprintf(w2, "----\t----\t------\n")
				for _, name := range names {
					storeCfg := cfg.Definition.SecretStores[name]
					status := "configured"
					if !registry.IsSupported(storeCfg.Type) {
						status = "unsupported"
					}
					_, _ = fmt.Fprintf(w2, "%s\t%s\t%s\n", name, storeCfg.Type, status)
				}
				_ = w2.Flush()
			}

			return nil
		},
	}

	return cmd
}

func storeDescription(storeType string) string {
	switch storeType {
	case "aws.secretsmanager":
		return "AWS Secrets Manager (ListSecrets + BatchGetSecretValue)"
	case "literal":
		return "Values defined inline in the configuration file"
	case "mock":
		return "In-memory store for testing"
	default:
		return "No description available"
	}
}

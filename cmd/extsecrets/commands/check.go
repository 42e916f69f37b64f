package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/systmms/extsecrets/internal/config"
	extserrors "github.com/systmms/extsecrets/internal/errors"
	"github.com/systmms/extsecrets/internal/providers"
	"github.com/systmms/extsecrets/pkg/provider"
)

func NewCheckCommand(cfg *config.Config) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check [store...]",
		Short: "Verify connectivity to configured secret stores",
		Long: `Connect to each named store (or every configured store) and report
whether its credentials and endpoint work. No secret values are fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				for name := range cfg.Definition.SecretStores {
					names = append(names, name)
				}
				sort.Strings(names)
			}
			if len(names) == 0 {
				return extserrors.UserError{
					Message:    "No secret stores configured",
					Suggestion: "Add a secretStores entry to " + cfg.Path,
				}
			}

			registry := providers.NewRegistry(cfg.Logger)
			failures := 0

			for _, name := range names {
				storeCfg, err := cfg.Store(name)
				if err != nil {
					return err
				}

				p, err := registry.CreateProvider(name, storeCfg)
				if err != nil {
					fmt.Printf("✗ %s: %v\n", name, err)
					failures++
					continue
				}

				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				state := p.Connect(ctx)
				cancel()

				if state == provider.StateConnected {
					fmt.Printf("✓ %s (%s)\n", name, storeCfg.Type)
					continue
				}

				failures++
				if err := p.LastError(); err != nil {
					fmt.Printf("✗ %s: %v\n", name, err)
				} else {
					fmt.Printf("✗ %s: state %s\n", name, state)
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d stores failed the check", failures, len(names))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Per-store connection timeout")

	return cmd
}

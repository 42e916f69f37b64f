package commands

import (
	"context"
	"fmt"

	"github.com/systmms/extsecrets/internal/config"
	"github.com/systmms/extsecrets/internal/providers"
	"github.com/systmms/extsecrets/pkg/provider"
)

// buildStore loads the configuration and creates an initialized provider for
// the named store. The provider is not yet connected.
func buildStore(cfg *config.Config, storeName string) (provider.Provider, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}

	storeCfg, err := cfg.Store(storeName)
	if err != nil {
		return nil, err
	}

	registry := providers.NewRegistry(cfg.Logger)
	return registry.CreateProvider(storeName, storeCfg)
}

// connectStore drives the provider to the connected state or explains why it
// could not get there.
func connectStore(ctx context.Context, p provider.Provider) error {
	if state := p.Connect(ctx); state != provider.StateConnected {
		if err := p.LastError(); err != nil {
			return fmt.Errorf("store %q failed to connect: %w", p.Name(), err)
		}
		return fmt.Errorf("store %q failed to connect (state: %s)", p.Name(), state)
	}
	return nil
}

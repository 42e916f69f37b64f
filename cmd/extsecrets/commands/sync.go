package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/systmms/extsecrets/internal/config"
	extserrors "github.com/systmms/extsecrets/internal/errors"
	"github.com/systmms/extsecrets/internal/metrics"
)

func NewSyncCommand(cfg *config.Config) *cobra.Command {
	var (
		watch       time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "sync <store>",
		Short: "Mirror a store's secrets into the local snapshot",
		Long: `Connect to a store, list every visible secret, fetch all values and
publish them as one snapshot. Secret names are printed; values never are.

With --watch the snapshot is refreshed on an interval until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeName := args[0]

			p, err := buildStore(cfg, storeName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := connectStore(ctx, p); err != nil {
				return err
			}

			metrics.Init()
			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				go func() {
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						cfg.Logger.Error("metrics endpoint failed: %v", err)
					}
				}()
				cfg.Logger.Info("serving metrics on %s/metrics", metricsAddr)
			}

			refresh := func() error {
				if err := p.Update(ctx); err != nil {
					return err
				}
				names := p.SecretNames()
				cfg.Logger.Info("%s: snapshot holds %d secrets", storeName, len(names))
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			}

			if err := refresh(); err != nil {
				return err
			}
			if watch <= 0 {
				return nil
			}

			ticker := time.NewTicker(watch)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := refresh(); err != nil {
						// Stale-but-served: keep the previous snapshot and retry
						// on the next tick unless the failure is fatal.
						if !extserrors.IsRetryable(err) {
							return err
						}
						cfg.Logger.Warn("%s: refresh failed, keeping previous snapshot: %v", storeName, err)
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 0, "Refresh interval (0 runs a single sync)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/fx_conversion_engine/internal/core/ports/repositories"
	"github.com/SscSPs/fx_conversion_engine/internal/core/services"
	"github.com/SscSPs/fx_conversion_engine/internal/middleware"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/config"
	"github.com/SscSPs/fx_conversion_engine/internal/repositories/catalogfile"
	"github.com/SscSPs/fx_conversion_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/fx_conversion_engine/pkg/database"
	"github.com/spf13/cobra"
)

func newImportCmd(logger *slog.Logger) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the quotations of a JSON catalog file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, cfg.EnableDBCheck)
			if err != nil {
				return fmt.Errorf("failed to initialize database pool: %w", err)
			}
			defer database.ClosePgxPool(dbPool)

			inserted, received, err := runImport(cmd.Context(), catalogPath, pgsql.NewRepositoryProvider(dbPool).QuotationRepo, logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d quotations\n", inserted, received)
			return err
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the JSON quotation catalog")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

// runImport stores the catalog's quotations under the catalog's tenant.
func runImport(ctx context.Context, catalogPath string, repo portsrepo.QuotationWriter, logger *slog.Logger) (int64, int, error) {
	catalog, err := catalogfile.Load(catalogPath)
	if err != nil {
		return 0, 0, err
	}

	records := catalog.Records()
	ctx = middleware.WithLogger(ctx, logger)
	inserted, err := services.NewQuotationService(repo).ImportQuotations(ctx, catalog.Tenant(), records)
	if err != nil {
		return 0, 0, err
	}
	return inserted, len(records), nil
}

package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/core/domain"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/config"
	"github.com/SscSPs/fx_conversion_engine/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		tenant  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a tenant JWT signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			tenantID, err := domain.ParseTenantID(tenant)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}

			token, err := utils.GenerateTenantJWT(tenantID, subject, cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant the token authenticates")
	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fx_conversion_engine/internal/apperrors"
	"github.com/SscSPs/fx_conversion_engine/internal/core/services"
	"github.com/SscSPs/fx_conversion_engine/internal/dto"
	"github.com/SscSPs/fx_conversion_engine/internal/middleware"
	"github.com/SscSPs/fx_conversion_engine/internal/platform/config"
	"github.com/SscSPs/fx_conversion_engine/internal/repositories/catalogfile"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	catalogPath string
	from        string
	to          string
	amount      string
	rateType    string
	asOf        string
	provider    string
	source      string
}

func newConvertCmd(logger *slog.Logger) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount against a JSON catalog file without a database",
		Example: `  fxengine convert --catalog rates.json --from EUR --to USD --amount 100
  fxengine convert --catalog rates.json --from JPY --to CHF --amount 1000 --as-of 2024-03-05 --provider ECB --source DAILY`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			resp, err := runConvert(cmd.Context(), cfg, opts, logger)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.catalogPath, "catalog", "", "Path to the JSON quotation catalog")
	flags.StringVar(&opts.from, "from", "", "Currency to convert from")
	flags.StringVar(&opts.to, "to", "", "Currency to convert to")
	flags.StringVar(&opts.amount, "amount", "", "Amount in the from currency")
	flags.StringVar(&opts.rateType, "rate-type", "M", "Rate classification")
	flags.StringVar(&opts.asOf, "as-of", "", "Reference time, RFC 3339 or YYYY-MM-DD (default now)")
	flags.StringVar(&opts.provider, "provider", "", "Override provider code")
	flags.StringVar(&opts.source, "source", "", "Override data source id")
	for _, name := range []string{"catalog", "from", "to", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	cmd.MarkFlagsRequiredTogether("provider", "source")

	return cmd
}

func runConvert(ctx context.Context, cfg *config.Config, opts convertOptions, logger *slog.Logger) (*dto.ConversionResponse, error) {
	req, err := opts.toRequest(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	v, err := dto.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
	}

	query, err := req.ToConversionQuery()
	if err != nil {
		return nil, err
	}
	override, err := req.Override.ToDataSource()
	if err != nil {
		return nil, err
	}

	catalog, err := catalogfile.Load(opts.catalogPath)
	if err != nil {
		return nil, err
	}

	container := services.NewServiceContainer(cfg, catalog.Provider(), nil)
	ctx = middleware.WithLogger(ctx, logger)
	outcome, err := container.Conversion.Convert(ctx, catalog.Tenant(), query, override)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", apperrors.FailureKind(err), err)
	}

	resp := dto.ToConversionResponse(query, outcome)
	return &resp, nil
}

func (o convertOptions) toRequest(now time.Time) (dto.ConversionRequest, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(o.amount))
	if err != nil {
		return dto.ConversionRequest{}, fmt.Errorf("%w: amount %q: %v", apperrors.ErrInvalidParameters, o.amount, err)
	}

	asOf := now
	if o.asOf != "" {
		asOf, err = parseAsOf(o.asOf)
		if err != nil {
			return dto.ConversionRequest{}, err
		}
	}

	req := dto.ConversionRequest{
		FromCurrency: strings.ToUpper(strings.TrimSpace(o.from)),
		ToCurrency:   strings.ToUpper(strings.TrimSpace(o.to)),
		Amount:       &amount,
		RateType:     o.rateType,
		AsOf:         &asOf,
	}
	if o.provider != "" || o.source != "" {
		req.Override = &dto.DataSourceRequest{ProviderCode: o.provider, DataSourceID: o.source}
	}
	return req, nil
}

// parseAsOf accepts a full timestamp or a date, which means the end of that day in UTC.
func parseAsOf(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: as-of %q is neither RFC 3339 nor YYYY-MM-DD", apperrors.ErrInvalidParameters, s)
	}
	return d.Add(24*time.Hour - time.Nanosecond), nil
}

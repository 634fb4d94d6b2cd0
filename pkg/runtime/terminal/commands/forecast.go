package commands

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/deals"
	"github.com/spf13/cobra"
)

type ForecastCmd struct {
	env     *Env
	filters dealFilterFlags
	months  int
	quota   float64
}

func NewForecastCmd(env *Env) *cobra.Command {
	fc := &ForecastCmd{env: env}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project monthly revenue from the open pipeline",
		RunE:  fc.run,
	}

	fc.filters.bind(cmd)
	cmd.Flags().IntVar(&fc.months, "months", 0, "Months to forecast (default 6)")
	cmd.Flags().Float64Var(&fc.quota, "quota", 0, "Revenue quota for the forecast horizon")

	return cmd
}

func (fc *ForecastCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svc, closeFn, err := fc.env.Service()
	if err != nil {
		return err
	}
	defer closeFn()

	req := deals.ForecastRequest{
		Months:  fc.months,
		Filters: domain.ForecastFilters{DealFilter: fc.filters.filter()},
	}
	if cmd.Flags().Changed("quota") {
		quota := fc.quota
		req.QuotaTarget = &quota
	}

	result, err := svc.Forecast(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to forecast revenue: %w", err)
	}

	return fc.env.render(adapters.MapForecastToReport(result, fc.env.Now()))
}

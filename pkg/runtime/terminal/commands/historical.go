package commands

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type dealFilterFlags struct {
	mode  string
	rep   string
	size  string
	start string
	end   string
}

func (f *dealFilterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "Transportation mode (trucking, rail, ocean, air)")
	cmd.Flags().StringVar(&f.rep, "rep", "", "Sales rep")
	cmd.Flags().StringVar(&f.size, "size", "", "Deal size category (Small, Medium, Large, Enterprise)")
	cmd.Flags().StringVar(&f.start, "start", "", "Earliest expected close date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Latest expected close date (YYYY-MM-DD)")
}

func (f *dealFilterFlags) filter() domain.DealFilter {
	return domain.DealFilter{
		TransportationMode: f.mode,
		SalesRep:           f.rep,
		DealSizeCategory:   f.size,
		StartDate:          f.start,
		EndDate:            f.end,
	}
}

type HistoricalCmd struct {
	env     *Env
	filters dealFilterFlags
	stage   string
}

func NewHistoricalCmd(env *Env) *cobra.Command {
	hc := &HistoricalCmd{env: env}
	cmd := &cobra.Command{
		Use:   "historical",
		Short: "Win rates of closed deals by mode, rep, size and month",
		RunE:  hc.run,
	}

	hc.filters.bind(cmd)
	cmd.Flags().StringVar(&hc.stage, "stage", "", "Only closed deals in this stage (closed_won, closed_lost)")

	return cmd
}

func (hc *HistoricalCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, ok := domain.ParseSizeCategory(hc.filters.size); hc.filters.size != "" && !ok {
		return fmt.Errorf("unknown deal size category %q", hc.filters.size)
	}

	svc, closeFn, err := hc.env.Service()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := svc.Historical(ctx, domain.HistoricalFilters{
		DealFilter: hc.filters.filter(),
		Stage:      domain.Stage(hc.stage),
	})
	if err != nil {
		return fmt.Errorf("failed to analyze win rates: %w", err)
	}

	return hc.env.render(adapters.MapHistoricalToReport(result, hc.env.Now()))
}

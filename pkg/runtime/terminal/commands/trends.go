package commands

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type TrendsCmd struct {
	env      *Env
	filters  dealFilterFlags
	risk     string
	priority string
	stalling bool
}

func NewTrendsCmd(env *Env) *cobra.Command {
	tc := &TrendsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Score open deals for risk and rank them by priority",
		RunE:  tc.run,
	}

	tc.filters.bind(cmd)
	cmd.Flags().StringVar(&tc.risk, "risk", "", "Risk level (low, medium, high, critical)")
	cmd.Flags().StringVar(&tc.priority, "priority", "", "Priority (low, medium, high, urgent)")
	cmd.Flags().BoolVar(&tc.stalling, "stalling", false, "Only stalling deals; --stalling=false for active ones")

	return cmd
}

func (tc *TrendsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if tc.risk != "" && !domain.RiskLevel(tc.risk).Known() {
		return fmt.Errorf("unknown risk level %q", tc.risk)
	}
	if tc.priority != "" && !domain.Priority(tc.priority).Known() {
		return fmt.Errorf("unknown priority %q", tc.priority)
	}

	svc, closeFn, err := tc.env.Service()
	if err != nil {
		return err
	}
	defer closeFn()

	filters := domain.TrendFilters{
		DealFilter: tc.filters.filter(),
		RiskLevel:  domain.RiskLevel(tc.risk),
		Priority:   domain.Priority(tc.priority),
	}
	if cmd.Flags().Changed("stalling") {
		stalling := tc.stalling
		filters.IsStalling = &stalling
	}

	result, err := svc.Trends(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to analyze deal trends: %w", err)
	}

	return tc.env.render(adapters.MapTrendsToReport(result, tc.env.Now()))
}

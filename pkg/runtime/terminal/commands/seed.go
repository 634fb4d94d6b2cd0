package commands

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/services/seed"
	dealstore "github.com/de-tools/deal-atlas/pkg/store/duckdb/deal"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	env *Env
}

func NewSeedCmd(env *Env) *cobra.Command {
	sc := &SeedCmd{env: env}
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the deals in --db with the sample book",
		RunE:  sc.run,
	}
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := sc.env.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := dealstore.NewStore(db)
	if err != nil {
		return err
	}

	count, err := seed.NewService(store).Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed deals: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d deals into %s\n", count, sc.env.DBPath)
	return nil
}

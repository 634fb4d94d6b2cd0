package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/services/config"
	"github.com/de-tools/deal-atlas/pkg/services/syncer"
	dealstore "github.com/de-tools/deal-atlas/pkg/store/duckdb/deal"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb/syncrun"
	"github.com/de-tools/deal-atlas/pkg/store/postgres"
	crmdeal "github.com/de-tools/deal-atlas/pkg/store/postgres/deal"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type SyncCmd struct {
	env         *Env
	profile     string
	sourcesPath string
	history     int
}

func NewSyncCmd(env *Env) *cobra.Command {
	sc := &SyncCmd{env: env}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy all deals from a CRM profile into --db",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "crm", "Source profile name")
	cmd.Flags().StringVar(&sc.sourcesPath, "sources", config.DefaultSourcesPath(), "Path to the source profiles file")
	cmd.Flags().IntVar(&sc.history, "history", 0, "Print the last N sync runs instead of syncing")

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := sc.env.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := syncrun.NewStore(db)
	if err != nil {
		return err
	}

	if sc.history > 0 {
		return sc.printHistory(cmd, runs)
	}

	registry, err := config.NewRegistry(sc.sourcesPath)
	if err != nil {
		return fmt.Errorf("failed to load source profiles: %w", err)
	}
	source, err := registry.GetSource(ctx, sc.profile)
	if err != nil {
		return err
	}

	crmDB, err := postgres.Open(ctx, postgres.Settings{Driver: source.Driver, DSN: source.DSN})
	if err != nil {
		return err
	}
	defer crmDB.Close()

	crm, err := crmdeal.NewStore(crmDB)
	if err != nil {
		return err
	}
	local, err := dealstore.NewStore(db)
	if err != nil {
		return err
	}

	result, err := syncer.NewRunner(db, sc.profile, crm, local, runs).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d deals from %s (run %s)\n", result.Imported, sc.profile, result.RunID)
	return nil
}

func (sc *SyncCmd) printHistory(cmd *cobra.Command, runs syncrun.Store) error {
	history, err := runs.List(cmd.Context(), sc.history)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintln(out, "No sync runs recorded")
		return nil
	}

	now := sc.env.Now()
	for _, r := range history {
		status := "running"
		switch {
		case r.Error != nil:
			status = "failed: " + *r.Error
		case r.FinishedAt != nil:
			status = fmt.Sprintf("imported %d in %s", r.Imported, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
		}
		fmt.Fprintf(out, "%s  %-10s %-12s %s\n",
			r.ID, r.Profile, humanize.RelTime(r.StartedAt, now, "ago", "from now"), status)
	}
	return nil
}

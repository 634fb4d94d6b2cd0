package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/deal-atlas/pkg/services/deals"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb"
	dealstore "github.com/de-tools/deal-atlas/pkg/store/duckdb/deal"
	"github.com/de-tools/deal-atlas/pkg/store/file"
	"github.com/spf13/pflag"
)

const (
	FormatTable = "table"
	FormatText  = "text"
)

type Reporter interface {
	Handle(report *domain.Report) error
}

// Env is the state shared by every subcommand: where deals come from and how
// reports are printed.
type Env struct {
	Out    io.Writer
	Now    func() time.Time
	File   string
	DBPath string
	Format string
}

func (e *Env) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&e.File, "file", "", "Read deals from a JSON or YAML file")
	flags.StringVar(&e.DBPath, "db", "", "Read deals from a DuckDB database")
	flags.StringVarP(&e.Format, "output", "o", FormatTable, "Report format: table or text")
}

func (e *Env) Reporter() (Reporter, error) {
	switch e.Format {
	case FormatTable, "":
		return export.NewReporter(e.Out), nil
	case FormatText:
		return export.NewTextReporter(e.Out), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", e.Format)
	}
}

// OpenDB opens the DuckDB database named by --db.
func (e *Env) OpenDB() (*sql.DB, error) {
	if e.DBPath == "" {
		return nil, errors.New("--db is required")
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: e.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", e.DBPath, err)
	}
	return db, nil
}

// Service builds the deal service over --file or --db. The returned closer
// releases the database, if any.
func (e *Env) Service(opts ...deals.Option) (*deals.Service, func(), error) {
	opts = append([]deals.Option{deals.WithClock(e.Now)}, opts...)

	switch {
	case e.File != "" && e.DBPath != "":
		return nil, nil, errors.New("--file and --db are mutually exclusive")
	case e.File != "":
		return deals.NewService(file.NewStore(e.File), opts...), func() {}, nil
	case e.DBPath != "":
		db, err := e.OpenDB()
		if err != nil {
			return nil, nil, err
		}
		s, err := dealstore.NewStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return deals.NewService(s, opts...), func() { db.Close() }, nil
	default:
		return nil, nil, errors.New("one of --file or --db is required")
	}
}

func (e *Env) render(report *domain.Report) error {
	reporter, err := e.Reporter()
	if err != nil {
		return err
	}
	return reporter.Handle(report)
}

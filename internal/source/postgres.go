package source

import (
	"context"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/db"
	"github.com/ledgerline/mfin/internal/util"
)

// Connector opens a database handle; db.Connect and db.ConnectLite fit.
type Connector func(ctx context.Context, url string) (*db.DB, error)

type postgresSource struct {
	url     string
	table   string
	connect Connector
}

// Postgres reads every row of table. Filtering, sorting and paging happen
// in memory like for every other source.
func Postgres(url, table string, connect Connector) Source {
	return postgresSource{url: url, table: table, connect: connect}
}

func (p postgresSource) Describe() string { return "postgres table " + p.table }

func (p postgresSource) Load(ctx context.Context) ([]datatable.Record, error) {
	conn, err := p.connect(ctx, p.url)
	if err != nil {
		return nil, util.DatabaseConnectionError(p.url, err)
	}
	defer conn.Close()

	exists, err := conn.TableExists(ctx, p.table)
	if err != nil {
		return nil, util.NewError("Cannot inspect database").WithContext(util.RedactURL(p.url)).Wrap(err)
	}
	if !exists {
		return nil, util.NewError("Table '"+p.table+"' not found").
			WithContext(util.RedactURL(p.url)).
			WithSuggestions(
				"mfin config source.table <name>",
				"mfin view <screen> --table <name>",
			).
			Wrap(util.ErrNoSource)
	}

	_, records, err := conn.QueryRecords(ctx, "SELECT * FROM "+db.QuoteIdent(p.table))
	if err != nil {
		return nil, util.NewError("Cannot read table '"+p.table+"'").
			WithCauses(
				"The database user lacks SELECT permission",
				"The statement timeout was reached",
			).
			Wrap(err)
	}
	return records, nil
}

package bytesearch

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
)

type dialect int

const (
	mssqlDialect dialect = iota + 1
	pgsqlDialect
)

func dialectOf(d driver.Driver) (dialect, error) {
	switch d.(type) {
	case *mssql.Driver:
		return mssqlDialect, nil
	case *stdlib.Driver:
		return pgsqlDialect, nil
	}
	return 0, fmt.Errorf("unsupported sql driver %T", d)
}

var createRunTable = map[dialect]string{
	mssqlDialect: `
if object_id('dbo.bytesearch_runs') is null
create table dbo.bytesearch_runs (
	id uniqueidentifier not null primary key,
	started_at datetime2 not null,
	fingerprint varchar(12) not null,
	files int not null,
	bytes bigint not null,
	rounds int not null,
	elapsed_us bigint not null
)`,
	pgsqlDialect: `
create table if not exists bytesearch_runs (
	id uuid not null primary key,
	started_at timestamptz not null,
	fingerprint text not null,
	files integer not null,
	bytes bigint not null,
	rounds integer not null,
	elapsed_us bigint not null
)`,
}

// EnsureRunTable creates the table benchmark runs are recorded in, unless
// it exists.
func EnsureRunTable(ctx context.Context, dbc DB) error {
	d, err := dialectOf(dbc.Driver())
	if err != nil {
		return err
	}
	_, err = dbc.ExecContext(ctx, createRunTable[d])
	return err
}

const insertRun = `
insert into bytesearch_runs (id, started_at, fingerprint, files, bytes, rounds, elapsed_us)
values (@id, @started_at, @fingerprint, @files, @bytes, @rounds, @elapsed_us)`

func RecordRun(ctx context.Context, dbc DB, r Run) error {
	d, err := dialectOf(dbc.Driver())
	if err != nil {
		return err
	}
	args := map[string]interface{}{
		"id":          r.ID.String(),
		"started_at":  r.StartedAt.UTC(),
		"fingerprint": r.Fingerprint,
		"files":       r.Files,
		"bytes":       r.Bytes,
		"rounds":      r.Rounds,
		"elapsed_us":  r.Elapsed.Microseconds(),
	}
	_, err = dbc.ExecContext(ctx, insertRun, queryArgs(d, args)...)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", r.ID, err)
	}
	return nil
}

// queryArgs passes named arguments the way the driver wants them.
func queryArgs(d dialect, args map[string]interface{}) []interface{} {
	if d == pgsqlDialect {
		return []interface{}{pgx.NamedArgs(args)}
	}
	var result []interface{}
	for name, value := range args {
		result = append(result, sql.Named(name, value))
	}
	return result
}

var selectRuns = map[dialect]string{
	mssqlDialect: `
select top (@limit) id, started_at, fingerprint, files, bytes, rounds, elapsed_us
from bytesearch_runs
order by started_at desc`,
	pgsqlDialect: `
select id, started_at, fingerprint, files, bytes, rounds, elapsed_us
from bytesearch_runs
order by started_at desc
limit @limit`,
}

// ListRuns returns the most recently started runs first.
func ListRuns(ctx context.Context, dbc DB, limit int) ([]Run, error) {
	d, err := dialectOf(dbc.Driver())
	if err != nil {
		return nil, err
	}
	rows, err := dbc.QueryContext(ctx, selectRuns[d], queryArgs(d, map[string]interface{}{"limit": limit})...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []Run
	for rows.Next() {
		var r Run
		var elapsedUs int64
		var id uuid.UUID
		var err error
		if d == mssqlDialect {
			// uniqueidentifier comes back in SQL Server's mixed-endian layout
			var mssqlID mssql.UniqueIdentifier
			err = rows.Scan(&mssqlID, &r.StartedAt, &r.Fingerprint, &r.Files, &r.Bytes, &r.Rounds, &elapsedUs)
			if err == nil {
				id, err = uuid.FromString(mssqlID.String())
			}
		} else {
			err = rows.Scan(&id, &r.StartedAt, &r.Fingerprint, &r.Files, &r.Bytes, &r.Rounds, &elapsedUs)
		}
		if err != nil {
			return nil, err
		}
		r.ID = id
		r.Elapsed = time.Duration(elapsedUs) * time.Microsecond
		result = append(result, r)
	}
	return result, rows.Err()
}

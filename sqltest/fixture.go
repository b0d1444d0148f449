// Package sqltest creates throwaway databases for tests that record
// benchmark runs. Tests are skipped unless SQLSERVER_DSN or POSTGRES_DSN is
// set.
package sqltest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

type StdoutLogger struct {
}

func (s StdoutLogger) Printf(format string, v ...interface{}) {
	fmt.Printf(format, v...)
}

func (s StdoutLogger) Println(v ...interface{}) {
	fmt.Println(v...)
}

var _ mssql.Logger = StdoutLogger{}

type Fixture struct {
	DB         *sql.DB
	DBName     string
	driverName string
	adminDB    *sql.DB
}

// NewFixture creates a fresh database on the server named by
// SQLSERVER_DSN, or else POSTGRES_DSN.
func NewFixture(t testing.TB) *Fixture {
	var fixture Fixture

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var dsn string
	if dsn = os.Getenv("SQLSERVER_DSN"); dsn != "" {
		fixture.driverName = "sqlserver"
		mssql.SetLogger(StdoutLogger{})
	} else if dsn = os.Getenv("POSTGRES_DSN"); dsn != "" {
		fixture.driverName = "pgx"
	} else {
		t.Skip("set SQLSERVER_DSN or POSTGRES_DSN to run database tests")
	}

	var err error
	fixture.adminDB, err = sql.Open(fixture.driverName, dsn)
	if err != nil {
		t.Fatal(err)
	}
	fixture.DBName = "bytesearch" + strings.ReplaceAll(uuid.Must(uuid.NewV4()).String(), "-", "")

	_, err = fixture.adminDB.ExecContext(ctx, fmt.Sprintf(`create database %s`, fixture.quote(fixture.DBName)))
	if err != nil {
		t.Fatal(err)
	}

	dbDSN, err := fixture.databaseDSN(dsn)
	if err != nil {
		t.Fatal(err)
	}
	fixture.DB, err = sql.Open(fixture.driverName, dbDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(fixture.Teardown)
	return &fixture
}

func (f *Fixture) IsSqlServer() bool {
	return f.driverName == "sqlserver"
}

func (f *Fixture) IsPostgresql() bool {
	return f.driverName == "pgx"
}

func (f *Fixture) quote(name string) string {
	if f.IsSqlServer() {
		return "[" + name + "]"
	}
	return `"` + name + `"`
}

func (f *Fixture) databaseDSN(dsn string) (string, error) {
	if f.IsSqlServer() {
		pdsn, err := msdsn.Parse(dsn)
		if err != nil {
			return "", err
		}
		pdsn.Database = f.DBName
		return pdsn.URL().String(), nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}
	u.Path = "/" + f.DBName
	return u.String(), nil
}

func (f *Fixture) Teardown() {
	if f.adminDB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	_ = f.DB.Close()
	f.DB = nil
	_, _ = f.adminDB.ExecContext(ctx, fmt.Sprintf(`drop database %s`, f.quote(f.DBName)))
	_ = f.adminDB.Close()
	f.adminDB = nil
}

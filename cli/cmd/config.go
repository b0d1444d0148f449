package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/azuread"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/proxy"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Connection string `yaml:"connection" toml:"connection"`
}

func socksDialer() (proxy.ContextDialer, error) {
	socksProxyAddress := os.Getenv("SQL_SOCKS")
	if socksProxyAddress == "" {
		return nil, nil
	}
	dialer, err := proxy.SOCKS5("tcp", socksProxyAddress, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Could not connect with SOCKS5 to %s", socksProxyAddress))
	}
	return dialer.(proxy.ContextDialer), nil
}

// OpenSocks5Sql opens a database from a URI-style dsn, dialing through the
// SOCKS5 proxy in SQL_SOCKS if set.
func OpenSocks5Sql(dsn string) (*sql.DB, error) {
	var err error
	var connector *mssql.Connector

	switch {
	case strings.HasPrefix(dsn, "azuresql://"):
		connector, err = azuread.NewConnector(dsn)
	case strings.HasPrefix(dsn, "sqlserver://"):
		connector, err = mssql.NewConnector(dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return openPostgres(dsn)
	default:
		return nil, errors.New("expected URI-style dsn; sqlserver:// for password login, azuresql:// for AD login or postgres://")
	}
	if err != nil {
		return nil, err
	}

	dialer, err := socksDialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		connector.Dialer = dialer
	}
	return sql.OpenDB(connector), nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid postgres dsn")
	}
	dialer, err := socksDialer()
	if err != nil {
		return nil, err
	}
	if dialer != nil {
		cfg.DialFunc = dialer.DialContext
	}
	return stdlib.OpenDB(*cfg), nil
}

func (dbcfg DatabaseConfig) Open(ctx context.Context, logger logrus.FieldLogger) (*sql.DB, error) {
	logger.WithField("dsn", redact(dbcfg.Connection)).Debug("opening database")
	return OpenSocks5Sql(dbcfg.Connection)
}

// redact hides the password of a URI-style dsn.
func redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return dsn
	}
	return scheme + "://" + user + ":xxxxx@" + host
}

type Config struct {
	Databases   map[string]DatabaseConfig `yaml:"databases" toml:"databases"`
	Extensions  []string                  `yaml:"extensions" toml:"extensions"`
	LogLevel    string                    `yaml:"loglevel" toml:"loglevel"`
	Concurrency int                       `yaml:"concurrency" toml:"concurrency"`
}

var errNoConfig = errors.New("No bytesearch.yaml or bytesearch.toml found in directory")

// LoadConfig reads bytesearch.yaml from the directory flag, falling back
// to bytesearch.toml.
func LoadConfig() (Config, error) {
	var result Config

	yamlFilename := path.Join(directory, "bytesearch.yaml")
	if yamlFile, err := os.ReadFile(yamlFilename); err == nil {
		if err := yaml.Unmarshal(yamlFile, &result); err != nil {
			return Config{}, errors.Wrap(err, yamlFilename)
		}
		return result, nil
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	tomlFilename := path.Join(directory, "bytesearch.toml")
	if _, err := toml.DecodeFile(tomlFilename, &result); err != nil {
		if os.IsNotExist(err) {
			return Config{}, errNoConfig
		}
		return Config{}, errors.Wrap(err, tomlFilename)
	}
	return result, nil
}

// loadOptionalConfig is LoadConfig for commands that work without a
// configuration file.
func loadOptionalConfig() (Config, error) {
	cfg, err := LoadConfig()
	if err == errNoConfig {
		return Config{}, nil
	}
	return cfg, err
}

func openDatabase(ctx context.Context, dbname string) (*sql.DB, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	dbconfig, ok := config.Databases[dbname]
	if !ok {
		return nil, errors.New(fmt.Sprintf("database %s not present in configuration file", dbname))
	}
	return dbconfig.Open(ctx, logrus.StandardLogger())
}

package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"advanced-todo/internal/config"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

const (
	driverPgx   = "pgx"
	driverMySQL = "mysql"
)

var ErrUnsupportedDatabaseURL = errors.New("unsupported database url scheme")

// Store owns the connection pool. It is built once in main, handed to the
// repository and health handler, and closed on shutdown.
type Store struct {
	DB      *sqlx.DB
	Dialect Dialect
}

func ConnectDB(ctx context.Context, conf *config.Config) (*Store, error) {
	driverName, dsn, err := ParseDatabaseURL(conf.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(conf.DbMaxIdleConns)
	db.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, conf.DbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	store := NewStore(db)
	zap.L().Info("connected to database", zap.String("dialect", string(store.Dialect)))
	return store, nil
}

// NewStore wraps an already opened pool, deriving the dialect from its driver.
func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db, Dialect: dialectFor(db.DriverName())}
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// ParseDatabaseURL maps a DATABASE_URL onto a registered driver name and DSN.
// postgres:// and postgresql:// go to pgx as-is; mysql:// is rewritten into
// the go-sql-driver DSN format.
func ParseDatabaseURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("parse database url: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return driverPgx, u.String(), nil
	case "mysql":
		return driverMySQL, mysqlDSN(u), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, u.Scheme)
	}
}

func mysqlDSN(u *url.URL) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Host + ":3306"
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.ParseTime = true
	// UPDATE must report matched rows, not changed rows, for not-found detection.
	cfg.ClientFoundRows = true

	query := u.Query()
	if len(query) > 0 {
		cfg.Params = make(map[string]string, len(query))
		for key := range query {
			cfg.Params[key] = query.Get(key)
		}
	}

	return cfg.FormatDSN()
}

func dialectFor(driverName string) Dialect {
	if driverName == driverMySQL {
		return DialectMySQL
	}
	return DialectPostgres
}

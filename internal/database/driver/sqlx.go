package driver

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"promobanner/pkg/lib/sl"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	Postgres = "postgres"
	MySQL    = "mysql"
)

type SQLXConfig struct {
	DriverName     string
	DataSourceName string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
}

type Credentials struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	SSLMode  string
}

// DataSourceName renders connection credentials in the format the named
// driver expects.
func DataSourceName(driverName string, c Credentials) (string, error) {
	const op = "database.driver.sqlx.DataSourceName"

	switch driverName {
	case Postgres:
		return fmt.Sprintf(
			"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode,
		), nil
	case MySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.Username
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		cfg.DBName = c.DBName
		cfg.ParseTime = true
		// report matched rows for UPDATE so an unchanged row still counts as found
		cfg.ClientFoundRows = true
		cfg.TLSConfig = mysqlTLS(c.SSLMode)
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%s: unsupported driver %q", op, driverName)
	}
}

// mysqlTLS maps libpq sslmode values onto the mysql driver's tls parameter.
func mysqlTLS(sslMode string) string {
	switch sslMode {
	case "", "disable":
		return ""
	case "allow", "prefer":
		return "preferred"
	case "require":
		return "skip-verify"
	default:
		return "true"
	}
}

func (c *SQLXConfig) NewSQLXDatabase(log *slog.Logger) (*sqlx.DB, error) {
	const op = "database.driver.sqlx.NewSQLXDatabase"

	log = log.With(
		slog.String("op", op),
		slog.String("driver", c.DriverName),
	)

	db, err := sqlx.Open(c.DriverName, c.DataSourceName)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(
		"database parameters",
		slog.Int("max number of open connections", c.MaxOpenConns),
		slog.Int("max number of idle connections", c.MaxIdleConns),
		slog.Duration("max lifetime of open connection", c.MaxLifetime),
	)

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.MaxLifetime)

	if err = db.Ping(); err != nil {
		log.Error("failed to ping database", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}

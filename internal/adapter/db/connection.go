package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"trackr/internal/config"
)

const (
	defaultParams = "parseTime=true&multiStatements=true&clientFoundRows=true"
	dialTimeout   = 5 * time.Second
)

// ConnectDB opens the pool and pings it once so a bad DSN fails at startup.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	cfg, err := mysqlConfig(conf)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sqlx.NewDb(sql.OpenDB(connector), "mysql")
	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(conf.DbMaxIdleConns)
	db.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql at %s: %w", cfg.Addr, err)
	}
	return db, nil
}

func mysqlConfig(conf *config.Config) (*mysql.Config, error) {
	params := conf.DbParams
	if params == "" {
		params = defaultParams
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		net.JoinHostPort(conf.DbHost, conf.DbPort),
		conf.DbName,
		params,
	)
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = dialTimeout
	}
	return cfg, nil
}

package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/sales-manager/internal/config"
	"github.com/rl1809/sales-manager/internal/port"
)

// Stores is the set of backends selected by configuration.
type Stores struct {
	Inventory    port.InventoryStore
	Transactions port.TransactionLog
	Cache        port.CacheRepository

	closers []func() error
}

// Open connects the configured backends. Redis is optional: without an
// address the no-op cache is used.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	s := &Stores{}

	switch cfg.StoreBackend {
	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		adapter := NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Println("connected to mysql")

		s.Inventory = adapter.Inventory()
		s.Transactions = adapter.Transactions()
		s.closers = append(s.closers, db.Close)
	default:
		s.Inventory = NewCSVInventoryStore(cfg.InventoryFile)
		s.Transactions = NewCSVTransactionLog(cfg.TransactionsFile)
		log.Printf("using files %s and %s", cfg.InventoryFile, cfg.TransactionsFile)
	}

	if cfg.RedisAddr == "" {
		s.Cache = NoopCache{}
		return s, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		s.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Println("connected to redis")

	s.Cache = NewRedisAdapter(rdb, storeID(cfg))
	s.closers = append(s.closers, rdb.Close)
	return s, nil
}

// storeID names the transaction log in use: the DSN for MySQL, the absolute
// log path for files. Only a short hash ends up in Redis keys.
func storeID(cfg config.Config) string {
	source := "csv:" + cfg.TransactionsFile
	if cfg.StoreBackend == config.BackendMySQL {
		source = "mysql:" + cfg.MySQLDSN
	} else if abs, err := filepath.Abs(cfg.TransactionsFile); err == nil {
		source = "csv:" + abs
	}

	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:8])
}

// Close releases every connection opened by Open.
func (s *Stores) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

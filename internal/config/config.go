package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendCSV   = "csv"
	BackendMySQL = "mysql"
)

type Config struct {
	InventoryFile    string
	TransactionsFile string
	StoreBackend     string
	MySQLDSN         string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	HTTPPort         string
	GRPCPort         string
}

func Load() Config {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}

	backend := strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", BackendCSV)))
	if backend != BackendMySQL {
		backend = BackendCSV
	}

	return Config{
		InventoryFile:    getEnv("INVENTORY_FILE", "inventory.csv"),
		TransactionsFile: getEnv("TRANSACTIONS_FILE", "transactions.csv"),
		StoreBackend:     backend,
		MySQLDSN:         getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/salesmanager?parseTime=true&loc=Local"),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		GRPCPort:         getEnv("GRPC_PORT", "50051"),
	}
}

func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// Package integration_test поднимает общий пул к тестовой БД для
// интеграционных тестов репозиториев. Схема накатывается теми же миграциями,
// что и в сервисе.
package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"
	"samudra/internal/pkg/config"
	"samudra/internal/pkg/postgres"
	"samudra/pkg/logger/zap_adapter"
	"samudra/pkg/querier"
)

const (
	bootstrapTimeout = 30 * time.Second
	statementTimeout = 2 * time.Second
)

var (
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		// переменные окружения подгружает Makefile из .env.test
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: 4,
		}

		ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
		defer cancel()

		zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithLevel("warn"))
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}

		pool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}

		if err := postgres.Migrate(ctx, zapLogger, pool); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		querierInstance = querier.New(pool, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

// SetupDB очищает таблицы и выполняет фикстуру, пустая фикстура допустима.
func SetupDB(t *testing.T, setupSQL string) {
	t.Helper()

	TeardownDB(t)
	if setupSQL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSQL)
	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE shipment_status_history, shipments, discounts, pricing_rules, positions, divisions RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}

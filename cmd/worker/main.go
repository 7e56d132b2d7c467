package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"rates_backend/internal/app/di"
	cryptoadapters "rates_backend/internal/feature/crypto/adapters"
	cryptousecase "rates_backend/internal/feature/crypto/usecase"
	ingestadapters "rates_backend/internal/feature/ingest/adapters"
	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	ratesadapters "rates_backend/internal/feature/rates/adapters"
	ratesusecase "rates_backend/internal/feature/rates/usecase"
	"rates_backend/internal/platform/cache"
	infradb "rates_backend/internal/platform/db"
	"rates_backend/internal/platform/httpfetch"
	"rates_backend/internal/platform/logclient"
	infraredis "rates_backend/internal/platform/redis"
	"rates_backend/internal/shared/ratelimiter"
)

const defaultSources = "nbp-a,nbp-b,ecb,fixer,coingecko"

func main() {
	// .env はローカル開発用（コンテナでは環境変数を直接注入）
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	// db
	db := infradb.OpenDB(
		&ratesadapters.CurrencyModel{},
		&ratesadapters.ExchangeRateModel{},
		&cryptoadapters.AssetModel{},
		&cryptoadapters.AssetPriceModel{},
	)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Centralized logger sink
	loggerURL := os.Getenv("LOGGER_URL")
	if loggerURL == "" {
		loggerURL = "http://logger-service:8500"
	}
	logSource := 1
	if v := os.Getenv("WORKER_LOG_SOURCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			logSource = n
		}
	}
	reporter := logclient.New(loggerURL, logSource, slog.Default())

	// Repository
	currencyRepo := ratesadapters.NewCurrencyRepository(db)
	rateRepo := ratesusecase.RateRepository(ratesadapters.NewRateRepository(db))
	if rdb != nil {
		// 最終取得時刻の読み出しをRedisキャッシュでラップ
		rateRepo = cache.NewCachingRateRepository(rdb, 0, rateRepo, "rates")
	}
	assetRepo := cryptoadapters.NewAssetRepository(db)
	priceRepo := cryptoadapters.NewPriceRepository(db)
	censusRepo := ingestadapters.NewCensusRepository(db)

	// Usecase
	rateStore := ratesusecase.NewRateStore(currencyRepo, rateRepo)
	assetStore := cryptousecase.NewAssetStore(assetRepo, priceRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sources
	names := strings.Split(envOr("WORKER_SOURCES", defaultSources), ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	client := httpfetch.New(10*time.Second, "rates_backend/1.0.0")
	sources := di.BuildSources(ctx, names, di.SourceDeps{
		Client:     client,
		RateStore:  rateStore,
		AssetStore: assetStore,
		Reporter:   reporter,
	})
	if len(sources) == 0 {
		log.Fatal("no recognized sources configured")
	}

	tick := time.Minute
	if v := os.Getenv("WORKER_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			tick = d
		}
	}

	rl := ratelimiter.NewRateLimiter(30, time.Minute)
	worker := ingestusecase.NewWorker(sources, reporter, censusRepo, rl, tick)

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	log.Println("worker stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/config"
    "github.com/iliyamo/restaurant-table-reservation/internal/handler"
    appmw "github.com/iliyamo/restaurant-table-reservation/internal/middleware"
    "github.com/iliyamo/restaurant-table-reservation/internal/queue"
    "github.com/iliyamo/restaurant-table-reservation/internal/repository"
    "github.com/iliyamo/restaurant-table-reservation/internal/router"
    "github.com/iliyamo/restaurant-table-reservation/internal/store"
)

func main() {
    // Load .env when present; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    rdb := config.NewRedisClient()

    var keyed store.KeyedStore
    switch cfg.StoreDriver {
    case "mysql":
        s, err := store.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
        if err != nil {
            log.Fatalf("open mysql store: %v", err)
        }
        keyed = s
    case "redis":
        if rdb == nil {
            log.Fatal("STORE_DRIVER=redis but redis is unreachable")
        }
        keyed = store.NewRedisStore(rdb)
    }

    engine := booking.NewEngine(
        repository.NewRestaurantRepo(keyed),
        repository.NewTableRepo(keyed),
        repository.NewReservationRepo(keyed),
        repository.NewUserReservationRepo(keyed),
        booking.Config{
            MaxAttempts:      cfg.MaxAttempts,
            UTCOffsetSeconds: cfg.UTCOffsetSeconds,
        },
    )

    if cfg.ConsumerEnabled {
        go func() {
            if err := queue.StartReservationConsumer(); err != nil {
                log.Printf("reservation consumer stopped: %v", err)
            }
        }()
    }

    e := echo.New()
    router.RegisterRoutes(e)
    limiter := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
    router.RegisterReservations(e, handler.NewReservationHandler(engine), limiter)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

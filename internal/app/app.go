package app

import (
	"context"
	"fmt"
	"net/http"
	"realitycheck/internal/cache"
	"realitycheck/internal/config"
	"realitycheck/internal/llm"
	"realitycheck/internal/logger"
	"realitycheck/internal/quota"
	"realitycheck/internal/repository"
	"realitycheck/internal/service"
	"realitycheck/internal/transport/rest"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/time/rate"
)

// App holds the wired services for one process
type App struct {
	Config          *config.Config
	LLM             llm.Client
	AnalysisService *service.AnalysisService
	VisitorService  *service.VisitorService

	closers []func(context.Context) error
}

// New connects the configured quota backend and builds the services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	a.LLM = client
	if cfg.LLM.IsEnabled() {
		logger.Log.Infof("LLM provider %s, model %s", client.Name(), cfg.LLM.ModelName())
	} else {
		logger.Log.Warn("No LLM API key set, using mock model")
	}

	hourlyPolicy := quota.Policy{Name: "hourly", Limit: cfg.Quota.HourlyLimit, Window: cfg.Quota.HourlyWindow}
	dailyPolicy := quota.Policy{Name: "daily", Limit: cfg.Quota.DailyLimit, Window: 24 * time.Hour}

	hourly, daily, err := a.newLimiters(ctx, hourlyPolicy, dailyPolicy)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	var pacer *rate.Limiter
	if cfg.LLM.RPM > 0 {
		pacer = service.NewPacer(cfg.LLM.RPM, cfg.LLM.Burst)
	}

	a.AnalysisService = service.NewAnalysisService(client, llm.DefaultParams(cfg.LLM), hourly, quota.Daily(daily), pacer)
	a.VisitorService = service.NewVisitorService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Quota.DailyLimit)
	return a, nil
}

// Router returns the HTTP API for this app
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		AnalysisService: a.AnalysisService,
		VisitorService:  a.VisitorService,
		AllowedOrigins:  a.Config.Server.CORSAllowedOrigins,
	})
}

// Close releases backend connections in reverse order
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) newLimiters(ctx context.Context, hourlyPolicy, dailyPolicy quota.Policy) (quota.Limiter, quota.Limiter, error) {
	storage := a.Config.Storage

	switch a.Config.Quota.Backend {
	case config.BackendRedis:
		// Remove redis:// prefix if present
		addr := strings.TrimPrefix(storage.RedisURI, "redis://")
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, nil, fmt.Errorf("failed to ping Redis: %w", err)
		}
		logger.Log.Infof("Quota backend: Redis at %s", addr)
		return cache.NewQuotaCache(rdb, hourlyPolicy), cache.NewQuotaCache(rdb, dailyPolicy), nil

	case config.BackendMongo:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(storage.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, mongoClient.Disconnect)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}

		db := mongoClient.Database(storage.MongoDatabase)
		hourly := repository.NewQuotaRepo(db, hourlyPolicy)
		daily := repository.NewQuotaRepo(db, dailyPolicy)
		// Both policies share one collection, so one index is enough
		if err := hourly.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure quota indexes: %w", err)
		}
		logger.Log.Infof("Quota backend: MongoDB database %s", storage.MongoDatabase)
		return hourly, daily, nil

	case config.BackendPostgres:
		db, err := repository.OpenPostgres(ctx, storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		hourly := repository.NewPGQuotaRepo(db, hourlyPolicy)
		if err := hourly.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure quota schema: %w", err)
		}
		logger.Log.Info("Quota backend: PostgreSQL")
		return hourly, repository.NewPGQuotaRepo(db, dailyPolicy), nil

	default:
		logger.Log.Info("Quota backend: in-memory")
		return quota.NewMemoryLimiter(hourlyPolicy), quota.NewMemoryLimiter(dailyPolicy), nil
	}
}

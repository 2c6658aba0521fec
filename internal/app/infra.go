package app

import (
	"context"
	"errors"
	"fmt"

	"session-auth/internal/auth/credentials"
	"session-auth/internal/config"
	"session-auth/internal/db"
	"session-auth/internal/logger"
	"session-auth/internal/mongo"
	"session-auth/internal/redis"
	"session-auth/internal/session"
)

type healthcheck struct {
	name  string
	check func(context.Context) error
}

// Infra owns every backing-store handle. Nothing here is package-global:
// setupInfra builds the handles and the caller injects them.
type Infra struct {
	Users    credentials.Store
	Sessions session.Store

	checks  []healthcheck
	closers []func(context.Context) error
}

func (i *Infra) Close(ctx context.Context) error {
	var errs []error
	for j := len(i.closers) - 1; j >= 0; j-- {
		errs = append(errs, i.closers[j](ctx))
	}
	return errors.Join(errs...)
}

func setupInfra(ctx context.Context, cfg config.Config) (_ *Infra, err error) {
	infra := &Infra{}
	defer func() {
		if err != nil {
			_ = infra.Close(context.Background())
		}
	}()

	var mongoClient *mongo.Client
	connectMongo := func() (*mongo.Client, error) {
		if mongoClient != nil {
			return mongoClient, nil
		}
		c, err := mongo.New(ctx, cfg.MongoURI, cfg.ConnectRetryAttempts, cfg.ConnectRetryInterval)
		if err != nil {
			return nil, err
		}
		mongoClient = c
		infra.checks = append(infra.checks, healthcheck{name: "mongo", check: c.Healthcheck})
		infra.closers = append(infra.closers, c.Close)
		logger.Info("mongo ready", map[string]any{"database": cfg.MongoDatabase})
		return c, nil
	}

	switch cfg.CredentialBackend {
	case config.BackendMongo:
		c, err := connectMongo()
		if err != nil {
			return nil, err
		}
		store := credentials.NewMongoStore(c.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		infra.Users = store

	case config.BackendPostgres:
		pg, err := db.Open(ctx, cfg.DatabaseDSN, cfg.ConnectRetryAttempts, cfg.ConnectRetryInterval)
		if err != nil {
			return nil, err
		}
		infra.checks = append(infra.checks, healthcheck{name: "postgres", check: pg.Healthcheck})
		infra.closers = append(infra.closers, func(context.Context) error { return pg.Close() })

		if err := db.RunMigrations(ctx, pg.DB); err != nil {
			return nil, fmt.Errorf("postgres: migrate: %w", err)
		}
		logger.Info("database ready", nil)
		infra.Users = credentials.NewPostgresStore(pg)

	case config.BackendMemory:
		logger.Warn("using in-memory credential store; users are lost on restart", nil)
		infra.Users = credentials.NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown credential backend %q", cfg.CredentialBackend)
	}

	switch cfg.SessionBackend {
	case config.BackendMongo:
		c, err := connectMongo()
		if err != nil {
			return nil, err
		}
		store := session.NewMongoStore(c.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		infra.Sessions = store

	case config.BackendRedis:
		rc, err := redis.New(ctx, cfg.RedisURL, cfg.ConnectRetryAttempts, cfg.ConnectRetryInterval)
		if err != nil {
			return nil, err
		}
		infra.checks = append(infra.checks, healthcheck{name: "redis", check: rc.Healthcheck})
		infra.closers = append(infra.closers, func(context.Context) error { return rc.Close() })
		logger.Info("redis ready", nil)
		infra.Sessions = session.NewRedisStore(rc.Client)

	case config.BackendMemory:
		logger.Warn("using in-memory session store; sessions are not shared between instances", nil)
		store := session.NewMemoryStore(cfg.SessionCleanupInterval)
		infra.closers = append(infra.closers, func(context.Context) error { return store.Close() })
		infra.Sessions = store

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}

	return infra, nil
}

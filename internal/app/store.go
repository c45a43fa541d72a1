package app

import (
	"context"
	"fmt"

	"github.com/gathertime/gathertime/internal/config"
	"github.com/gathertime/gathertime/internal/database"
	"github.com/gathertime/gathertime/pkg/event"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Store is the event repository chosen at startup together with its cleanup.
type Store struct {
	Repository event.Repository
	Close      func()
}

// OpenStore connects the backend named by store.type.
func OpenStore(ctx context.Context, cfg config.Application) (Store, error) {
	switch cfg.Store.Type {
	case config.StorePostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return Store{}, err
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return Store{}, err
		}
		log.Infof("Using postgres store at %s:%d", cfg.Database.Host, cfg.Database.Port)
		return Store{Repository: event.NewPostgresRepository(db), Close: db.Close}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return Store{}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Infof("Using redis store at %s", cfg.Store.Redis.Addr)
		repo := event.NewRedisRepository(client, cfg.Store.Redis.Prefix, cfg.Store.Redis.MaxRetries)
		return Store{Repository: repo, Close: func() {
			if err := client.Close(); err != nil {
				log.Errorf("failed to close redis client: %v", err)
			}
		}}, nil

	case config.StoreFile:
		log.Infof("Using file store at %s", cfg.Store.File.Path)
		return Store{Repository: event.NewFileRepository(cfg.Store.File.Path), Close: func() {}}, nil

	default:
		return Store{}, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

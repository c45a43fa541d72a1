package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const defaultRedisMaxRetries = 10

// RedisRepository keeps each event as a JSON string under prefix+id. Updates use
// WATCH/MULTI and are retried when another writer touches the same event.
type RedisRepository struct {
	client     redis.UniversalClient
	prefix     string
	maxRetries int
}

func NewRedisRepository(client redis.UniversalClient, prefix string, maxRetries int) *RedisRepository {
	if maxRetries <= 0 {
		maxRetries = defaultRedisMaxRetries
	}
	return &RedisRepository{client: client, prefix: prefix, maxRetries: maxRetries}
}

func (r *RedisRepository) key(id string) string {
	return r.prefix + id
}

func (r *RedisRepository) Create(ctx context.Context, e EventWithAvailability) error {
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	created, err := r.client.SetNX(ctx, r.key(e.Id), document, 0).Result()
	if err != nil {
		return storageError("could not store event", err)
	}
	if !created {
		return fmt.Errorf("%w: %s", ErrEventAlreadyExists, e.Id)
	}
	return nil
}

func (r *RedisRepository) Load(ctx context.Context, id string) (EventWithAvailability, error) {
	return r.load(ctx, r.client, id)
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepository) load(ctx context.Context, c redisGetter, id string) (EventWithAvailability, error) {
	document, err := c.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return EventWithAvailability{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		return EventWithAvailability{}, storageError("could not get event", err)
	}
	e, err := DecodeRecord(document)
	if err != nil {
		log.Errorf("event %s: %v", id, err)
		return EventWithAvailability{}, err
	}
	return e, nil
}

func (r *RedisRepository) Save(ctx context.Context, e EventWithAvailability) error {
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	updated, err := r.client.SetXX(ctx, r.key(e.Id), document, 0).Result()
	if err != nil {
		return storageError("could not store event", err)
	}
	if !updated {
		return fmt.Errorf("%w: %s", ErrEventNotFound, e.Id)
	}
	return nil
}

func (r *RedisRepository) Update(ctx context.Context, id string, fn UpdateFunc) (EventWithAvailability, error) {
	key := r.key(id)
	var updated EventWithAvailability

	// txErr holds errors raised inside the transaction, already classified
	var txErr error
	txf := func(tx *redis.Tx) error {
		txErr = nil
		current, err := r.load(ctx, tx, id)
		if err != nil {
			txErr = err
			return err
		}
		updated, err = fn(current)
		if err != nil {
			txErr = err
			return err
		}
		updated.Id = id
		document, err := EncodeRecord(updated)
		if err != nil {
			txErr = err
			return err
		}
		// EXEC fails with TxFailedErr if the key changed after WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, document, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, redis.TxFailedErr):
			log.Debugf("concurrent update of event %s, retrying (attempt %d)", id, attempt)
			continue
		case txErr != nil:
			return EventWithAvailability{}, txErr
		default:
			return EventWithAvailability{}, storageError("could not update event", err)
		}
	}
	return EventWithAvailability{}, storageError("could not update event", fmt.Errorf("gave up after %d concurrent modifications", r.maxRetries))
}

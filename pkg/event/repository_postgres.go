package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PostgresRepository keeps each event as one JSONB document.
type PostgresRepository struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *PostgresRepository) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *PostgresRepository) withTransaction(ctx context.Context, fn func(repo *PostgresRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer func() {
		// no-op once committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&PostgresRepository{db: r.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, e EventWithAvailability) error {
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	query := `INSERT INTO event_record (id, document, created_at, updated_at)
			  VALUES ($1, $2, $3, now())
			  ON CONFLICT (id) DO NOTHING`
	tag, err := r.getQueryer().Exec(ctx, query, e.Id, document, e.CreatedAt)
	if err != nil {
		return storageError("could not insert event", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEventAlreadyExists, e.Id)
	}
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context, id string) (EventWithAvailability, error) {
	return r.load(ctx, `SELECT document FROM event_record WHERE id = $1`, id)
}

func (r *PostgresRepository) loadForUpdate(ctx context.Context, id string) (EventWithAvailability, error) {
	return r.load(ctx, `SELECT document FROM event_record WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) load(ctx context.Context, query string, id string) (EventWithAvailability, error) {
	var document []byte
	err := r.getQueryer().QueryRow(ctx, query, id).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventWithAvailability{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		return EventWithAvailability{}, storageError("could not query event", err)
	}
	e, err := DecodeRecord(document)
	if err != nil {
		log.Errorf("event %s: %v", id, err)
		return EventWithAvailability{}, err
	}
	return e, nil
}

func (r *PostgresRepository) Save(ctx context.Context, e EventWithAvailability) error {
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	query := `UPDATE event_record SET document = $2, updated_at = now() WHERE id = $1`
	tag, err := r.getQueryer().Exec(ctx, query, e.Id, document)
	if err != nil {
		return storageError("could not update event", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEventNotFound, e.Id)
	}
	return nil
}

// Update locks the row for the duration of fn.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn UpdateFunc) (EventWithAvailability, error) {
	var updated EventWithAvailability
	err := r.withTransaction(ctx, func(repo *PostgresRepository) error {
		current, err := repo.loadForUpdate(ctx, id)
		if err != nil {
			return err
		}
		updated, err = fn(current)
		if err != nil {
			return err
		}
		updated.Id = id
		return repo.Save(ctx, updated)
	})
	if err != nil {
		return EventWithAvailability{}, err
	}
	return updated, nil
}

func storageError(msg string, err error) error {
	err = fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, msg, err)
	log.Error(err)
	return err
}

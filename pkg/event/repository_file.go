package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// FileRepository keeps all events in a single JSON object keyed by event id.
// It serializes every access with a mutex, so it suits a single process only.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, storageError("could not read events file", err)
	}
	events := map[string]json.RawMessage{}
	if len(data) == 0 {
		return events, nil
	}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, storageError("could not parse events file", err)
	}
	return events, nil
}

func (r *FileRepository) writeAll(events map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return storageError("could not create data directory", err)
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return storageError("could not encode events file", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return storageError("could not write events file", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return storageError("could not replace events file", err)
	}
	return nil
}

func (r *FileRepository) Create(ctx context.Context, e EventWithAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readAll()
	if err != nil {
		return err
	}
	if _, ok := events[e.Id]; ok {
		return fmt.Errorf("%w: %s", ErrEventAlreadyExists, e.Id)
	}
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	events[e.Id] = document
	return r.writeAll(events)
}

func (r *FileRepository) Load(ctx context.Context, id string) (EventWithAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readAll()
	if err != nil {
		return EventWithAvailability{}, err
	}
	return decodeFrom(events, id)
}

func (r *FileRepository) Save(ctx context.Context, e EventWithAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readAll()
	if err != nil {
		return err
	}
	return r.put(events, e)
}

func (r *FileRepository) Update(ctx context.Context, id string, fn UpdateFunc) (EventWithAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.readAll()
	if err != nil {
		return EventWithAvailability{}, err
	}
	current, err := decodeFrom(events, id)
	if err != nil {
		return EventWithAvailability{}, err
	}
	updated, err := fn(current)
	if err != nil {
		return EventWithAvailability{}, err
	}
	updated.Id = id
	if err := r.put(events, updated); err != nil {
		return EventWithAvailability{}, err
	}
	return updated, nil
}

func (r *FileRepository) put(events map[string]json.RawMessage, e EventWithAvailability) error {
	if _, ok := events[e.Id]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, e.Id)
	}
	document, err := EncodeRecord(e)
	if err != nil {
		return err
	}
	events[e.Id] = document
	return r.writeAll(events)
}

func decodeFrom(events map[string]json.RawMessage, id string) (EventWithAvailability, error) {
	document, ok := events[id]
	if !ok {
		return EventWithAvailability{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	e, err := DecodeRecord(document)
	if err != nil {
		log.Errorf("event %s: %v", id, err)
		return EventWithAvailability{}, err
	}
	return e, nil
}

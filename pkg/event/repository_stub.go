package event

import (
	"context"
	"fmt"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu     sync.Mutex
	events map[string]EventWithAvailability
	err    error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		events: make(map[string]EventWithAvailability),
	}
}

// FailWith makes every following call return err wrapped in ErrStorageUnavailable. nil restores normal behaviour.
func (r *RepositoryStub) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make(map[string]EventWithAvailability)
	r.err = nil
}

func (r *RepositoryStub) failure() error {
	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, r.err)
	}
	return nil
}

func (r *RepositoryStub) Create(ctx context.Context, e EventWithAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(); err != nil {
		return err
	}
	if _, ok := r.events[e.Id]; ok {
		return fmt.Errorf("%w: %s", ErrEventAlreadyExists, e.Id)
	}
	r.events[e.Id] = roundTrip(e)
	return nil
}

func (r *RepositoryStub) Load(ctx context.Context, id string) (EventWithAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(); err != nil {
		return EventWithAvailability{}, err
	}
	e, ok := r.events[id]
	if !ok {
		return EventWithAvailability{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return roundTrip(e), nil
}

func (r *RepositoryStub) Save(ctx context.Context, e EventWithAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(); err != nil {
		return err
	}
	if _, ok := r.events[e.Id]; !ok {
		return fmt.Errorf("%w: %s", ErrEventNotFound, e.Id)
	}
	r.events[e.Id] = roundTrip(e)
	return nil
}

func (r *RepositoryStub) Update(ctx context.Context, id string, fn UpdateFunc) (EventWithAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(); err != nil {
		return EventWithAvailability{}, err
	}
	current, ok := r.events[id]
	if !ok {
		return EventWithAvailability{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	updated, err := fn(roundTrip(current))
	if err != nil {
		return EventWithAvailability{}, err
	}
	updated.Id = id
	r.events[id] = roundTrip(updated)
	return roundTrip(updated), nil
}

// roundTrip copies the record through the document codec, as a real store would.
func roundTrip(e EventWithAvailability) EventWithAvailability {
	document, err := EncodeRecord(e)
	if err != nil {
		panic(err)
	}
	decoded, err := DecodeRecord(document)
	if err != nil {
		panic(err)
	}
	return decoded
}

package event

import (
	"context"
)

// UpdateFunc receives the current record and returns the record to store.
// Returning an error aborts the update and leaves the stored record unchanged.
type UpdateFunc func(current EventWithAvailability) (EventWithAvailability, error)

// Repository is the persistence collaborator for event records. Infrastructure
// failures are reported wrapped in ErrStorageUnavailable.
type Repository interface {
	// Create stores a new record. The id is generated by the caller.
	Create(ctx context.Context, event EventWithAvailability) error
	// Load returns ErrEventNotFound when the id is unknown.
	Load(ctx context.Context, id string) (EventWithAvailability, error)
	// Save overwrites an existing record.
	Save(ctx context.Context, event EventWithAvailability) error
	// Update performs a read-modify-write of one record. Concurrent updates of the
	// same event are serialized so that none of them is lost.
	Update(ctx context.Context, id string, fn UpdateFunc) (EventWithAvailability, error)
}

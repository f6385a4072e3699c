package patient

import "context"

type Repository interface {
	// Create persists a new patient, assigning its id and creation timestamp.
	Create(ctx context.Context, cmd *CreatePatientCommand) (*Patient, error)

	// GetByID retrieves a live patient. Returns ErrPatientNotFound when the
	// id is absent or soft-deleted; the two cases are indistinguishable.
	GetByID(ctx context.Context, id int64) (*Patient, error)

	// List returns one page of live patients matching the query.
	// Pages past the end of the data yield an empty slice.
	List(ctx context.Context, q *ListPatientsQuery) ([]*Patient, error)

	// Update applies the supplied fields to a live patient and stamps
	// date_updated. Returns ErrPatientNotFound if the target is gone.
	Update(ctx context.Context, id int64, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete soft-deletes a live patient. The record stays in storage.
	Delete(ctx context.Context, id int64) error
}

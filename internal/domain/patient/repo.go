package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient matches a firm and snils pair.
var ErrNotFound = errors.New("patient not found")

// ErrDuplicate is returned when an insert loses the race against another
// request creating the same (firm, snils) patient.
var ErrDuplicate = errors.New("patient already exists")

type Repository interface {
	// FindID returns the id of the patient registered by firmID under snils.
	FindID(ctx context.Context, firmID int, snils string) (int, error)
	// Create inserts a new patient and returns its generated id.
	Create(ctx context.Context, p *Patient) (int, error)
	// List returns every patient registered by firmID.
	List(ctx context.Context, firmID int) ([]Summary, error)
}

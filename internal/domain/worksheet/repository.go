package worksheet

import "context"

// WorksheetRepository defines data access for worksheets.
type WorksheetRepository interface {
	// Create persists a new worksheet
	Create(ctx context.Context, w Worksheet) (Worksheet, error)

	// GetByID retrieves a worksheet by ID
	GetByID(ctx context.Context, id string) (Worksheet, error)

	// List retrieves worksheets with filters and pagination
	List(ctx context.Context, filter WorksheetFilter) ([]Worksheet, int64, error)

	// Delete hard-deletes a worksheet
	Delete(ctx context.Context, id string) error
}

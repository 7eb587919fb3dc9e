package worksheet

import "context"

// WorksheetService defines business logic for worksheets
type WorksheetService interface {
	// Create stores a worksheet for the authenticated employee
	Create(ctx context.Context, req CreateWorksheetRequest) (WorksheetResponse, error)

	// GetMyWorksheets retrieves the authenticated employee's worksheets
	GetMyWorksheets(ctx context.Context, filter WorksheetFilter) (ListWorksheetResponse, error)

	// List retrieves worksheets with filters (admin/manager)
	List(ctx context.Context, filter WorksheetFilter) (ListWorksheetResponse, error)

	// Delete removes a worksheet (admin)
	Delete(ctx context.Context, id string) error
}

package worksheet

import "time"

// Worksheet is a daily work log entry. Leaderboard scoring counts these, so
// creation date is the field everything keys on.
type Worksheet struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Title       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / join
	EmployeeName *string
}

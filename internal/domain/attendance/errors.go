package attendance

import "errors"

// Attendance domain errors
var (
	// Lifecycle guard errors
	ErrAlreadyClockedIn  = errors.New("an active session already exists for today")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")
	ErrBreakAlreadyOpen  = errors.New("a break is already in progress")
	ErrNoOpenBreak       = errors.New("no break is in progress")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusOnBreak    Status = "on_break"
	StatusClockedOut Status = "clocked_out"

	// Administrative overrides, never produced by the automatic flow
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

type LocationType string

const (
	LocationOffice LocationType = "office"
	LocationRemote LocationType = "remote"
	LocationField  LocationType = "field"
)

// Break is one pause inside a daily session. An entry with a nil EndTime is
// the session's open break; at most one may be open at a time.
type Break struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

// Closed reports whether the break has ended.
func (b Break) Closed() bool {
	return b.EndTime != nil
}

// Duration returns the break length. Open breaks contribute zero.
func (b Break) Duration() time.Duration {
	if b.EndTime == nil {
		return 0
	}
	return b.EndTime.Sub(b.StartTime)
}

type Location struct {
	Type      LocationType `json:"type"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
	Address   *string      `json:"address,omitempty"`
}

// Attendance is one employee's clock cycle for one calendar day.
type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	ClockIn          *time.Time
	ClockOut         *time.Time
	Breaks           []Break
	TotalWorkedHours *float64
	TotalBreakHours  *float64
	Status           Status
	IsLate           bool
	LateByMinutes    int
	Location         Location
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO / join
	EmployeeName *string
}

// OpenBreak returns the most recent break without an end time, or nil.
func (a *Attendance) OpenBreak() *Break {
	if len(a.Breaks) == 0 {
		return nil
	}
	last := &a.Breaks[len(a.Breaks)-1]
	if last.EndTime == nil {
		return last
	}
	return nil
}

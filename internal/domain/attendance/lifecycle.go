package attendance

import (
	"math"
	"time"
)

// Lateness cutoff: arrivals at or after 09:00 local time are late.
const (
	lateCutoffHour   = 9
	lateCutoffMinute = 0
)

// LateCutoff returns the 09:00 cutoff on the same local day as t.
func LateCutoff(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), lateCutoffHour, lateCutoffMinute, 0, 0, t.Location())
}

// Lateness evaluates a clock-in stamp against the same-day cutoff.
// lateBy is whole minutes past the cutoff and is zero when not late.
func Lateness(clockIn time.Time) (isLate bool, lateBy int) {
	cutoff := LateCutoff(clockIn)
	if clockIn.Before(cutoff) {
		return false, 0
	}
	return true, int(math.Floor(clockIn.Sub(cutoff).Minutes()))
}

// Recompute derives every computed field of a record from its timestamps and
// breaks. It is a pure function: lifecycle operations call it explicitly
// before persisting instead of relying on storage-layer hooks.
//
// Administrative override statuses (absent, half_day) are preserved; all
// other statuses are rederived.
func Recompute(a Attendance) Attendance {
	if a.ClockIn != nil {
		a.IsLate, a.LateByMinutes = Lateness(*a.ClockIn)
	}

	// Worked/break totals exist only once the session is closed.
	if a.ClockIn != nil && a.ClockOut != nil {
		breakHours := 0.0
		for _, b := range a.Breaks {
			breakHours += b.Duration().Hours()
		}
		worked := a.ClockOut.Sub(*a.ClockIn).Hours() - breakHours
		if worked < 0 {
			worked = 0
		}
		a.TotalBreakHours = &breakHours
		a.TotalWorkedHours = &worked
	}

	if a.Status == StatusAbsent || a.Status == StatusHalfDay {
		return a
	}
	a.Status = deriveStatus(a)
	return a
}

func deriveStatus(a Attendance) Status {
	switch {
	case a.ClockOut != nil:
		return StatusClockedOut
	case a.OpenBreak() != nil:
		return StatusOnBreak
	case a.IsLate:
		return StatusLate
	default:
		return StatusPresent
	}
}

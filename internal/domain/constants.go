package domain

import "time"

// Date and time formats shared with the salon backend. The strings are used both as map keys
// and for display, so they must match the backend byte for byte.
const (
	DateFormat        = "02/01/2006"       // DD/MM/YYYY
	TimeFormat        = "15:04"            // HH:mm
	BookingTimeFormat = "02/01/2006 15:04" // DD/MM/YYYY HH:mm
)

// AnyStaffID is the id the backend uses for "any available professional".
const AnyStaffID int64 = 0

// Session defaults
const (
	DefaultSessionTTL = 30 * time.Minute
)

// Weekday numbers used in Staff.WorkingDays (1 = Monday ... 7 = Sunday)
const (
	MinWorkingDay = 1
	MaxWorkingDay = 7
)

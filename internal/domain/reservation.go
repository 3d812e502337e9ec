package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// Reservation is a customer booking supplied by the caller. Only Staff and BookingTime are
// ever changed by the engine; everything else is passed through.
type Reservation struct {
	ID            int64
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	ServiceIDs    []int64
	Note          string
	Status        string
	StoreUUID     string
	Staff         Staff
	BookingTime   string // DD/MM/YYYY HH:mm
}

// Clone returns a copy that shares no slices with r
func (r Reservation) Clone() Reservation {
	out := r
	out.ServiceIDs = append([]int64(nil), r.ServiceIDs...)
	out.Staff.WorkingDays = append(WorkingDays(nil), r.Staff.WorkingDays...)
	return out
}

// FormatBookingTime builds the composite "DD/MM/YYYY HH:mm" label
func FormatBookingTime(date time.Time, slotTime types.TimeString) string {
	return date.Format(DateFormat) + " " + slotTime.String()
}

// ParseBookingTime splits a composite booking time into its calendar date (midnight in loc)
// and time-of-day label
func ParseBookingTime(bookingTime string, loc *time.Location) (time.Time, types.TimeString, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(bookingTime), " ")
	if !ok {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidBookingTime, bookingTime)
	}

	date, err := ParseDate(datePart, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidBookingTime, bookingTime)
	}

	slotTime, err := types.NewTimeStringFromString(timePart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidBookingTime, bookingTime)
	}

	return date, slotTime, nil
}

// ParseDate parses a DD/MM/YYYY date as midnight in loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateFormat, strings.TrimSpace(value), loc)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

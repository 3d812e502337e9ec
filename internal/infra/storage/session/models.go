package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// record хранимое представление сессии (payload в redis и postgres)
type record struct {
	ID          string             `json:"id"`
	Reservation reservationRecord  `json:"reservation"`
	Selection   *selectionRecord   `json:"selection,omitempty"`
	Date        *time.Time         `json:"date,omitempty"`
	Generation  uint64             `json:"generation"`
	State       string             `json:"state"`
	Slots       []slotRecord       `json:"slots"`
	Roster      []staffRecord      `json:"roster,omitempty"`
	FetchFailed bool               `json:"fetchFailed,omitempty"`
	FetchError  string             `json:"fetchError,omitempty"`
	ChosenSlot  *slotRecord        `json:"chosenSlot,omitempty"`
	Result      *reservationRecord `json:"result,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	ExpiresAt   time.Time          `json:"expiresAt"`
}

type selectionRecord struct {
	Any     bool  `json:"any"`
	StaffID int64 `json:"staffId,omitempty"`
}

type slotRecord struct {
	Time   string  `json:"time"`
	Staffs []int64 `json:"staffs"`
}

type staffRecord struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Nickname    string  `json:"nickname"`
	Phone       string  `json:"phone"`
	SkillLevel  int     `json:"skillLevel"`
	DateOfBirth string  `json:"dateOfBirth"`
	Rate        float64 `json:"rate"`
	WorkingDays []int   `json:"workingDays"`
	StoreUUID   string  `json:"storeUuid"`
	TenantUUID  string  `json:"tenantUuid"`
	IsActive    bool    `json:"isActive"`
}

type reservationRecord struct {
	ID            int64       `json:"id"`
	CustomerID    int64       `json:"customerId"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	ServiceIDs    []int64     `json:"serviceIds"`
	Note          string      `json:"note"`
	Status        string      `json:"status"`
	StoreUUID     string      `json:"storeUuid"`
	Staff         staffRecord `json:"staff"`
	BookingTime   string      `json:"bookingTime"`
}

func encode(s *domain.Session) ([]byte, error) {
	data, err := json.Marshal(toRecord(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return fromRecord(rec), nil
}

func toRecord(s *domain.Session) record {
	rec := record{
		ID:          s.ID,
		Reservation: toReservationRecord(s.Reservation),
		Generation:  s.Generation,
		State:       string(s.State),
		FetchFailed: s.FetchFailed,
		FetchError:  s.FetchError,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		ExpiresAt:   s.ExpiresAt,
	}

	if s.Selection.IsValid() {
		sel := &selectionRecord{Any: s.Selection.IsAny()}
		if id, ok := s.Selection.StaffID(); ok {
			sel.StaffID = id
		}
		rec.Selection = sel
	}
	if !s.Date.IsZero() {
		date := s.Date
		rec.Date = &date
	}
	if s.Slots != nil {
		rec.Slots = make([]slotRecord, len(s.Slots))
		for i, slot := range s.Slots {
			rec.Slots[i] = toSlotRecord(slot)
		}
	}
	for _, staff := range s.Roster {
		rec.Roster = append(rec.Roster, toStaffRecord(staff))
	}
	if s.ChosenSlot != nil {
		slot := toSlotRecord(*s.ChosenSlot)
		rec.ChosenSlot = &slot
	}
	if s.Result != nil {
		res := toReservationRecord(*s.Result)
		rec.Result = &res
	}
	return rec
}

func fromRecord(rec record) *domain.Session {
	s := &domain.Session{
		ID:          rec.ID,
		Reservation: fromReservationRecord(rec.Reservation),
		Generation:  rec.Generation,
		State:       domain.SessionState(rec.State),
		FetchFailed: rec.FetchFailed,
		FetchError:  rec.FetchError,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		ExpiresAt:   rec.ExpiresAt,
	}

	if rec.Selection != nil {
		if rec.Selection.Any {
			s.Selection = domain.AnyStaff()
		} else {
			s.Selection = domain.SpecificStaff(rec.Selection.StaffID)
		}
	}
	if rec.Date != nil {
		s.Date = *rec.Date
	}
	if rec.Slots != nil {
		s.Slots = make([]domain.TimeSlot, len(rec.Slots))
		for i, slot := range rec.Slots {
			s.Slots[i] = fromSlotRecord(slot)
		}
	}
	for _, staff := range rec.Roster {
		s.Roster = append(s.Roster, fromStaffRecord(staff))
	}
	if rec.ChosenSlot != nil {
		slot := fromSlotRecord(*rec.ChosenSlot)
		s.ChosenSlot = &slot
	}
	if rec.Result != nil {
		res := fromReservationRecord(*rec.Result)
		s.Result = &res
	}
	return s
}

func toSlotRecord(slot domain.TimeSlot) slotRecord {
	return slotRecord{Time: slot.Time.String(), Staffs: append([]int64{}, slot.Staffs...)}
}

func fromSlotRecord(rec slotRecord) domain.TimeSlot {
	return domain.TimeSlot{Time: types.TimeString(rec.Time), Staffs: append([]int64{}, rec.Staffs...)}
}

func toStaffRecord(s domain.Staff) staffRecord {
	return staffRecord{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Phone:       s.Phone,
		SkillLevel:  s.SkillLevel,
		DateOfBirth: s.DateOfBirth,
		Rate:        s.Rate,
		WorkingDays: append([]int{}, s.WorkingDays...),
		StoreUUID:   s.StoreUUID,
		TenantUUID:  s.TenantUUID,
		IsActive:    s.IsActive,
	}
}

func fromStaffRecord(rec staffRecord) domain.Staff {
	return domain.Staff{
		ID:          rec.ID,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Nickname:    rec.Nickname,
		Phone:       rec.Phone,
		SkillLevel:  rec.SkillLevel,
		DateOfBirth: rec.DateOfBirth,
		Rate:        rec.Rate,
		WorkingDays: append(domain.WorkingDays{}, rec.WorkingDays...),
		StoreUUID:   rec.StoreUUID,
		TenantUUID:  rec.TenantUUID,
		IsActive:    rec.IsActive,
	}
}

func toReservationRecord(r domain.Reservation) reservationRecord {
	return reservationRecord{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceIDs:    append([]int64{}, r.ServiceIDs...),
		Note:          r.Note,
		Status:        r.Status,
		StoreUUID:     r.StoreUUID,
		Staff:         toStaffRecord(r.Staff),
		BookingTime:   r.BookingTime,
	}
}

func fromReservationRecord(rec reservationRecord) domain.Reservation {
	return domain.Reservation{
		ID:            rec.ID,
		CustomerID:    rec.CustomerID,
		CustomerName:  rec.CustomerName,
		CustomerPhone: rec.CustomerPhone,
		ServiceIDs:    append([]int64{}, rec.ServiceIDs...),
		Note:          rec.Note,
		Status:        rec.Status,
		StoreUUID:     rec.StoreUUID,
		Staff:         fromStaffRecord(rec.Staff),
		BookingTime:   rec.BookingTime,
	}
}

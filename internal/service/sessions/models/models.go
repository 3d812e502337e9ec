package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/ptr"
	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// Request модели

// CreateSessionRequest запрос на открытие сессии переноса бронирования
type CreateSessionRequest struct {
	Reservation ReservationDTO `json:"reservation"`
}

// DTO в формате бэкенда салона

// StaffDTO мастер
type StaffDTO struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Nickname    string  `json:"nickname"`
	Phone       string  `json:"phone"`
	SkillLevel  int     `json:"skillLevel"`
	DateOfBirth string  `json:"dateOfBirth"`
	Rate        float64 `json:"rate"`
	WorkingDays string  `json:"workingDays"` // "1,2,3"
	StoreUUID   string  `json:"storeUuid"`
	TenantUUID  string  `json:"tenantUuid"`
	IsActive    bool    `json:"isActive"`
}

// ReservationDTO бронирование
type ReservationDTO struct {
	ID            int64    `json:"id"`
	CustomerID    int64    `json:"customerId"`
	CustomerName  string   `json:"customerName"`
	CustomerPhone string   `json:"customerPhone"`
	ServiceIDs    []int64  `json:"serviceIds"`
	Note          string   `json:"note"`
	Status        string   `json:"status"`
	StoreUUID     string   `json:"storeUuid"`
	Staff         StaffDTO `json:"staff"`
	BookingTime   string   `json:"bookingTime"` // "DD/MM/YYYY HH:mm"
}

// SlotDTO слот с доступными мастерами
type SlotDTO struct {
	Time   string  `json:"time"`
	Staffs []int64 `json:"staffs"`
}

// Response модели

// SessionResponse состояние сессии переноса
type SessionResponse struct {
	ID                string          `json:"id"`
	State             string          `json:"state"`
	Reservation       ReservationDTO  `json:"reservation"`
	SuggestedDate     *string         `json:"suggestedDate,omitempty"` // дата текущей записи
	StaffID           *string         `json:"staffId,omitempty"`       // "any" или id
	Date              *string         `json:"date,omitempty"`
	Generation        uint64          `json:"generation"`
	Slots             []SlotDTO       `json:"slots"`
	AvailabilityError bool            `json:"availabilityError"`
	ChosenSlot        *SlotDTO        `json:"chosenSlot,omitempty"`
	Result            *ReservationDTO `json:"result,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	ExpiresAt         time.Time       `json:"expiresAt"`
}

// Методы конвертации

// ToDomainStaff конвертирует DTO в domain модель
func (s StaffDTO) ToDomainStaff() (domain.Staff, error) {
	days, err := domain.ParseWorkingDays(s.WorkingDays)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("staff id=%d: %w", s.ID, err)
	}
	return domain.Staff{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Phone:       s.Phone,
		SkillLevel:  s.SkillLevel,
		DateOfBirth: s.DateOfBirth,
		Rate:        s.Rate,
		WorkingDays: days,
		StoreUUID:   s.StoreUUID,
		TenantUUID:  s.TenantUUID,
		IsActive:    s.IsActive,
	}, nil
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s domain.Staff) StaffDTO {
	return StaffDTO{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Nickname:    s.Nickname,
		Phone:       s.Phone,
		SkillLevel:  s.SkillLevel,
		DateOfBirth: s.DateOfBirth,
		Rate:        s.Rate,
		WorkingDays: s.WorkingDays.String(),
		StoreUUID:   s.StoreUUID,
		TenantUUID:  s.TenantUUID,
		IsActive:    s.IsActive,
	}
}

// ToDomainReservation конвертирует DTO в domain модель
func (r ReservationDTO) ToDomainReservation() (domain.Reservation, error) {
	staff, err := r.Staff.ToDomainStaff()
	if err != nil {
		return domain.Reservation{}, err
	}
	return domain.Reservation{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceIDs:    append([]int64(nil), r.ServiceIDs...),
		Note:          r.Note,
		Status:        r.Status,
		StoreUUID:     r.StoreUUID,
		Staff:         staff,
		BookingTime:   r.BookingTime,
	}, nil
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r domain.Reservation) ReservationDTO {
	serviceIDs := r.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}
	return ReservationDTO{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceIDs:    append([]int64{}, serviceIDs...),
		Note:          r.Note,
		Status:        r.Status,
		StoreUUID:     r.StoreUUID,
		Staff:         FromDomainStaff(r.Staff),
		BookingTime:   r.BookingTime,
	}
}

// FromDomainSlot конвертирует слот в DTO
func FromDomainSlot(s domain.TimeSlot) SlotDTO {
	return SlotDTO{Time: s.Time.String(), Staffs: append([]int64{}, s.Staffs...)}
}

// FromDomainSlots конвертирует список слотов; nil превращается в пустой список
func FromDomainSlots(slots []domain.TimeSlot) []SlotDTO {
	out := make([]SlotDTO, len(slots))
	for i, s := range slots {
		out[i] = FromDomainSlot(s)
	}
	return out
}

// ToDomainSlot конвертирует DTO в слот
func (s SlotDTO) ToDomainSlot() domain.TimeSlot {
	return domain.TimeSlot{Time: types.TimeString(s.Time), Staffs: append([]int64(nil), s.Staffs...)}
}

// FromDomainSession конвертирует сессию в DTO
func FromDomainSession(s *domain.Session, loc *time.Location) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                s.ID,
		State:             string(s.State),
		Reservation:       FromDomainReservation(s.Reservation),
		Generation:        s.Generation,
		Slots:             FromDomainSlots(s.Slots),
		AvailabilityError: s.FetchFailed,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		ExpiresAt:         s.ExpiresAt,
	}

	if date, _, err := domain.ParseBookingTime(s.Reservation.BookingTime, loc); err == nil {
		resp.SuggestedDate = ptr.Ptr(date.Format(domain.DateFormat))
	}
	if s.Selection.IsValid() {
		resp.StaffID = ptr.Ptr(s.Selection.String())
	}
	if !s.Date.IsZero() {
		resp.Date = ptr.Ptr(s.Date.Format(domain.DateFormat))
	}
	if s.ChosenSlot != nil {
		resp.ChosenSlot = ptr.Ptr(FromDomainSlot(*s.ChosenSlot))
	}
	if s.Result != nil {
		resp.Result = ptr.Ptr(FromDomainReservation(*s.Result))
	}

	return resp
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectionKind distinguishes a concrete staff choice from "any available professional"
type SelectionKind int

const (
	SelectionSpecific SelectionKind = iota + 1
	SelectionAny
)

// StaffSelection is the user-facing staff choice. The zero value is invalid.
type StaffSelection struct {
	kind    SelectionKind
	staffID int64
}

// SpecificStaff selects a concrete roster member. id must be positive.
func SpecificStaff(id int64) StaffSelection {
	return StaffSelection{kind: SelectionSpecific, staffID: id}
}

// AnyStaff selects "any available professional"
func AnyStaff() StaffSelection {
	return StaffSelection{kind: SelectionAny}
}

// ParseStaffSelection parses "any", "0" or a positive staff id
func ParseStaffSelection(raw string) (StaffSelection, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "any") {
		return AnyStaff(), nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return StaffSelection{}, fmt.Errorf("invalid staff selection %q", raw)
	}
	return SelectionFromID(id), nil
}

// SelectionFromID maps a backend staff id to a selection, treating the "any" id as Any
func SelectionFromID(id int64) StaffSelection {
	if id == AnyStaffID {
		return AnyStaff()
	}
	return SpecificStaff(id)
}

func (s StaffSelection) Kind() SelectionKind {
	return s.kind
}

func (s StaffSelection) IsAny() bool {
	return s.kind == SelectionAny
}

func (s StaffSelection) IsValid() bool {
	switch s.kind {
	case SelectionAny:
		return true
	case SelectionSpecific:
		return s.staffID > 0
	default:
		return false
	}
}

// StaffID returns the concrete id; ok is false for Any
func (s StaffSelection) StaffID() (id int64, ok bool) {
	if s.kind != SelectionSpecific {
		return 0, false
	}
	return s.staffID, true
}

// QueryID returns the id to send to the backend: the "any" id for Any
func (s StaffSelection) QueryID() int64 {
	if s.kind == SelectionSpecific {
		return s.staffID
	}
	return AnyStaffID
}

// String returns "any" or the staff id
func (s StaffSelection) String() string {
	switch s.kind {
	case SelectionAny:
		return "any"
	case SelectionSpecific:
		return strconv.FormatInt(s.staffID, 10)
	default:
		return "unset"
	}
}

// Mode returns a short label for logs and metrics
func (s StaffSelection) Mode() string {
	if s.IsAny() {
		return "any"
	}
	return "specific"
}

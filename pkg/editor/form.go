// Package editor holds the add/edit form used by the employee dashboard.
package editor

import (
	"fmt"
	"strings"
	"time"

	"nexus-ems-be/internal/entity"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Form mirrors the employee schema. JoinDate is kept as YYYY-MM-DD text the
// way the date input produces it.
type Form struct {
	Mode       Mode       `json:"mode"`
	EmployeeId *uuid.UUID `json:"employee_id,omitempty"`
	FullName   string     `json:"full_name" validate:"required,max=255"`
	Email      string     `json:"email" validate:"required,email,max=255"`
	Role       string     `json:"role" validate:"required,max=255"`
	Department string     `json:"department" validate:"required,oneof=Engineering HR Sales Marketing Finance Legal"`
	JoinDate   string     `json:"join_date" validate:"required,datetime=2006-01-02"`
	Salary     float64    `json:"salary" validate:"gte=0"`
	Status     string     `json:"status" validate:"required,oneof=Active Inactive"`
}

// NewCreateForm returns the defaults for a new record: today's date, active
// status and the first department of the enumeration.
func NewCreateForm(now time.Time) Form {
	return Form{
		Mode:       ModeCreate,
		Department: string(entity.Departments[0]),
		JoinDate:   now.Format(entity.JoinDateLayout),
		Status:     string(entity.EmployeeStatusActive),
	}
}

func NewEditForm(e entity.Employee) Form {
	id := e.Id
	return Form{
		Mode:       ModeEdit,
		EmployeeId: &id,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Department: string(e.Department),
		JoinDate:   e.JoinDate.Format(entity.JoinDateLayout),
		Salary:     e.Salary,
		Status:     string(e.Status),
	}
}

// Extraction is the partial result of reading a scanned form. Nil fields
// were not found and leave the form untouched on merge.
type Extraction struct {
	FullName   *string  `json:"fullName,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Role       *string  `json:"role,omitempty"`
	Department *string  `json:"department,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	JoinDate   *string  `json:"joinDate,omitempty"`
}

// Merge returns a copy of f with every present extraction field written
// over it. Mode and identity are never changed.
func (f Form) Merge(x Extraction) Form {
	if x.FullName != nil {
		f.FullName = *x.FullName
	}
	if x.Email != nil {
		f.Email = *x.Email
	}
	if x.Role != nil {
		f.Role = *x.Role
	}
	if x.Department != nil {
		if d, err := entity.ParseDepartment(*x.Department); err == nil {
			f.Department = string(d)
		}
	}
	if x.Salary != nil {
		f.Salary = *x.Salary
	}
	if x.JoinDate != nil {
		f.JoinDate = *x.JoinDate
	}
	return f
}

// ToEmployee converts a validated form into an entity. The id is only set in
// edit mode; in create mode the store assigns it.
func (f Form) ToEmployee() (entity.Employee, error) {
	dept, err := entity.ParseDepartment(f.Department)
	if err != nil {
		return entity.Employee{}, err
	}
	status, err := entity.ParseEmployeeStatus(f.Status)
	if err != nil {
		return entity.Employee{}, err
	}
	joined, err := time.Parse(entity.JoinDateLayout, strings.TrimSpace(f.JoinDate))
	if err != nil {
		return entity.Employee{}, fmt.Errorf("invalid join date %q: %w", f.JoinDate, err)
	}
	if f.Salary < 0 {
		return entity.Employee{}, fmt.Errorf("salary must not be negative")
	}

	e := entity.Employee{
		FullName:   strings.TrimSpace(f.FullName),
		Email:      strings.TrimSpace(f.Email),
		Role:       strings.TrimSpace(f.Role),
		Department: dept,
		JoinDate:   joined,
		Salary:     f.Salary,
		Status:     status,
	}
	if f.Mode == ModeEdit && f.EmployeeId != nil {
		e.Id = *f.EmployeeId
	}
	return e, nil
}

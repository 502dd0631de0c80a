// FILE: internal/entity/employee_entity.go
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Department string
type EmployeeStatus string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentHR          Department = "HR"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentFinance     Department = "Finance"
	DepartmentLegal       Department = "Legal"

	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

// JoinDateLayout is the wire and storage format of Employee.JoinDate.
const JoinDateLayout = "2006-01-02"

var (
	ErrInvalidDepartment = errors.New("invalid department")
	ErrInvalidStatus     = errors.New("invalid employee status")
)

// Departments is the fixed enumeration in selector order. The first entry
// is the default for new records.
var Departments = []Department{
	DepartmentEngineering,
	DepartmentHR,
	DepartmentSales,
	DepartmentMarketing,
	DepartmentFinance,
	DepartmentLegal,
}

// ParseDepartment matches s case-insensitively against the enumeration.
func ParseDepartment(s string) (Department, error) {
	trimmed := strings.TrimSpace(s)
	for _, d := range Departments {
		if strings.EqualFold(string(d), trimmed) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDepartment, s)
}

func ParseEmployeeStatus(s string) (EmployeeStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return EmployeeStatusActive, nil
	case "inactive":
		return EmployeeStatusInactive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type Employee struct {
	Id         uuid.UUID
	FullName   string
	Email      string
	Role       string
	Department Department
	JoinDate   time.Time
	Salary     float64
	Status     EmployeeStatus
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Accessors used by the view derivation.

func (e Employee) GetFullName() string   { return e.FullName }
func (e Employee) GetEmail() string      { return e.Email }
func (e Employee) GetDepartment() string { return string(e.Department) }

package dto

import (
	"time"

	"nexus-ems-be/pkg/view"

	"github.com/google/uuid"
)

type EmployeeResponse struct {
	Id         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	JoinDate   string     `json:"join_date"`
	Salary     float64    `json:"salary"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// ListEmployeesRequest is bound from the query string.
type ListEmployeesRequest struct {
	Search     string `query:"search"`
	Department string `query:"department"`
	Page       int    `query:"page"`
}

func (r ListEmployeesRequest) State() view.State {
	return view.NewState().WithSearch(r.Search).WithDepartment(r.Department).WithPage(r.Page)
}

// EmployeePageResponse is the derived view pushed to clients and returned
// by the list endpoint.
type EmployeePageResponse struct {
	State       view.State                  `json:"state"`
	Page        view.Page[EmployeeResponse] `json:"page"`
	Version     uint64                      `json:"version"`
	Departments []string                    `json:"departments"`
}

type EmployeeStatsResponse struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	AverageSalary float64 `json:"average_salary"`
	Departments   int     `json:"departments"`
}

type EmployeeMutationResponse struct {
	Id uuid.UUID `json:"id"`
}

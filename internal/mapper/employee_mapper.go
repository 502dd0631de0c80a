package mapper

import (
	"time"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/model"

	"gorm.io/datatypes"
)

type EmployeeMapper struct{}

func NewEmployeeMapper() *EmployeeMapper {
	return &EmployeeMapper{}
}

func (m *EmployeeMapper) ToEntity(e *model.Employee) *entity.Employee {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Employee{
		Id:         e.Id,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Department: entity.Department(e.Department),
		JoinDate:   time.Time(e.JoinDate),
		Salary:     e.Salary,
		Status:     entity.EmployeeStatus(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *EmployeeMapper) ToModel(e *entity.Employee) *model.Employee {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Employee{
		Id:         e.Id,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Department: string(e.Department),
		JoinDate:   datatypes.Date(e.JoinDate),
		Salary:     e.Salary,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *EmployeeMapper) ToEntities(employees []*model.Employee) []*entity.Employee {
	entities := make([]*entity.Employee, len(employees))
	for i, e := range employees {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

package mapper

import (
	"testing"
	"time"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestEmployeeMapper_ToEntity(t *testing.T) {
	m := NewEmployeeMapper()
	id := uuid.New()
	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := m.ToEntity(&model.Employee{
		Id:         id,
		FullName:   "Jane Doe",
		Email:      "jane@co.com",
		Role:       "Engineer",
		Department: "Engineering",
		JoinDate:   datatypes.Date(joined),
		Salary:     95000,
		Status:     "Active",
	})

	assert.Equal(t, id, got.Id)
	assert.Equal(t, entity.DepartmentEngineering, got.Department)
	assert.Equal(t, entity.EmployeeStatusActive, got.Status)
	assert.True(t, joined.Equal(got.JoinDate))
	assert.Nil(t, got.UpdatedAt, "zero UpdatedAt maps to nil")
}

func TestEmployeeMapper_ToModelKeepsZeroIdForStoreAssignment(t *testing.T) {
	m := NewEmployeeMapper()

	got := m.ToModel(&entity.Employee{FullName: "New Hire", Department: entity.DepartmentSales})

	assert.Equal(t, uuid.Nil, got.Id)
	assert.Equal(t, "Sales", got.Department)
}

func TestEmployeeMapper_NilSafe(t *testing.T) {
	m := NewEmployeeMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}

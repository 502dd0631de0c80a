package service

import (
	"bytes"
	"testing"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService(t *testing.T) {
	q := NewEmployeeQueryService(mirrorWith(
		entity.Employee{FullName: "Ann", Department: entity.DepartmentHR, Status: entity.EmployeeStatusActive},
		entity.Employee{FullName: "Bob", Department: entity.DepartmentSales, Status: entity.EmployeeStatusActive},
	))
	svc := NewReportService(q, logger.NewNopLogger())

	pdf, err := svc.EmployeeReport("", "HR")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	form, err := svc.BlankForm()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(form, []byte("%PDF")))

	xlsx, err := svc.Spreadsheet("bob", "All")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx, []byte("PK")))
}

package unitofwork

import (
	"context"

	"nexus-ems-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EmployeeRepository() contract.EmployeeRepository
}

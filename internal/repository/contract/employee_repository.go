package contract

import (
	"context"

	"nexus-ems-be/internal/entity"
	"nexus-ems-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	Replace(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Employee, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error)
}

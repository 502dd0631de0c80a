package service

import (
	"nexus-ems-be/internal/dto"
	"nexus-ems-be/internal/entity"
	"nexus-ems-be/pkg/mirror"
	"nexus-ems-be/pkg/view"
)

// IEmployeeQueryService answers every read from the mirror; the store is
// never queried on the read path.
type IEmployeeQueryService interface {
	List(req dto.ListEmployeesRequest) *dto.EmployeePageResponse
	RenderView(state view.State) (any, error)
	Stats() *dto.EmployeeStatsResponse
	Filtered(search, department string) []entity.Employee
}

type employeeQueryService struct {
	mirror   *mirror.Mirror[entity.Employee]
	pageSize int
}

func NewEmployeeQueryService(m *mirror.Mirror[entity.Employee]) IEmployeeQueryService {
	return &employeeQueryService{mirror: m, pageSize: view.DefaultPageSize}
}

func (s *employeeQueryService) List(req dto.ListEmployeesRequest) *dto.EmployeePageResponse {
	return s.derive(req.State())
}

func (s *employeeQueryService) RenderView(state view.State) (any, error) {
	return s.derive(state), nil
}

func (s *employeeQueryService) derive(state view.State) *dto.EmployeePageResponse {
	snap := s.mirror.Snapshot()
	page := view.Derive(snap.Items, state, s.pageSize)

	// echo the clamped page so the client's pager stays in range
	state.Page = page.Page

	return &dto.EmployeePageResponse{
		State:       state,
		Page:        view.MapItems(page, toEmployeeResponse),
		Version:     snap.Version,
		Departments: departmentNames(),
	}
}

func (s *employeeQueryService) Stats() *dto.EmployeeStatsResponse {
	items := s.mirror.Snapshot().Items
	res := &dto.EmployeeStatsResponse{Total: len(items)}
	if len(items) == 0 {
		return res
	}

	var salaries float64
	seen := make(map[entity.Department]struct{})
	for _, e := range items {
		if e.Status == entity.EmployeeStatusActive {
			res.Active++
		}
		salaries += e.Salary
		seen[e.Department] = struct{}{}
	}
	res.AverageSalary = salaries / float64(len(items))
	res.Departments = len(seen)
	return res
}

// Filtered returns every matching record, unpaged, in mirror order.
func (s *employeeQueryService) Filtered(search, department string) []entity.Employee {
	return view.Filter(s.mirror.Snapshot().Items, search, department)
}

func departmentNames() []string {
	out := make([]string, 0, len(entity.Departments)+1)
	out = append(out, view.AllDepartments)
	for _, d := range entity.Departments {
		out = append(out, string(d))
	}
	return out
}

func toEmployeeResponse(e entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		Id:         e.Id,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Department: string(e.Department),
		JoinDate:   e.JoinDate.Format(entity.JoinDateLayout),
		Salary:     e.Salary,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

package service

import (
	"time"

	"nexus-ems-be/internal/pkg/logger"
	"nexus-ems-be/internal/pkg/serverutils"
	"nexus-ems-be/pkg/report"
)

type IReportService interface {
	EmployeeReport(search, department string) ([]byte, error)
	Spreadsheet(search, department string) ([]byte, error)
	BlankForm() ([]byte, error)
}

type reportService struct {
	query  IEmployeeQueryService
	logger logger.ILogger
	now    func() time.Time
}

func NewReportService(query IEmployeeQueryService, log logger.ILogger) IReportService {
	return &reportService{query: query, logger: log, now: time.Now}
}

// EmployeeReport renders every record matching the filters, not just the
// visible page.
func (s *reportService) EmployeeReport(search, department string) ([]byte, error) {
	rows := s.query.Filtered(search, department)
	out, err := report.EmployeeReport(rows, s.now())
	if err != nil {
		s.logger.Error("ReportService", "Failed to render employee report", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.Internal("Failed to generate report", err)
	}
	return out, nil
}

func (s *reportService) Spreadsheet(search, department string) ([]byte, error) {
	rows := s.query.Filtered(search, department)
	out, err := report.Spreadsheet(rows)
	if err != nil {
		s.logger.Error("ReportService", "Failed to render spreadsheet", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.Internal("Failed to generate spreadsheet", err)
	}
	return out, nil
}

func (s *reportService) BlankForm() ([]byte, error) {
	out, err := report.BlankForm()
	if err != nil {
		return nil, serverutils.Internal("Failed to generate form", err)
	}
	return out, nil
}

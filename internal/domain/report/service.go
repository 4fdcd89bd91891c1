package report

import (
	"context"
)

type ReportService interface {
	// Monthly builds the calling employee's report for the given period.
	Monthly(ctx context.Context, filter MonthlyReportFilter) (MonthlyReport, error)

	// ForEmployee builds another employee's report, admin only.
	ForEmployee(ctx context.Context, employeeCode string, filter MonthlyReportFilter) (MonthlyReport, error)

	// Company aggregates per-employee summaries across the workforce.
	Company(ctx context.Context, filter MonthlyReportFilter) (CompanySummary, error)
}
